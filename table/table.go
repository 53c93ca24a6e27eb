/*package table builds normalized grid tables out of raw rows and their
annotations. Each declared value becomes one Table: a map from quantized
parameter tuples to a central value with combined absolute uncertainties
(unc+ >= 0, unc- <= 0). Unit conversion and the uncertainty-combination
policy live in the builder; a Table itself is immutable after construction.
*/
package table

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

var (
	// ErrDuplicateKey is returned when two rows collide on the same
	// quantized parameter tuple. This means the granularity is set too
	// coarse or the source file genuinely repeats a grid point.
	ErrDuplicateKey = errors.New("duplicated grid point")
	// ErrDimension is returned by accessors that require a specific number
	// of parameter dimensions.
	ErrDimension = errors.New("wrong table dimensionality")
)

// Record is the normalized content of one grid point.
type Record struct {
	Value    float64
	UncPlus  float64 // combined positive absolute uncertainty, >= 0
	UncMinus float64 // combined negative absolute uncertainty, <= 0
}

// Table is one value of a grid file after normalization. Keys are parameter
// tuples in declaration order, quantized by the parameters' granularity.
type Table struct {
	Name       string
	Unit       string
	ParamNames []string

	keys  [][]float64
	recs  []Record
	index map[string]int
}

// keyString is the canonical map key of a quantized tuple. Quantized values
// come out of the same arithmetic everywhere, so exact formatting is a safe
// equality test. -0 formats differently from +0 but is the same grid
// coordinate, so it is normalized away.
func keyString(key []float64) string {
	parts := make([]string, len(key))
	for i, x := range key {
		if x == 0 {
			x = 0
		}
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// New assembles a table from parallel key and record slices. It fails with
// ErrDuplicateKey if two keys coincide.
func New(
	name, unit string, paramNames []string, keys [][]float64, recs []Record,
) (*Table, error) {
	if len(keys) != len(recs) {
		return nil, fmt.Errorf("table %q: %d keys but %d records",
			name, len(keys), len(recs))
	}
	t := &Table{
		Name:       name,
		Unit:       unit,
		ParamNames: paramNames,
		keys:       keys,
		recs:       recs,
		index:      make(map[string]int, len(keys)),
	}
	for i, key := range keys {
		if len(key) != len(paramNames) {
			return nil, fmt.Errorf("table %q: key %v has %d components "+
				"for %d parameters", name, key, len(key), len(paramNames))
		}
		ks := keyString(key)
		if _, ok := t.index[ks]; ok {
			return nil, fmt.Errorf("%w in table %q at (%s): parameter "+
				"granularity may be set too large", ErrDuplicateKey, name, ks)
		}
		t.index[ks] = i
	}
	return t, nil
}

// Dim returns the number of parameter dimensions.
func (t *Table) Dim() int { return len(t.ParamNames) }

// Len returns the number of grid points.
func (t *Table) Len() int { return len(t.recs) }

// Key returns the i-th parameter tuple. The caller must not modify it.
func (t *Table) Key(i int) []float64 { return t.keys[i] }

// Record returns the i-th record.
func (t *Table) Record(i int) Record { return t.recs[i] }

// Lookup returns the record stored at the given quantized tuple.
func (t *Table) Lookup(key ...float64) (Record, bool) {
	i, ok := t.index[keyString(key)]
	if !ok {
		return Record{}, false
	}
	return t.recs[i], true
}

// Header returns the column names of the normalized table: the parameters
// followed by "value", "unc+" and "unc-".
func (t *Table) Header() []string {
	return append(append([]string{}, t.ParamNames...), "value", "unc+", "unc-")
}

// Axes returns the sorted distinct tick values of every parameter axis.
func (t *Table) Axes() [][]float64 {
	axes := make([][]float64, t.Dim())
	for d := range axes {
		seen := map[float64]bool{}
		for _, key := range t.keys {
			if !seen[key[d]] {
				seen[key[d]] = true
				axes[d] = append(axes[d], key[d])
			}
		}
		sort.Float64s(axes[d])
	}
	return axes
}

// Series returns the grid of a one-dimensional table as parallel x and y
// slices sorted by x, with y drawn from each record by sel.
func (t *Table) Series(sel func(Record) float64) ([]float64, []float64, error) {
	if t.Dim() != 1 {
		return nil, nil, fmt.Errorf("%w: table %q has %d parameters, want 1",
			ErrDimension, t.Name, t.Dim())
	}
	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return t.keys[order[i]][0] < t.keys[order[j]][0]
	})

	xs := make([]float64, t.Len())
	ys := make([]float64, t.Len())
	for i, j := range order {
		xs[i] = t.keys[j][0]
		ys[i] = sel(t.recs[j])
	}
	return xs, ys, nil
}

// Dense unstacks the table into a row-major tensor over the full Cartesian
// product of the axis ticks, drawing each cell from sel. Grid points absent
// from the table are filled with NaN.
func (t *Table) Dense(sel func(Record) float64) ([][]float64, []float64) {
	axes := t.Axes()
	size := 1
	ticks := make([]map[float64]int, len(axes))
	for d, axis := range axes {
		size *= len(axis)
		ticks[d] = make(map[float64]int, len(axis))
		for i, x := range axis {
			ticks[d][x] = i
		}
	}

	vals := make([]float64, size)
	for i := range vals {
		vals[i] = math.NaN()
	}
	for i, key := range t.keys {
		flat := 0
		for d, x := range key {
			flat = flat*len(axes[d]) + ticks[d][x]
		}
		vals[flat] = sel(t.recs[i])
	}
	return axes, vals
}

// String renders the normalized table as an aligned text block.
func (t *Table) String() string {
	buf := &bytes.Buffer{}
	w := tabwriter.NewWriter(buf, 2, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, strings.Join(t.Header(), "\t")+"\t")

	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := t.keys[order[i]], t.keys[order[j]]
		for d := range a {
			if a[d] != b[d] {
				return a[d] < b[d]
			}
		}
		return false
	})

	for _, i := range order {
		for _, x := range t.keys[i] {
			fmt.Fprintf(w, "%g\t", x)
		}
		r := t.recs[i]
		fmt.Fprintf(w, "%g\t%g\t%g\t\n", r.Value, r.UncPlus, r.UncMinus)
	}
	w.Flush()
	return buf.String()
}
