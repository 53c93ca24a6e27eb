package table

import (
	"fmt"
	"math"

	"github.com/hepkit/xsection/diag"
	"github.com/hepkit/xsection/info"
	"github.com/hepkit/xsection/units"
)

// Quantize snaps x onto the grid with spacing g. A zero g disables
// quantization. Rounding a small negative value yields -0, which must
// collapse onto +0 or the two would format as distinct grid coordinates.
func Quantize(x, g float64) float64 {
	if g == 0 {
		return x
	}
	q := math.Round(x/g) * g
	if q == 0 {
		return 0
	}
	return q
}

// Build turns raw numeric rows plus their annotation into one normalized
// Table per declared value. Rows must follow the annotation's column order.
// Non-fatal conditions go to sink; schema, unit and duplicate-grid-point
// problems are hard errors.
func Build(
	fi *info.FileInfo, rows [][]float64, sink *diag.Sink,
) (map[string]*Table, error) {
	if err := fi.Validate(); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(fi.Columns) {
			return nil, fmt.Errorf("row %d has %d fields, want %d",
				i, len(row), len(fi.Columns))
		}
	}

	colIdx := map[string]int{}
	for _, c := range fi.Columns {
		colIdx[c.Name] = c.Index
	}

	keys := quantizedKeys(fi, rows, colIdx)

	tables := map[string]*Table{}
	for _, v := range fi.Values {
		t, err := buildValue(fi, v, rows, keys, colIdx, sink)
		if err != nil {
			return nil, err
		}
		tables[v.Column] = t
	}
	return tables, nil
}

// quantizedKeys extracts the parameter tuple of every row, snapped by each
// parameter's granularity.
func quantizedKeys(
	fi *info.FileInfo, rows [][]float64, colIdx map[string]int,
) [][]float64 {
	keys := make([][]float64, len(rows))
	for i, row := range rows {
		key := make([]float64, len(fi.Parameters))
		for d, p := range fi.Parameters {
			key[d] = Quantize(row[colIdx[p.Column]], p.Granularity)
		}
		keys[i] = key
	}
	return keys
}

func buildValue(
	fi *info.FileInfo, v info.ValueInfo, rows [][]float64,
	keys [][]float64, colIdx map[string]int, sink *diag.Sink,
) (*Table, error) {
	valueCol, err := fi.Column(v.Column)
	if err != nil {
		return nil, err
	}
	valueUnit := units.Of(valueCol.Unit)

	// Partition the uncertainty-source columns. A column interpreted as both
	// an absolute and a relative source is a defect in the annotation.
	relative := map[string]bool{}
	seen := map[string]bool{}
	for _, src := range append(append([]info.UncertaintySource{}, v.UncP...), v.UncM...) {
		for _, c := range src.Columns {
			if seen[c] && relative[c] != src.Type.Relative() {
				return nil, fmt.Errorf("%w: column %q of value %q is used "+
					"as both an absolute and a relative uncertainty",
					info.ErrSchema, c, v.Column)
			}
			seen[c] = true
			relative[c] = src.Type.Relative()
		}
	}

	// Conversion factor per source column. An absolute source converts by
	// sourceUnit/valueUnit; a relative one is a dimensionless fraction of
	// the value, so its declared unit must reduce to a bare number.
	factors := map[string]float64{}
	for c := range seen {
		col, err := fi.Column(c)
		if err != nil {
			return nil, err
		}
		u := units.Of(col.Unit)
		if relative[c] {
			u = u.Mul(valueUnit)
		}
		f, err := u.Div(valueUnit).Scalar()
		if err != nil {
			return nil, fmt.Errorf("value %q: uncertainty column %q: %w",
				v.Column, c, err)
		}
		factors[c] = f
	}

	if len(v.UncP) == 0 || len(v.UncM) == 0 {
		sink.Warnf("table", "value %q lacks declared uncertainty sources",
			v.Column)
	}

	recs := make([]Record, len(rows))
	norm := map[string]float64{}
	for i, row := range rows {
		value := row[colIdx[v.Column]]
		for c := range seen {
			norm[c] = row[colIdx[c]] * factors[c]
			if relative[c] {
				norm[c] *= value
			}
		}
		recs[i] = Record{
			Value:    value,
			UncPlus:  combine(v.UncP, norm, +1),
			UncMinus: -combine(v.UncM, norm, -1),
		}
	}

	paramNames := make([]string, len(fi.Parameters))
	for d, p := range fi.Parameters {
		paramNames[d] = p.Column
	}
	return New(v.Column, valueCol.Unit, paramNames, keys, recs)
}

// combine applies the three-level combination policy: signed sources keep
// only candidates whose sign matches the direction, each source group
// contributes the largest surviving magnitude (zero if none survives), and
// the groups add in quadrature.
func combine(
	srcs []info.UncertaintySource, norm map[string]float64, sign float64,
) float64 {
	sum := 0.0
	for _, src := range srcs {
		best := 0.0
		for _, c := range src.Columns {
			u := norm[c]
			if src.Type.Signed() && !(u*sign > 0) {
				continue
			}
			if a := math.Abs(u); a > best {
				best = a
			}
		}
		sum += best * best
	}
	return math.Sqrt(sum)
}
