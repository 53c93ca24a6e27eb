package interp

import (
	"fmt"
	"math"
	"sort"

	gonum "gonum.org/v1/gonum/interp"

	"github.com/hepkit/xsection/table"
)

// GridKind selects the fit backend of a Grid interpolator.
type GridKind int

const (
	// Multilinear is piecewise-linear interpolation on a rectangular grid of
	// any dimension. Missing grid points are tolerated as long as no query
	// touches a cell with a missing corner.
	Multilinear GridKind = iota
	// BivariateSpline is a tensor-product cubic spline. It requires a
	// complete two-dimensional grid.
	BivariateSpline
)

// ParseGridKind parses "linear", "spline" or "spline33".
func ParseGridKind(s string) (GridKind, error) {
	switch s {
	case "linear":
		return Multilinear, nil
	case "spline", "spline33":
		return BivariateSpline, nil
	}
	return 0, fmt.Errorf("no grid interpolator kind %q", s)
}

func (k GridKind) String() string {
	if k == BivariateSpline {
		return "spline"
	}
	return "linear"
}

// Grid interpolates tables whose keys form a rectangular grid. Axes, when
// non-nil, reparametrizes the fit; its dimension must match the table. The
// zero value is multilinear interpolation in physical space.
type Grid struct {
	Kind GridKind
	Axes *Axes
}

// NewGrid builds a Grid from the textual kind and per-axis transform names.
// Pass wy == "" for an identity value transform.
func NewGrid(kind string, wx []string, wy string) (*Grid, error) {
	k, err := ParseGridKind(kind)
	if err != nil {
		return nil, err
	}
	if wy == "" {
		wy = "identity"
	}
	axes, err := NewAxes(wx, wy)
	if err != nil {
		return nil, err
	}
	return &Grid{Kind: k, Axes: axes}, nil
}

func identityAxes(dim int) *Axes {
	wx := make([]AxisFunc, dim)
	for i := range wx {
		wx[i] = Identity
	}
	return &Axes{WX: wx, WY: Identity, WYInv: Identity}
}

// Interpolate fits the three curves of the table on its rectangular grid.
func (g *Grid) Interpolate(t *table.Table) (*Interpolation, error) {
	dim := t.Dim()
	axes := g.Axes
	if axes == nil {
		axes = identityAxes(dim)
	} else if axes.Dim() != dim {
		return nil, fmt.Errorf("%w: axes wrap %d parameters, table %q has %d",
			ErrDimension, axes.Dim(), t.Name, dim)
	}
	if g.Kind == BivariateSpline && dim != 2 {
		return nil, fmt.Errorf("%w: table %q has %d parameters, "+
			"but the bivariate spline handles exactly 2",
			ErrDimension, t.Name, dim)
	}

	fit := func(sel func(table.Record) float64) (Func, error) {
		ticks, vals := t.Dense(sel)
		wTicks := make([][]float64, dim)
		for d, axis := range ticks {
			if len(axis) < 2 {
				return nil, fmt.Errorf("table %q: parameter %q has %d distinct "+
					"values, need at least 2", t.Name, t.ParamNames[d], len(axis))
			}
			wTicks[d] = make([]float64, len(axis))
			for i, x := range axis {
				wTicks[d][i] = axes.WX[d](x)
			}
		}
		wVals := make([]float64, len(vals))
		for i, v := range vals {
			wVals[i] = axes.WY(v)
		}

		var fBar func([]float64) (float64, error)
		switch g.Kind {
		case BivariateSpline:
			bc, err := newBicubic(wTicks[0], wTicks[1], wVals)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", t.Name, err)
			}
			fBar = bc.eval
		default:
			fBar = newMultilinear(wTicks, wVals).eval
		}
		f := axes.WrapFunc(fBar)

		// Transforms are monotone: bounds checks stay in physical space.
		return func(q []float64) (float64, error) {
			if len(q) != dim {
				return 0, fmt.Errorf("%w: got %d, want %d", ErrArity, len(q), dim)
			}
			for d, axis := range ticks {
				if q[d] < axis[0] || q[d] > axis[len(axis)-1] {
					return 0, fmt.Errorf("%w: %s=%g outside [%g, %g] of table %q",
						ErrOutOfRange, t.ParamNames[d], q[d],
						axis[0], axis[len(axis)-1], t.Name)
				}
			}
			return f(q)
		}, nil
	}

	f0, err := fit(func(r table.Record) float64 { return r.Value })
	if err != nil {
		return nil, err
	}
	fp, err := fit(func(r table.Record) float64 { return r.Value + r.UncPlus })
	if err != nil {
		return nil, err
	}
	fm, err := fit(func(r table.Record) float64 { return r.Value - abs(r.UncMinus) })
	if err != nil {
		return nil, err
	}
	return NewInterpolation(f0, fp, fm, t.ParamNames), nil
}

// multilinear evaluates d-linear interpolation on a dense row-major tensor.
type multilinear struct {
	ticks   [][]float64
	vals    []float64
	strides []int
}

func newMultilinear(ticks [][]float64, vals []float64) *multilinear {
	strides := make([]int, len(ticks))
	stride := 1
	for d := len(ticks) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= len(ticks[d])
	}
	return &multilinear{ticks: ticks, vals: vals, strides: strides}
}

// cell locates the interval containing x on one axis and the fractional
// position within it. Callers guarantee x is within the axis range.
func cell(axis []float64, x float64) (i int, frac float64) {
	i = sort.SearchFloat64s(axis, x)
	if i > 0 {
		i--
	}
	if i > len(axis)-2 {
		i = len(axis) - 2
	}
	return i, (x - axis[i]) / (axis[i+1] - axis[i])
}

func (m *multilinear) eval(x []float64) (float64, error) {
	d := len(m.ticks)
	idx := make([]int, d)
	frac := make([]float64, d)
	for dd, axis := range m.ticks {
		idx[dd], frac[dd] = cell(axis, x[dd])
	}

	// Accumulate the 2^d corner contributions of the cell.
	sum := 0.0
	for corner := 0; corner < 1<<uint(d); corner++ {
		w, flat := 1.0, 0
		for dd := 0; dd < d; dd++ {
			if corner&(1<<uint(dd)) != 0 {
				w *= frac[dd]
				flat += (idx[dd] + 1) * m.strides[dd]
			} else {
				w *= 1 - frac[dd]
				flat += idx[dd] * m.strides[dd]
			}
		}
		if w == 0 {
			continue // skip missing corners that carry no weight
		}
		v := m.vals[flat]
		if math.IsNaN(v) {
			return 0, fmt.Errorf("%w: grid point at flat index %d", ErrMissingPoint, flat)
		}
		sum += w * v
	}
	return sum, nil
}

// bicubic is a tensor-product natural cubic spline on a complete 2-D grid:
// one spline per x row over the y axis, plus a column spline over x built at
// query time from the row predictions.
type bicubic struct {
	xs, ys []float64
	rows   []*gonum.NaturalCubic
}

func newBicubic(xs, ys []float64, vals []float64) (*bicubic, error) {
	b := &bicubic{xs: xs, ys: ys, rows: make([]*gonum.NaturalCubic, len(xs))}
	for i := range xs {
		row := vals[i*len(ys) : (i+1)*len(ys)]
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: missing point at (%g, %g)",
					ErrMissingPoint, xs[i], ys[j])
			}
		}
		b.rows[i] = &gonum.NaturalCubic{}
		if err := b.rows[i].Fit(ys, row); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *bicubic) eval(p []float64) (float64, error) {
	x, y := p[0], p[1]
	col := make([]float64, len(b.xs))
	for i, row := range b.rows {
		col[i] = row.Predict(y)
	}
	s := &gonum.NaturalCubic{}
	if err := s.Fit(b.xs, col); err != nil {
		return 0, err
	}
	return s.Predict(x), nil
}
