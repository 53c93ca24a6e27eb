package interp

import (
	"fmt"

	gonum "gonum.org/v1/gonum/interp"

	"github.com/hepkit/xsection/table"
)

// Kind selects the one-dimensional fit backend.
type Kind int

const (
	// Linear is piecewise-linear interpolation.
	Linear Kind = iota
	// Spline is a cubic spline with the natural boundary condition. Simple
	// and accurate on even-spaced grids, but can overshoot on uneven ones.
	Spline
	// PCHIP is a monotonicity-preserving piecewise cubic. Recommended for
	// monotonic data; it cannot capture oscillations.
	PCHIP
	// Akima is the Akima spline, preferred over PCHIP for oscillatory data.
	Akima
)

// ParseKind parses "linear", "spline", "pchip" or "akima".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "spline":
		return Spline, nil
	case "pchip":
		return PCHIP, nil
	case "akima":
		return Akima, nil
	}
	return 0, fmt.Errorf("no interpolator kind %q", s)
}

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Spline:
		return "spline"
	case PCHIP:
		return "pchip"
	case Akima:
		return "akima"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// AxesChoice selects the axis transforms of a one-dimensional fit.
type AxesChoice int

const (
	// AxesLinear fits in physical space.
	AxesLinear AxesChoice = iota
	// AxesLog fits the log of the value against the parameter.
	AxesLog
	// AxesLogLinear fits the value against the log of the parameter.
	AxesLogLinear
	// AxesLogLog fits in log-log space.
	AxesLogLog
)

// ParseAxesChoice parses "linear", "log", "loglinear" or "loglog".
func ParseAxesChoice(s string) (AxesChoice, error) {
	switch s {
	case "linear":
		return AxesLinear, nil
	case "log":
		return AxesLog, nil
	case "loglinear":
		return AxesLogLinear, nil
	case "loglog":
		return AxesLogLog, nil
	}
	return 0, fmt.Errorf("no axes choice %q", s)
}

func (a AxesChoice) axes() *Axes {
	x, y := "linear", "linear"
	switch a {
	case AxesLog:
		y = "log"
	case AxesLogLinear:
		x = "log"
	case AxesLogLog:
		x, y = "log", "log"
	}
	axes, err := NewAxes([]string{x}, y)
	if err != nil {
		panic(err) // predefined names cannot fail
	}
	return axes
}

// OneDim interpolates tables with exactly one parameter. The zero value is
// piecewise-linear interpolation in physical space.
type OneDim struct {
	Kind Kind
	Axes AxesChoice
}

// NewOneDim builds a OneDim from the textual kind and axes names.
func NewOneDim(kind, axes string) (*OneDim, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	a, err := ParseAxesChoice(axes)
	if err != nil {
		return nil, err
	}
	return &OneDim{Kind: k, Axes: a}, nil
}

func (o *OneDim) backend() gonum.FittablePredictor {
	switch o.Kind {
	case Spline:
		return &gonum.NaturalCubic{}
	case PCHIP:
		return &gonum.FritschButland{}
	case Akima:
		return &gonum.AkimaSpline{}
	}
	return &gonum.PiecewiseLinear{}
}

// Interpolate fits the three curves of the table and returns the result.
// The table must have exactly one parameter dimension.
func (o *OneDim) Interpolate(t *table.Table) (*Interpolation, error) {
	if t.Dim() != 1 {
		return nil, fmt.Errorf("%w: table %q has %d parameters, "+
			"but OneDim handles exactly 1", ErrDimension, t.Name, t.Dim())
	}
	axes := o.Axes.axes()

	fit := func(sel func(table.Record) float64) (Func, error) {
		xs, ys, err := t.Series(sel)
		if err != nil {
			return nil, err
		}
		wxs := make([]float64, len(xs))
		wys := make([]float64, len(ys))
		for i := range xs {
			wxs[i] = axes.WX[0](xs[i])
			wys[i] = axes.WY(ys[i])
		}

		backend := o.backend()
		if err := backend.Fit(wxs, wys); err != nil {
			return nil, fmt.Errorf("fitting table %q: %w", t.Name, err)
		}
		f := axes.WrapFunc(func(wx []float64) (float64, error) {
			return backend.Predict(wx[0]), nil
		})

		// The transforms are monotone, so bounds can be checked in
		// physical space before transforming.
		lo, hi := xs[0], xs[len(xs)-1]
		return func(q []float64) (float64, error) {
			if len(q) != 1 {
				return 0, fmt.Errorf("%w: got %d, want 1", ErrArity, len(q))
			}
			if q[0] < lo || q[0] > hi {
				return 0, fmt.Errorf("%w: %s=%g outside [%g, %g] of table %q",
					ErrOutOfRange, t.ParamNames[0], q[0], lo, hi, t.Name)
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

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
