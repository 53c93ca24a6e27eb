/*package interp constructs continuous interpolating functions over grid
tables while propagating asymmetric uncertainties. An Interpolator fits the
central curve and the two uncertainty-shifted curves independently; the
interpolated uncertainty at a point is the difference of those curves, never
an interpolation of the uncertainty columns themselves. Axes may be
reparametrized (log/linear) before fitting; callers always see physical-space
coordinates in and out.
*/
package interp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned when a query lies outside the grid. The
	// interpolators never extrapolate.
	ErrOutOfRange = errors.New("point outside the interpolation range")
	// ErrArity is returned when a query has the wrong number of parameters.
	ErrArity = errors.New("wrong number of parameters")
	// ErrUnknownParam is returned when a named parameter does not exist.
	ErrUnknownParam = errors.New("unknown parameter name")
	// ErrDimension is returned when an interpolator cannot handle the
	// table's number of parameter dimensions.
	ErrDimension = errors.New("unsupported table dimensionality")
	// ErrMissingPoint is returned when a spline is asked to fit a grid
	// with missing (NaN) points.
	ErrMissingPoint = errors.New("spline interpolation requires a complete grid")
)

// AxisFunc transforms a single coordinate before or after fitting.
type AxisFunc func(float64) float64

// Identity leaves the axis untouched.
func Identity(x float64) float64 { return x }

// Log10 maps the axis to its base-10 logarithm. Base 10 and base e give the
// same interpolant; 10 is easier to debug.
func Log10(x float64) float64 { return math.Log10(x) }

// Exp10 is the inverse of Log10.
func Exp10(x float64) float64 { return math.Pow(10, x) }

var axisNames = map[string]string{
	"identity": "identity",
	"id":       "identity",
	"linear":   "identity",
	"log":      "log10",
	"log10":    "log10",
	"exp":      "exp10",
	"exp10":    "exp10",
}

var axisFuncs = map[string]AxisFunc{
	"identity": Identity,
	"log10":    Log10,
	"exp10":    Exp10,
}

var axisInverses = map[string]string{
	"identity": "identity",
	"log10":    "exp10",
	"exp10":    "log10",
}

func axisByName(name string) (AxisFunc, string, error) {
	canonical, ok := axisNames[name]
	if !ok {
		return nil, "", fmt.Errorf("no predefined axis transform %q", name)
	}
	return axisFuncs[canonical], canonical, nil
}

// Axes transforms parameter axes and the value axis around an underlying
// fit. WX applies elementwise to the parameters, WY to the value; WYInv must
// invert WY so fit results can be mapped back to physical space.
type Axes struct {
	WX    []AxisFunc
	WY    AxisFunc
	WYInv AxisFunc
}

// NewAxes builds an Axes from predefined transform names ("identity"/"id"/
// "linear", "log"/"log10", "exp"/"exp10"). The value transform's inverse is
// chosen automatically.
func NewAxes(wx []string, wy string) (*Axes, error) {
	a := &Axes{}
	for _, name := range wx {
		f, _, err := axisByName(name)
		if err != nil {
			return nil, err
		}
		a.WX = append(a.WX, f)
	}

	f, canonical, err := axisByName(wy)
	if err != nil {
		return nil, err
	}
	a.WY = f
	a.WYInv = axisFuncs[axisInverses[canonical]]
	return a, nil
}

// Dim returns the number of parameter transforms.
func (a *Axes) Dim() int { return len(a.WX) }

// WrapPoint maps a parameter tuple into the transformed space.
func (a *Axes) WrapPoint(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = a.WX[i](x)
	}
	return out
}

// WrapFunc turns a fit in transformed space into a function on physical
// space: it transforms the parameters, evaluates fBar, and maps the value
// back through the inverse transform. The returned function rejects tuples
// whose length differs from the number of parameter transforms.
func (a *Axes) WrapFunc(fBar func([]float64) (float64, error)) func([]float64) (float64, error) {
	return func(xs []float64) (float64, error) {
		if len(xs) != len(a.WX) {
			return 0, fmt.Errorf("%w: got %d, want %d",
				ErrArity, len(xs), len(a.WX))
		}
		y, err := fBar(a.WrapPoint(xs))
		if err != nil {
			return 0, err
		}
		return a.WYInv(y), nil
	}
}
