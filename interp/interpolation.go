package interp

import (
	"fmt"
	"math"

	"github.com/hepkit/xsection/table"
)

// Func is a continuous function of a parameter tuple.
type Func func(xs []float64) (float64, error)

// Interpolator fits a grid table and returns the uncertainty-aware
// interpolation result. Implementations are configuration-only: every call
// produces a fresh, independent Interpolation.
type Interpolator interface {
	Interpolate(t *table.Table) (*Interpolation, error)
}

// Interpolation is the result of fitting one table: three independently
// interpolated curves for the central value and the two uncertainty-shifted
// values. It is safe for concurrent queries as long as the fit backends are
// read-only at evaluation time.
type Interpolation struct {
	f0, fp, fm Func
	names      []string
	index      map[string]int
}

// NewInterpolation assembles an Interpolation from the three fitted curves.
// paramNames, in table order, enables queries by parameter name.
func NewInterpolation(f0, fp, fm Func, paramNames []string) *Interpolation {
	index := make(map[string]int, len(paramNames))
	for i, name := range paramNames {
		index[name] = i
	}
	return &Interpolation{f0: f0, fp: fp, fm: fm, names: paramNames, index: index}
}

// ParamNames returns the parameter names in positional order.
func (ip *Interpolation) ParamNames() []string {
	return append([]string{}, ip.names...)
}

// Params resolves named parameter values into a positional tuple, so that
// e.g. Central(ip.Params(map[string]float64{"msq": 700, "mgl": 1400})...)
// works regardless of declaration order.
func (ip *Interpolation) Params(kv map[string]float64) ([]float64, error) {
	xs := make([]float64, len(ip.names))
	seen := 0
	for name, x := range kv {
		i, ok := ip.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		xs[i] = x
		seen++
	}
	if seen != len(ip.names) {
		return nil, fmt.Errorf("%w: got %d named parameters, want %d",
			ErrArity, seen, len(ip.names))
	}
	return xs, nil
}

// Central returns the interpolated central value.
func (ip *Interpolation) Central(xs ...float64) (float64, error) {
	return ip.f0(xs)
}

// Upper returns the interpolation of the central value plus its positive
// uncertainty.
func (ip *Interpolation) Upper(xs ...float64) (float64, error) {
	return ip.fp(xs)
}

// Lower returns the interpolation of the central value minus the magnitude
// of its negative uncertainty.
func (ip *Interpolation) Lower(xs ...float64) (float64, error) {
	return ip.fm(xs)
}

// UncPlus returns the positive uncertainty at the point, defined as the
// difference between the upper and central curves. Note that this does not
// include any uncertainty due to the interpolation itself.
func (ip *Interpolation) UncPlus(xs ...float64) (float64, error) {
	up, err := ip.fp(xs)
	if err != nil {
		return 0, err
	}
	c, err := ip.f0(xs)
	if err != nil {
		return 0, err
	}
	return up - c, nil
}

// UncMinus returns the negative uncertainty at the point (non-positive),
// defined as -(central - lower).
func (ip *Interpolation) UncMinus(xs ...float64) (float64, error) {
	c, err := ip.f0(xs)
	if err != nil {
		return 0, err
	}
	lo, err := ip.fm(xs)
	if err != nil {
		return 0, err
	}
	return -(c - lo), nil
}

// TupleAt returns (central, +unc, -unc) at the point.
func (ip *Interpolation) TupleAt(xs ...float64) (central, uncP, uncM float64, err error) {
	if central, err = ip.f0(xs); err != nil {
		return 0, 0, 0, err
	}
	up, err := ip.fp(xs)
	if err != nil {
		return 0, 0, 0, err
	}
	lo, err := ip.fm(xs)
	if err != nil {
		return 0, 0, 0, err
	}
	return central, up - central, -(central - lo), nil
}

// Eval returns the central value shifted by level uncertainties: a positive
// level adds level times the positive uncertainty, a negative level
// subtracts |level| times the magnitude of the negative one.
func (ip *Interpolation) Eval(level float64, xs ...float64) (float64, error) {
	central, uncP, uncM, err := ip.TupleAt(xs...)
	if err != nil {
		return 0, err
	}
	switch {
	case level > 0:
		return central + level*uncP, nil
	case level < 0:
		return central + level*math.Abs(uncM), nil
	}
	return central, nil
}
