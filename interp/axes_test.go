package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAxesAliases(t *testing.T) {
	for _, name := range []string{"identity", "id", "linear"} {
		a, err := NewAxes([]string{name}, name)
		require.NoError(t, err)
		assert.Equal(t, 7.5, a.WX[0](7.5))
		assert.Equal(t, 7.5, a.WYInv(a.WY(7.5)))
	}

	a, err := NewAxes([]string{"log"}, "log10")
	require.NoError(t, err)
	assert.InDelta(t, 2, a.WX[0](100), 1e-12)
	assert.InDelta(t, 1000, a.WYInv(3), 1e-9)

	_, err = NewAxes([]string{"sqrt"}, "identity")
	assert.Error(t, err)
	_, err = NewAxes([]string{"identity"}, "sqrt")
	assert.Error(t, err)
}

func TestWrapPoint(t *testing.T) {
	a, err := NewAxes([]string{"log", "identity"}, "identity")
	require.NoError(t, err)
	got := a.WrapPoint([]float64{100, 3})
	assert.InDelta(t, 2, got[0], 1e-12)
	assert.Equal(t, 3.0, got[1])
	assert.Equal(t, 2, a.Dim())
}

func TestWrapFunc(t *testing.T) {
	// f_bar(u) = 2u in log-log space is f(x) = x^2 in physical space.
	a, err := NewAxes([]string{"log"}, "log")
	require.NoError(t, err)
	f := a.WrapFunc(func(u []float64) (float64, error) {
		return 2 * u[0], nil
	})

	y, err := f([]float64{30})
	require.NoError(t, err)
	assert.InEpsilon(t, 900, y, 1e-12)

	_, err = f([]float64{30, 40})
	assert.ErrorIs(t, err, ErrArity)
}

func TestLogRoundTrip(t *testing.T) {
	for _, x := range []float64{1e-8, 0.5, 1, 379.23, 1e12} {
		assert.InEpsilon(t, x, Exp10(Log10(x)), 1e-12)
	}
	assert.True(t, math.IsInf(Log10(0), -1))
}
