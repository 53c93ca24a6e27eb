package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ratio reduces a/b to a float and fails the test if the two units are not
// commensurable.
func ratio(t *testing.T, a, b Unit) float64 {
	t.Helper()
	f, err := a.Div(b).Scalar()
	require.NoError(t, err, "%s / %s", a, b)
	return f
}

func TestSpecialUnits(t *testing.T) {
	table := []struct {
		a, b Unit
	}{
		{Of("%"), Scale(0.01)},
		{Of("%").Mul(Scale(100)), One()},
		{Of("fb"), Scale(0.001).Mul(Of("pb"))},
		{Of("pb"), Scale(1000).Mul(Of("fb"))},
		{Scale(1).Mul(Scale(2)).Mul(Scale(3)), Scale(6)},
		{One(), Scale(1)},
	}
	for i, test := range table {
		assert.InEpsilon(t, 1, ratio(t, test.a, test.b), 1e-5, "case %d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, u := range []Unit{
		Scale(1000), Of("%"), Of("fb"), Of("pb"),
		Of("pb").Mul(Of("GeV")).Inv(),
	} {
		f, err := u.Div(u).Scalar()
		require.NoError(t, err)
		assert.Equal(t, 1.0, f)

		f, err = u.Mul(u.Inv()).Scalar()
		require.NoError(t, err)
		assert.Equal(t, 1.0, f)
	}
}

func TestMulDiv(t *testing.T) {
	table := []struct {
		a, b, c Unit
	}{
		{Of("pb"), Of("pb"), Of("pb").Mul(Of("pb"))},
		{Of("fb"), Of("pb"), Of("fb").Mul(Of("pb"))},
		{Scale(10), Scale(20), Scale(200)},
		{Scale(100).Mul(Of("%")), Of("pb"), Of("pb")},
	}
	for i, test := range table {
		assert.InEpsilon(t, 1, ratio(t, test.a.Mul(test.b), test.c),
			1e-5, "case %d: a*b != c", i)
		assert.InEpsilon(t, 1, ratio(t, test.c.Div(test.b), test.a),
			1e-5, "case %d: c/b != a", i)
		assert.InEpsilon(t, 1, ratio(t, test.c.Div(test.a), test.b),
			1e-5, "case %d: c/a != b", i)
	}
}

func TestScalar(t *testing.T) {
	for _, test := range []struct {
		u Unit
		f float64
	}{
		{One(), 1},
		{Scale(1000), 1000},
		{Scale(0.5), 0.5},
		{Of("%"), 0.01},
		{Of("pb").Div(Of("fb")), 1000},
		{Of("fb").Div(Of("pb")), 0.001},
	} {
		f, err := test.u.Scalar()
		require.NoError(t, err)
		assert.InEpsilon(t, test.f, f, 1e-12)
	}

	for _, u := range []Unit{Of("fb"), Of("GeV"), Of("pb").Mul(Of("GeV"))} {
		_, err := u.Scalar()
		assert.ErrorIs(t, err, ErrDimension, "%s", u)
	}
}
