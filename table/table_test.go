package table

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hepkit/xsection/diag"
	"github.com/hepkit/xsection/info"
)

func loadTestFile(t *testing.T, name string) *File {
	t.Helper()
	f, err := Load(filepath.Join("testdata", name), "", diag.New())
	require.NoError(t, err)
	return f
}

func TestLoadWino(t *testing.T) {
	f := loadTestFile(t, "wino_pm.csv")
	assert.Equal(t, filepath.Join("testdata", "wino_pm.info"), f.InfoPath)

	xsec, err := f.Table("xsec")
	require.NoError(t, err)
	assert.Equal(t, 1, xsec.Dim())
	assert.Equal(t, 6, xsec.Len())
	assert.Equal(t, "fb", xsec.Unit)
	assert.Equal(t, []string{"m_wino"}, xsec.ParamNames)

	// Relative sources in percent: each group is one column, the two groups
	// add in quadrature.
	r, ok := xsec.Lookup(300)
	require.True(t, ok)
	assert.InDelta(t, 379.23, r.Value, 1e-9)
	assert.InDelta(t, 17.89, r.UncPlus, 0.005)
	assert.InDelta(t, -18.29, r.UncMinus, 0.005)

	r, ok = xsec.Lookup(325)
	require.True(t, ok)
	assert.InDelta(t, 276.17, r.Value, 1e-9)
	assert.InDelta(t, 13.30, r.UncPlus, 0.005)
	assert.InDelta(t, -14.14, r.UncMinus, 0.005)
}

func TestLoadGrid2D(t *testing.T) {
	f := loadTestFile(t, "sg_8TeV.xsec")
	xsec, err := f.Table("xsec")
	require.NoError(t, err)
	assert.Equal(t, 2, xsec.Dim())
	assert.Equal(t, 9, xsec.Len())

	// Symmetric "unc" shorthand: the same absolute source feeds both
	// directions.
	r, ok := xsec.Lookup(700, 1400)
	require.True(t, ok)
	assert.InDelta(t, 0.0473379597888, r.Value, 1e-12)
	assert.InDelta(t, 0.00905940683923, r.UncPlus, 1e-12)
	assert.InDelta(t, -0.00905940683923, r.UncMinus, 1e-12)

	axes := xsec.Axes()
	require.Len(t, axes, 2)
	assert.Equal(t, []float64{700, 750, 800}, axes[0])
	assert.Equal(t, []float64{1400, 1450, 1500}, axes[1])
}

func TestUncertaintySigns(t *testing.T) {
	for _, name := range []string{"wino_pm.csv", "sg_8TeV.xsec"} {
		f := loadTestFile(t, name)
		for _, tab := range f.Tables {
			for i := 0; i < tab.Len(); i++ {
				r := tab.Record(i)
				assert.GreaterOrEqual(t, r.UncPlus, 0.0)
				assert.LessOrEqual(t, r.UncMinus, 0.0)
			}
		}
	}
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, 300.0, Quantize(299.99999999, 1))
	assert.Equal(t, 300.0, Quantize(300.00000001, 1))
	assert.InDelta(t, 33.3, Quantize(33.300000000000004, 0.01), 1e-9)
	// zero granularity disables quantization
	assert.Equal(t, 299.99999999, Quantize(299.99999999, 0))
	// small negatives snap to +0, never -0
	assert.False(t, math.Signbit(Quantize(-0.4, 1)))

	// idempotence
	for _, x := range []float64{299.99999999, 325.0000001, 33.33, 1234.5} {
		for _, g := range []float64{0.01, 1, 5, 25} {
			once := Quantize(x, g)
			assert.Equal(t, once, Quantize(once, g), "x=%g g=%g", x, g)
		}
	}
}

func TestDuplicateKeyFails(t *testing.T) {
	sink := diag.New()
	fi, err := info.Load(filepath.Join("testdata", "wino_pm.info"), sink)
	require.NoError(t, err)
	rows, err := ReadRows(filepath.Join("testdata", "wino_pm.csv"), fi)
	require.NoError(t, err)

	// Granularity far larger than the 25 GeV grid spacing collapses
	// neighboring rows onto the same key.
	fi.Parameters[0].Granularity = 100
	_, err = Build(fi, rows, sink)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.ErrorContains(t, err, "xsec")
}

func TestZeroCrossingGridPoint(t *testing.T) {
	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "dm", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
		},
		Parameters: []info.ParameterInfo{{Column: "dm", Granularity: 1}},
		Values:     []info.ValueInfo{{Column: "xsec"}},
	}

	// 0.4 and -0.4 both quantize onto the grid point 0 and must collide.
	rows := [][]float64{{0.4, 10}, {-0.4, 20}}
	_, err := Build(fi, rows, diag.New())
	assert.ErrorIs(t, err, ErrDuplicateKey)

	tables, err := Build(fi, [][]float64{{-0.4, 20}}, diag.New())
	require.NoError(t, err)
	r, ok := tables["xsec"].Lookup(0)
	require.True(t, ok)
	assert.Equal(t, 20.0, r.Value)

	// Directly constructed keys carrying a -0 component collide too.
	_, err = New("xsec", "pb", []string{"dm"},
		[][]float64{{0}, {math.Copysign(0, -1)}},
		[]Record{{Value: 1}, {Value: 2}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSignedSources(t *testing.T) {
	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "m", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
			{Index: 2, Name: "d_lo", Unit: "pb"},
			{Index: 3, Name: "d_hi", Unit: "pb"},
		},
		Parameters: []info.ParameterInfo{{Column: "m"}},
		Values: []info.ValueInfo{{
			Column: "xsec",
			UncP: []info.UncertaintySource{{
				Columns: []string{"d_lo", "d_hi"},
				Type:    info.AbsoluteSigned,
			}},
			UncM: []info.UncertaintySource{{
				Columns: []string{"d_lo", "d_hi"},
				Type:    info.AbsoluteSigned,
			}},
		}},
	}
	rows := [][]float64{
		{100, 10, -0.5, 0.3},
		{200, 5, -0.2, 0.4},
		// No positive candidate at all: the group contributes zero.
		{300, 2, -0.1, -0.3},
	}
	tables, err := Build(fi, rows, diag.New())
	require.NoError(t, err)
	xsec := tables["xsec"]

	r, _ := xsec.Lookup(100)
	assert.InDelta(t, 0.3, r.UncPlus, 1e-12)
	assert.InDelta(t, -0.5, r.UncMinus, 1e-12)

	r, _ = xsec.Lookup(300)
	assert.Equal(t, 0.0, r.UncPlus)
	// "OR the largest": both candidates are negative, the larger wins.
	assert.InDelta(t, -0.3, r.UncMinus, 1e-12)
}

func TestUnitConversionAcrossColumns(t *testing.T) {
	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "m", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
			{Index: 2, Name: "unc_fb", Unit: "fb"},
		},
		Parameters: []info.ParameterInfo{{Column: "m"}},
		Values: []info.ValueInfo{{
			Column: "xsec",
			UncP: []info.UncertaintySource{
				{Columns: []string{"unc_fb"}, Type: info.Absolute},
			},
			UncM: []info.UncertaintySource{
				{Columns: []string{"unc_fb"}, Type: info.Absolute},
			},
		}},
	}
	rows := [][]float64{{100, 2.5, 30}}
	tables, err := Build(fi, rows, diag.New())
	require.NoError(t, err)

	// 30 fb = 0.03 pb.
	r, _ := tables["xsec"].Lookup(100)
	assert.InDelta(t, 0.03, r.UncPlus, 1e-12)
}

func TestRelativeSourceMustBeDimensionless(t *testing.T) {
	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "m", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
			{Index: 2, Name: "unc", Unit: "GeV"},
		},
		Parameters: []info.ParameterInfo{{Column: "m"}},
		Values: []info.ValueInfo{{
			Column: "xsec",
			UncP: []info.UncertaintySource{
				{Columns: []string{"unc"}, Type: info.Relative},
			},
			UncM: []info.UncertaintySource{
				{Columns: []string{"unc"}, Type: info.Relative},
			},
		}},
	}
	_, err := Build(fi, [][]float64{{100, 1, 0.1}}, diag.New())
	assert.Error(t, err)
	assert.ErrorContains(t, err, "unc")
}

func TestMixedAbsoluteRelativeColumnFails(t *testing.T) {
	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "m", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
			{Index: 2, Name: "unc", Unit: ""},
		},
		Parameters: []info.ParameterInfo{{Column: "m"}},
		Values: []info.ValueInfo{{
			Column: "xsec",
			UncP: []info.UncertaintySource{
				{Columns: []string{"unc"}, Type: info.Relative},
			},
			UncM: []info.UncertaintySource{
				{Columns: []string{"unc"}, Type: info.Absolute},
			},
		}},
	}
	_, err := Build(fi, [][]float64{{100, 1, 0.1}}, diag.New())
	assert.ErrorIs(t, err, info.ErrSchema)
}

func TestReadRowsSkipRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headerless.txt")
	require.NoError(t, os.WriteFile(path, []byte("100 2.5\n200 1.5\n"), 0644))

	fi := &info.FileInfo{
		Columns: []info.ColumnInfo{
			{Index: 0, Name: "m", Unit: "GeV"},
			{Index: 1, Name: "xsec", Unit: "pb"},
		},
		Parameters: []info.ParameterInfo{{Column: "m"}},
		Values:     []info.ValueInfo{{Column: "xsec"}},
	}

	// Without reader options the first line is taken for a header.
	rows, err := ReadRows(path, fi)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// An explicit empty skiprows keeps every line.
	fi.ReaderOptions.SkipRows = []int{}
	rows, err = ReadRows(path, fi)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []float64{100, 2.5}, rows[0])
}

func TestSplitFields(t *testing.T) {
	fields, err := splitFields("1,2,3", ",")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, fields)

	// A multi-byte delimiter is one rune, not its first byte.
	fields, err = splitFields("1§2", "§")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, fields)

	_, err = splitFields("1::2", "::")
	assert.ErrorContains(t, err, "single character")
}

func TestDense(t *testing.T) {
	f := loadTestFile(t, "sg_8TeV.xsec")
	xsec, err := f.Table("xsec")
	require.NoError(t, err)

	axes, vals := xsec.Dense(func(r Record) float64 { return r.Value })
	require.Len(t, vals, 9)
	// row-major: vals[i*len(axes[1])+j]
	assert.InDelta(t, 0.0473379597888, vals[0], 1e-12)
	assert.InDelta(t, 0.0382279746207, vals[1], 1e-12)
	assert.InDelta(t, 0.0390134257995, vals[3], 1e-12)
	_ = axes

	// A missing grid point unstacks to NaN.
	keys := [][]float64{{700, 1400}, {700, 1450}, {750, 1400}}
	recs := []Record{{Value: 1}, {Value: 2}, {Value: 3}}
	partial, err := New("xsec", "pb", []string{"msq", "mgl"}, keys, recs)
	require.NoError(t, err)
	_, vals = partial.Dense(func(r Record) float64 { return r.Value })
	require.Len(t, vals, 4)
	assert.True(t, math.IsNaN(vals[3]))
}

func TestDump(t *testing.T) {
	f := loadTestFile(t, "wino_pm.csv")
	dump := f.Dump()
	assert.Contains(t, dump, `TABLE "xsec" (unit: fb)`)
	assert.Contains(t, dump, "title: ")
}
