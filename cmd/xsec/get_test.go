package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hepkit/xsection/interp"
	"github.com/hepkit/xsection/table"
)

func TestDefaultInterpolator(t *testing.T) {
	itp, err := defaultInterpolator(1)
	require.NoError(t, err)
	od, ok := itp.(*interp.OneDim)
	require.True(t, ok)
	assert.Equal(t, interp.Spline, od.Kind)
	assert.Equal(t, interp.AxesLogLog, od.Axes)

	itp, err = defaultInterpolator(2)
	require.NoError(t, err)
	g, ok := itp.(*interp.Grid)
	require.True(t, ok)
	assert.Equal(t, interp.BivariateSpline, g.Kind)

	itp, err = defaultInterpolator(3)
	require.NoError(t, err)
	g, ok = itp.(*interp.Grid)
	require.True(t, ok)
	assert.Equal(t, interp.Multilinear, g.Kind)
	assert.Equal(t, 3, g.Axes.Dim())
}

func TestMatchesAll(t *testing.T) {
	assert.True(t, matchesAll("13TeV.n2x1+-.wino", nil))
	assert.True(t, matchesAll("13TeV.n2x1+-.wino", []string{"13TeV", "wino"}))
	assert.False(t, matchesAll("13TeV.n2x1+-.wino", []string{"8TeV"}))
}

func TestExportMathematica(t *testing.T) {
	keys := [][]float64{{300}, {325}}
	recs := []table.Record{
		{Value: 379.23, UncPlus: 17.89, UncMinus: -18.29},
		{Value: 276.17, UncPlus: 13.30, UncMinus: -14.14},
	}
	tab, err := table.New("xsec", "fb", []string{"m_wino"}, keys, recs)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, exportMathematica(&b, tab))
	out := b.String()
	assert.Contains(t, out, "{300} -> Around[379.23, {18.29, 17.89}]")
	assert.Contains(t, out, "{325} -> Around[276.17, {14.14, 13.3}]")
	assert.True(t, strings.HasPrefix(out, "<|"))
}
