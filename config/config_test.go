package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablePaths(t *testing.T) {
	grid, info, err := TablePaths("13TeV.n2x1+-.wino", "data")
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join("data", "lhc_susy_xs_wg", "13TeVn2x1wino_envelope_pm.csv"),
		grid)
	assert.Equal(t, "", info)

	_, _, err = TablePaths("14TeV.gg", "data")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "13TeV.gg")
	assert.Contains(t, keys, "8TeV.sg.high")
	assert.IsIncreasing(t, keys)
}

func TestMatch(t *testing.T) {
	assert.Equal(t,
		[]string{"13TeV.n2x1+-.wino", "13TeV.n2x1+.wino", "13TeV.n2x1-.wino", "13TeV.x1x1.wino"},
		Match("wino"))
	assert.Len(t, Match(""), len(Keys()))
	assert.Empty(t, Match("gravitino"))
}
