// Package config holds the registry of preset cross-section tables shipped
// with the package, keyed by collider energy and production process.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// entry points at a grid file and, optionally, an explicit info file. When
// Info is empty the info file is the grid path with its extension replaced
// by ".info".
type entry struct {
	Grid string
	Info string
}

// tableNames maps preset keys to data paths relative to the data directory.
var tableNames = map[string]entry{
	// gluino
	"7TeV.gg.decoup":  {Grid: "nllfast/7TeV/gdcpl_nllnlo_mstw2008.grid"},
	"7TeV.gg":         {Grid: "nllfast/7TeV/gg_nllnlo_mstw2008.grid"},
	"7TeV.gg.high":    {Grid: "nllfast/7TeV/gg_nllnlo_hm_mstw2008.grid"},
	"8TeV.gg.decoup":  {Grid: "nllfast/8TeV/gdcpl_nllnlo_mstw2008.grid"},
	"8TeV.gg":         {Grid: "nllfast/8TeV/gg_nllnlo_mstw2008.grid"},
	"8TeV.gg.high":    {Grid: "nllfast/8TeV/gg_nllnlo_hm_mstw2008.grid"},
	"13TeV.gg.decoup": {Grid: "nnllfast/13TeV/gdcpl_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},
	"13TeV.gg":        {Grid: "nnllfast/13TeV/gg_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},
	"7TeV.sg":         {Grid: "nllfast/7TeV/sg_nllnlo_mstw2008.grid"},
	"7TeV.sg.high":    {Grid: "nllfast/7TeV/sg_nllnlo_hm_mstw2008.grid"},
	"8TeV.sg":         {Grid: "nllfast/8TeV/sg_nllnlo_mstw2008.grid"},
	"8TeV.sg.high":    {Grid: "nllfast/8TeV/sg_nllnlo_hm_mstw2008.grid"},
	"13TeV.sg":        {Grid: "nnllfast/13TeV/sg_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},

	// squark (10 degenerate squarks)
	"7TeV.sb10.decoup":  {Grid: "nllfast/7TeV/sdcpl_nllnlo_mstw2008.grid"},
	"7TeV.sb10":         {Grid: "nllfast/7TeV/sb_nllnlo_mstw2008.grid"},
	"7TeV.ss10":         {Grid: "nllfast/7TeV/ss_nllnlo_mstw2008.grid"},
	"8TeV.sb10.decoup":  {Grid: "nllfast/8TeV/sdcpl_nllnlo_mstw2008.grid"},
	"8TeV.sb10":         {Grid: "nllfast/8TeV/sb_nllnlo_mstw2008.grid"},
	"8TeV.ss10":         {Grid: "nllfast/8TeV/ss_nllnlo_mstw2008.grid"},
	"13TeV.sb10.decoup": {Grid: "nnllfast/13TeV/sdcpl_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},
	"13TeV.sb10":        {Grid: "nnllfast/13TeV/sb_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},
	"13TeV.ss10":        {Grid: "nnllfast/13TeV/ss_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},

	// stop
	"7TeV.st":  {Grid: "nllfast/7TeV/st_nllnlo_mstw2008.grid"},
	"8TeV.st":  {Grid: "nllfast/8TeV/st_nllnlo_mstw2008.grid"},
	"13TeV.st": {Grid: "nnllfast/13TeV/st_nnlonnll_pdf4lhc15_13TeV_wpresc.grid"},

	// wino
	"13TeV.n2x1-.wino":  {Grid: "lhc_susy_xs_wg/13TeVn2x1wino_envelope_m.csv"},
	"13TeV.n2x1+.wino":  {Grid: "lhc_susy_xs_wg/13TeVn2x1wino_envelope_p.csv"},
	"13TeV.n2x1+-.wino": {Grid: "lhc_susy_xs_wg/13TeVn2x1wino_envelope_pm.csv"},
	"13TeV.x1x1.wino":   {Grid: "lhc_susy_xs_wg/13TeVx1x1wino_envelope.csv"},

	// slepton
	"13TeV.slepslep":    {Grid: "lhc_susy_xs_wg/13TeVslepslep_pdf4lhc15_llrr.csv"},
	"13TeV.slepslep.ll": {Grid: "lhc_susy_xs_wg/13TeVslepslep_pdf4lhc15_ll.csv"},
	"13TeV.slepslep.rr": {Grid: "lhc_susy_xs_wg/13TeVslepslep_pdf4lhc15_rr.csv"},

	// higgsino
	"13TeV.n1n2.hino.deg":   {Grid: "lhc_susy_xs_wg/13TeVn1n2hino_deg_mstw.csv"},
	"13TeV.n2x1-.hino.deg":  {Grid: "lhc_susy_xs_wg/13TeVn2x1hino_deg_mstw_m.csv"},
	"13TeV.n2x1+.hino.deg":  {Grid: "lhc_susy_xs_wg/13TeVn2x1hino_deg_mstw_p.csv"},
	"13TeV.n2x1+-.hino.deg": {Grid: "lhc_susy_xs_wg/13TeVn2x1hino_deg_mstw_pm.csv"},
	"13TeV.x1x1.hino.deg":   {Grid: "lhc_susy_xs_wg/13TeVx1x1hino_deg_mstw.csv"},
}

// TablePaths resolves a preset key to the grid file path and, when the
// preset configures one explicitly, the info file path. infoPath is ""
// when the default grid-with-.info-extension rule applies.
func TablePaths(key, dataDir string) (gridPath, infoPath string, err error) {
	e, ok := tableNames[key]
	if !ok {
		return "", "", fmt.Errorf("no preset table %q", key)
	}
	gridPath = filepath.Join(dataDir, filepath.FromSlash(e.Grid))
	if e.Info != "" {
		infoPath = filepath.Join(dataDir, filepath.FromSlash(e.Info))
	}
	return gridPath, infoPath, nil
}

// Keys returns all preset keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(tableNames))
	for k := range tableNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match returns the sorted preset keys containing the substring. An empty
// substring matches everything.
func Match(substr string) []string {
	var keys []string
	for _, k := range Keys() {
		if strings.Contains(k, substr) {
			keys = append(keys, k)
		}
	}
	return keys
}
