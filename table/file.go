package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hepkit/xsection/diag"
	"github.com/hepkit/xsection/info"
)

// File is a fully loaded grid file: the annotation plus one normalized
// Table per declared value.
type File struct {
	GridPath string
	InfoPath string
	Info     *info.FileInfo
	Tables   map[string]*Table
}

// ParamMeta describes one parameter for display purposes.
type ParamMeta struct {
	Name        string
	Unit        string
	Granularity float64
}

// ValueMeta describes one value for display purposes.
type ValueMeta struct {
	Name string
	Unit string
}

// Load reads a grid file and its annotation and builds the normalized
// tables. An empty infoPath defaults to the grid path with its extension
// replaced by ".info".
func Load(gridPath, infoPath string, sink *diag.Sink) (*File, error) {
	if infoPath == "" {
		infoPath = defaultInfoPath(gridPath)
	}

	fi, err := info.Load(infoPath, sink)
	if err != nil {
		return nil, err
	}
	rows, err := ReadRows(gridPath, fi)
	if err != nil {
		return nil, err
	}
	tables, err := Build(fi, rows, sink)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gridPath, err)
	}

	return &File{
		GridPath: gridPath,
		InfoPath: infoPath,
		Info:     fi,
		Tables:   tables,
	}, nil
}

func defaultInfoPath(gridPath string) string {
	if i := strings.LastIndex(gridPath, "."); i > strings.LastIndexAny(gridPath, `/\`) {
		return gridPath[:i] + ".info"
	}
	return gridPath + ".info"
}

// Table returns the named table.
func (f *File) Table(name string) (*Table, error) {
	t, ok := f.Tables[name]
	if !ok {
		return nil, fmt.Errorf("file %s has no table %q", f.GridPath, name)
	}
	return t, nil
}

// Names returns the value names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Tables))
	for name := range f.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParamMeta returns name, unit and granularity of every parameter in
// declaration order.
func (f *File) ParamMeta() []ParamMeta {
	out := make([]ParamMeta, len(f.Info.Parameters))
	for i, p := range f.Info.Parameters {
		col, _ := f.Info.Column(p.Column)
		out[i] = ParamMeta{
			Name:        p.Column,
			Unit:        col.Unit,
			Granularity: p.Granularity,
		}
	}
	return out
}

// ValueMeta returns name and unit of every value in declaration order.
func (f *File) ValueMeta() []ValueMeta {
	out := make([]ValueMeta, len(f.Info.Values))
	for i, v := range f.Info.Values {
		col, _ := f.Info.Column(v.Column)
		out[i] = ValueMeta{Name: v.Column, Unit: col.Unit}
	}
	return out
}

// Dump renders every table with its combined uncertainties followed by the
// document block of the annotation.
func (f *File) Dump() string {
	line := strings.Repeat("-", 72)
	parts := []string{}
	for _, name := range f.Names() {
		t := f.Tables[name]
		parts = append(parts, line)
		parts = append(parts, fmt.Sprintf("TABLE %q (unit: %s)", name, t.Unit))
		parts = append(parts, line)
		parts = append(parts, t.String())
	}

	parts = append(parts, line)
	docKeys := make([]string, 0, len(f.Info.Document))
	for k := range f.Info.Document {
		docKeys = append(docKeys, k)
	}
	sort.Strings(docKeys)
	for _, k := range docKeys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, f.Info.Document[k]))
	}
	parts = append(parts, line)
	return strings.Join(parts, "\n") + "\n"
}
