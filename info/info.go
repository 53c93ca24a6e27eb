/*package info describes the annotations attached to a raw grid file: which
columns exist, which of them span the parameter grid, and how the remaining
columns assemble into values with asymmetric uncertainties. Annotations are
loaded from a declarative JSON or YAML document and validated as a whole
before any table is built from them.
*/
package info

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is wrapped by every validation failure of an annotation.
	ErrSchema = errors.New("invalid annotation")
	// ErrUnknownColumn is returned when a parameter or uncertainty source
	// references a column name that the file does not declare.
	ErrUnknownColumn = errors.New("unknown column name")
	// ErrMixedUncertainty is returned when a value declares both the
	// symmetric "unc" shorthand and an asymmetric "unc+"/"unc-" list.
	ErrMixedUncertainty = errors.New(
		"uncertainty given both symmetrically and asymmetrically")
)

// UncertaintyType is the closed set of interpretations of an uncertainty
// source column.
type UncertaintyType int

const (
	// Absolute sources carry the uncertainty in the value's dimension.
	Absolute UncertaintyType = iota
	// Relative sources are dimensionless fractions of the central value.
	Relative
	// AbsoluteSigned and RelativeSigned sources contribute only when their
	// sign matches the direction being combined.
	AbsoluteSigned
	RelativeSigned
)

// ParseUncertaintyType parses strings like "absolute", "relative" or
// "signed,relative" (token order is free).
func ParseUncertaintyType(s string) (UncertaintyType, error) {
	relative, absolute, signed := false, false, false
	for _, tok := range strings.Split(s, ",") {
		switch strings.TrimSpace(tok) {
		case "relative":
			relative = true
		case "absolute":
			absolute = true
		case "signed":
			signed = true
		default:
			return 0, fmt.Errorf("%w: uncertainty type %q", ErrSchema, s)
		}
	}
	if relative == absolute {
		return 0, fmt.Errorf("%w: uncertainty type %q", ErrSchema, s)
	}
	switch {
	case relative && signed:
		return RelativeSigned, nil
	case relative:
		return Relative, nil
	case signed:
		return AbsoluteSigned, nil
	default:
		return Absolute, nil
	}
}

// Relative reports whether the source is a fraction of the central value.
func (t UncertaintyType) Relative() bool {
	return t == Relative || t == RelativeSigned
}

// Signed reports whether candidates must match the combination direction.
func (t UncertaintyType) Signed() bool {
	return t == AbsoluteSigned || t == RelativeSigned
}

func (t UncertaintyType) String() string {
	switch t {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	case AbsoluteSigned:
		return "absolute,signed"
	case RelativeSigned:
		return "relative,signed"
	}
	return fmt.Sprintf("UncertaintyType(%d)", int(t))
}

// UncertaintySource is one entry of a value's "unc+" or "unc-" list. When
// Columns has several names they are alternative estimates of the same
// source and the largest magnitude wins at each row.
type UncertaintySource struct {
	Columns []string
	Type    UncertaintyType
}

// ColumnInfo annotates one column of the raw file. Name, not Index, is the
// identifier used everywhere else; Unit is empty for unitless columns.
type ColumnInfo struct {
	Index int
	Name  string
	Unit  string
}

// Validate checks the column in isolation.
func (c ColumnInfo) Validate() error {
	if c.Index < 0 {
		return fmt.Errorf("%w: column %q has negative index %d",
			ErrSchema, c.Name, c.Index)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: column %d has no name", ErrSchema, c.Index)
	}
	return nil
}

// ParameterInfo marks a column as a grid parameter. Granularity, when
// positive, is the assumed grid spacing: raw values are snapped to
// round(v/granularity)*granularity so ASCII round-off cannot split one grid
// point into two. Zero means no quantization.
type ParameterInfo struct {
	Column      string
	Granularity float64
}

// Validate checks the parameter in isolation.
func (p ParameterInfo) Validate() error {
	if p.Column == "" {
		return fmt.Errorf("%w: parameter without a column name", ErrSchema)
	}
	if p.Granularity < 0 {
		return fmt.Errorf("%w: parameter %q has negative granularity %g",
			ErrSchema, p.Column, p.Granularity)
	}
	return nil
}

// ValueInfo describes one value column together with its uncertainty
// sources. Attributes carries free-form physical metadata (collider, order,
// PDF set, ...) that the core never interprets.
type ValueInfo struct {
	Column     string
	Attributes map[string]interface{}
	UncP       []UncertaintySource
	UncM       []UncertaintySource
}

// Validate checks the value in isolation.
func (v ValueInfo) Validate() error {
	if v.Column == "" {
		return fmt.Errorf("%w: value without a column name", ErrSchema)
	}
	for _, src := range append(append([]UncertaintySource{}, v.UncP...), v.UncM...) {
		if len(src.Columns) == 0 {
			return fmt.Errorf("%w: value %q has an uncertainty source "+
				"without columns", ErrSchema, v.Column)
		}
	}
	return nil
}

// ReaderOptions steers the raw grid-file reader. The zero value means: skip
// the first (header) row and split rows on whitespace.
type ReaderOptions struct {
	// SkipRows lists zero-based physical line numbers to drop.
	SkipRows []int
	// Delimiter is the field separator. Empty means whitespace splitting.
	Delimiter string
	// Comment is a prefix marking whole-line comments.
	Comment string
}

// FileInfo aggregates the whole annotation document.
type FileInfo struct {
	// Document is display-only metadata. Nothing may depend on its content.
	Document map[string]interface{}
	// Version is the annotation format version declared by the file, or ""
	// when the file declares none.
	Version       string
	Columns       []ColumnInfo
	Parameters    []ParameterInfo
	Values        []ValueInfo
	ReaderOptions ReaderOptions
}

// Column returns the column annotation with the given name.
func (f *FileInfo) Column(name string) (ColumnInfo, error) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return ColumnInfo{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// ColumnNames returns the declared column names in column order.
func (f *FileInfo) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the document as a whole: column indices must equal their
// positions, names must be unique, and every column referenced by a
// parameter or value must be declared.
func (f *FileInfo) Validate() error {
	known := map[string]bool{}
	for i, c := range f.Columns {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Index != i {
			return fmt.Errorf("%w: column %q has index %d at position %d",
				ErrSchema, c.Name, c.Index, i)
		}
		if known[c.Name] {
			return fmt.Errorf("%w: duplicated column name %q",
				ErrSchema, c.Name)
		}
		known[c.Name] = true
	}

	for _, p := range f.Parameters {
		if err := p.Validate(); err != nil {
			return err
		}
		if !known[p.Column] {
			return fmt.Errorf("%w: parameter %q", ErrUnknownColumn, p.Column)
		}
	}

	for _, v := range f.Values {
		if err := v.Validate(); err != nil {
			return err
		}
		if !known[v.Column] {
			return fmt.Errorf("%w: value %q", ErrUnknownColumn, v.Column)
		}
		for _, src := range append(append([]UncertaintySource{}, v.UncP...), v.UncM...) {
			for _, c := range src.Columns {
				if !known[c] {
					return fmt.Errorf("%w: uncertainty source %q of value %q",
						ErrUnknownColumn, c, v.Column)
				}
			}
		}
	}
	return nil
}
