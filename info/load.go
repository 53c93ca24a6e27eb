package info

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hepkit/xsection/diag"
	"github.com/hepkit/xsection/version"
)

// Load reads an annotation document from path and validates it. Files ending
// in ".yaml" or ".yml" are parsed as YAML, everything else (including the
// conventional ".info" suffix) as JSON. Non-fatal oddities such as unknown
// keys go to sink.
func Load(path string, sink *diag.Sink) (*FileInfo, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(text, &doc)
	default:
		err = json.Unmarshal(text, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	fi, err := FromDocument(doc, filepath.Base(path), sink)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fi, nil
}

// FromDocument builds a FileInfo from an already-decoded declarative
// document and validates it. scope labels warnings sent to sink.
func FromDocument(
	doc map[string]interface{}, scope string, sink *diag.Sink,
) (*FileInfo, error) {
	fi := &FileInfo{Document: asMap(doc["document"])}
	if len(fi.Document) == 0 {
		sink.Warnf(scope, "no document is given")
	}

	// A declared format version newer than this reader is worth a warning:
	// the file may use annotation features this reader does not know.
	if raw, ok := doc["version"]; ok {
		fi.Version = asString(raw)
		if _, _, _, err := version.Parse(fi.Version); err != nil {
			sink.Warnf(scope, "%v", err)
		} else if newer, _ := version.Later(fi.Version, version.SourceVersion); newer {
			sink.Warnf(scope, "annotation format version %s is newer than "+
				"this reader (%s)", fi.Version, version.SourceVersion)
		}
	}

	for i, raw := range asList(doc["columns"]) {
		col, err := parseColumn(i, raw, scope, sink)
		if err != nil {
			return nil, err
		}
		fi.Columns = append(fi.Columns, col)
	}

	for _, raw := range asList(doc["parameters"]) {
		p, err := parseParameter(raw, scope, sink)
		if err != nil {
			return nil, err
		}
		fi.Parameters = append(fi.Parameters, p)
	}

	defaults := asMap(doc["attributes"])
	for _, raw := range asList(doc["values"]) {
		v, err := parseValue(raw, defaults, scope, sink)
		if err != nil {
			return nil, err
		}
		fi.Values = append(fi.Values, v)
	}

	if raw, ok := doc["reader_options"]; ok {
		opts, err := parseReaderOptions(raw, scope, sink)
		if err != nil {
			return nil, err
		}
		fi.ReaderOptions = opts
	}

	for key := range doc {
		switch key {
		case "document", "version", "columns", "parameters", "values",
			"attributes", "reader_options":
		default:
			sink.Warnf(scope, "unrecognized attribute %q", key)
		}
	}

	if err := fi.Validate(); err != nil {
		return nil, err
	}
	return fi, nil
}

func parseColumn(
	i int, raw interface{}, scope string, sink *diag.Sink,
) (ColumnInfo, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return ColumnInfo{}, fmt.Errorf(
			"%w: column %d is not an object", ErrSchema, i)
	}
	col := ColumnInfo{
		Index: i,
		Name:  asString(obj["name"]),
		Unit:  asString(obj["unit"]),
	}
	// An explicit index is allowed but must agree with the position.
	if v, ok := obj["index"]; ok {
		if idx, ok := asInt(v); ok {
			col.Index = idx
		}
	}
	for key := range obj {
		switch key {
		case "name", "unit", "index":
		default:
			sink.Warnf(scope, "unknown key %q in column %q", key, col.Name)
		}
	}
	return col, col.Validate()
}

func parseParameter(
	raw interface{}, scope string, sink *diag.Sink,
) (ParameterInfo, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return ParameterInfo{}, fmt.Errorf(
			"%w: parameter entry is not an object", ErrSchema)
	}
	p := ParameterInfo{Column: asString(obj["column"])}
	if v, ok := obj["granularity"]; ok {
		g, ok := asFloat(v)
		if !ok {
			return ParameterInfo{}, fmt.Errorf(
				"%w: granularity of parameter %q is not a number",
				ErrSchema, p.Column)
		}
		p.Granularity = g
	}
	for key := range obj {
		switch key {
		case "column", "granularity":
		default:
			sink.Warnf(scope, "unknown key %q in parameter %q", key, p.Column)
		}
	}
	return p, p.Validate()
}

func parseValue(
	raw interface{}, defaults map[string]interface{},
	scope string, sink *diag.Sink,
) (ValueInfo, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return ValueInfo{}, fmt.Errorf(
			"%w: value entry is not an object", ErrSchema)
	}
	v := ValueInfo{Column: asString(obj["column"])}
	if v.Column == "" {
		return ValueInfo{}, fmt.Errorf(
			"%w: value entry without a column name", ErrSchema)
	}

	// File-level attributes are defaults, overridden per value.
	v.Attributes = map[string]interface{}{}
	for key, val := range defaults {
		v.Attributes[key] = val
	}
	for key, val := range asMap(obj["attributes"]) {
		v.Attributes[key] = val
	}

	_, symmetric := obj["unc"]
	_, plus := obj["unc+"]
	_, minus := obj["unc-"]
	if symmetric && (plus || minus) {
		return ValueInfo{}, fmt.Errorf("%w: value %q",
			ErrMixedUncertainty, v.Column)
	}

	for _, dir := range []struct {
		key string
		dst *[]UncertaintySource
	}{
		{"unc+", &v.UncP},
		{"unc-", &v.UncM},
	} {
		def, ok := obj[dir.key]
		if !ok {
			def, ok = obj["unc"]
		}
		if !ok || def == nil {
			sink.Warnf(scope, "uncertainty (%s) missing for %q",
				dir.key, v.Column)
			continue
		}
		srcs, err := parseUncertaintySources(def, v.Column, dir.key)
		if err != nil {
			return ValueInfo{}, err
		}
		*dir.dst = srcs
	}
	if len(v.UncP) == 0 && len(v.UncM) == 0 {
		sink.Warnf(scope, "value %q lacks uncertainties", v.Column)
	}

	for key := range obj {
		switch key {
		case "column", "attributes", "unc", "unc+", "unc-":
		default:
			sink.Warnf(scope, "unknown key %q in value %q", key, v.Column)
		}
	}
	return v, v.Validate()
}

func parseUncertaintySources(
	raw interface{}, value, key string,
) ([]UncertaintySource, error) {
	list := asList(raw)
	if list == nil {
		return nil, fmt.Errorf("%w: %s of value %q is not a list",
			ErrSchema, key, value)
	}
	srcs := make([]UncertaintySource, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s entry of value %q is not an object",
				ErrSchema, key, value)
		}
		var cols []string
		switch c := obj["column"].(type) {
		case string:
			cols = []string{c}
		case []interface{}:
			for _, item := range c {
				cols = append(cols, asString(item))
			}
		default:
			return nil, fmt.Errorf("%w: %s entry of value %q has no column",
				ErrSchema, key, value)
		}
		typ, err := ParseUncertaintyType(asString(obj["type"]))
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", value, err)
		}
		srcs = append(srcs, UncertaintySource{Columns: cols, Type: typ})
	}
	return srcs, nil
}

func parseReaderOptions(
	raw interface{}, scope string, sink *diag.Sink,
) (ReaderOptions, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return ReaderOptions{}, fmt.Errorf(
			"%w: reader_options is not an object", ErrSchema)
	}
	opts := ReaderOptions{}
	for key, val := range obj {
		switch key {
		case "skiprows":
			// Key presence matters: an explicit empty list means "skip
			// nothing", while an absent key selects the default header skip.
			opts.SkipRows = []int{}
			switch v := val.(type) {
			case []interface{}:
				for _, item := range v {
					if n, ok := asInt(item); ok {
						opts.SkipRows = append(opts.SkipRows, n)
					}
				}
			default:
				// A bare number means "skip the first n rows".
				if n, ok := asInt(val); ok {
					for i := 0; i < n; i++ {
						opts.SkipRows = append(opts.SkipRows, i)
					}
				}
			}
		case "sep", "delimiter":
			opts.Delimiter = asString(val)
		case "comment":
			opts.Comment = asString(val)
		case "delim_whitespace":
			if b, ok := val.(bool); ok && b {
				opts.Delimiter = ""
			}
		case "names":
			// Column names always come from the "columns" annotation.
			sink.Warnf(scope, "reader option %q is ignored", key)
		default:
			sink.Warnf(scope, "unknown reader option %q", key)
		}
	}
	return opts, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asList(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	f, ok := asFloat(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
