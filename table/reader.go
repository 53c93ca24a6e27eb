package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hepkit/xsection/info"
)

// ReadRows reads the raw grid file at path into numeric rows following the
// annotation's reader options. By default the first physical line is skipped
// (it is assumed to be a human-readable header) and rows are split on
// whitespace; annotations may instead select a delimiter, extra skipped
// lines, and a comment prefix.
func ReadRows(path string, fi *info.FileInfo) ([][]float64, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := fi.ReaderOptions
	skip := map[int]bool{}
	if opts.SkipRows == nil {
		skip[0] = true
	}
	for _, i := range opts.SkipRows {
		skip[i] = true
	}

	lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
	kept := []string{}
	keptNum := []int{}
	for i, line := range lines {
		if skip[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if opts.Comment != "" && strings.HasPrefix(trimmed, opts.Comment) {
			continue
		}
		kept = append(kept, line)
		keptNum = append(keptNum, i+1)
	}

	rows := make([][]float64, 0, len(kept))
	for i, line := range kept {
		fields, err := splitFields(line, opts.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, keptNum[i], err)
		}
		if len(fields) != len(fi.Columns) {
			return nil, fmt.Errorf("%s:%d: %d fields, want %d",
				path, keptNum[i], len(fields), len(fi.Columns))
		}
		row := make([]float64, len(fields))
		for j, field := range fields {
			row[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %q: %w",
					path, keptNum[i], fi.Columns[j].Name, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitFields(line, delimiter string) ([]string, error) {
	if delimiter == "" {
		return strings.Fields(line), nil
	}
	comma, size := utf8.DecodeRuneInString(delimiter)
	if comma == utf8.RuneError || size != len(delimiter) {
		return nil, fmt.Errorf("delimiter %q is not a single character", delimiter)
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = comma
	r.TrimLeadingSpace = true
	return r.Read()
}
