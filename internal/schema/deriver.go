package schema

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrEmptySource    = errors.New("seed file has no header line")
	ErrNoColumns      = errors.New("header has no columns besides id")
	ErrColumnMismatch = errors.New("data line does not match header column count")
)

// ---------------------------------------------------------------------
// 1. Seed File
// ---------------------------------------------------------------------

// ReadSource reads the seed file once. The first line is the header, every
// following non-blank line is a data line.
func ReadSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySource)
	}

	src := &Source{Path: path, Header: SplitLine(lines[0])}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		src.Lines = append(src.Lines, line)
	}
	return src, nil
}

// SplitLine splits on every comma. Quoting and escaping are not supported.
func SplitLine(line string) []string {
	return strings.Split(line, ",")
}

// Zip maps values onto the full header by position and drops the id field.
// The shorter of the two sequences wins unless strict is set, in which case a
// count mismatch is an error.
func (s *Source) Zip(values []string, strict bool) (map[string]string, error) {
	if strict && len(values) != len(s.Header) {
		return nil, fmt.Errorf("%w: got %d values for %d columns", ErrColumnMismatch, len(values), len(s.Header))
	}

	n := min(len(values), len(s.Header))
	fields := make(map[string]string, n)
	for i := 0; i < n; i++ {
		if s.Header[i] == PrimaryKey {
			continue
		}
		fields[s.Header[i]] = values[i]
	}
	return fields, nil
}

// ---------------------------------------------------------------------
// 2. Schema Derivation
// ---------------------------------------------------------------------

// Derive builds the table definition from a header: one text column per
// header field in header order, skipping a field named exactly "id".
func Derive(tableName string, header []string) (*Table, error) {
	t := &Table{Name: tableName}
	seen := make(map[string]bool, len(header))

	for i, name := range header {
		if name == PrimaryKey {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("header field %d is empty", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate header field %q", name)
		}
		seen[name] = true

		t.Columns = append(t.Columns, &Column{
			Name:     name,
			DataType: TextType,
			Meaning:  AnalyzeMeaning(name),
		})
	}

	if len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}
	return t, nil
}
