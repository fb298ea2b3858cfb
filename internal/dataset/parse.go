package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a syntax problem in the delimited input.
type ParseError struct {
	Line int // 1-indexed input line, 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse reads delimited text whose first line names the fields and returns
// one RawRow per subsequent record, in input order. Blank lines are skipped.
// Values beyond the header width are dropped; missing trailing values are
// absent from the row.
func Parse(r io.Reader, delim rune) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(record) {
				break
			}
			fields[name] = record[i]
		}
		rows = append(rows, RawRow{fields: fields})
	}

	return rows, nil
}

// wrapCSVError converts an encoding/csv failure into a ParseError.
func wrapCSVError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
