package domain

import "fmt"

// ExtractionError reports that content extraction produced unusable or
// absent structured data for a page.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("extract %s: no usable content", e.URL)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DateParseError reports an unparseable date string. It is propagated
// rather than defaulted: a wrong timestamp is worse than a missing item.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// UndefinedTableError reports that the destination table does not exist.
type UndefinedTableError struct {
	Schema string
	Table  string
	Err    error
}

func (e *UndefinedTableError) Error() string {
	return fmt.Sprintf("table %s.%s does not exist: %v", e.Schema, e.Table, e.Err)
}

func (e *UndefinedTableError) Unwrap() error { return e.Err }

// UndefinedColumnError reports that a named column is missing from an
// existing destination table.
type UndefinedColumnError struct {
	Schema string
	Table  string
	Column string
	Err    error
}

func (e *UndefinedColumnError) Error() string {
	return fmt.Sprintf("column %s missing from %s.%s: %v", e.Column, e.Schema, e.Table, e.Err)
}

func (e *UndefinedColumnError) Unwrap() error { return e.Err }

// TransientStoreError wraps any other sink-level failure. The in-flight
// transaction is rolled back and the connection survives for the next item.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// UnsupportedValueError reports a field whose value cannot be adapted to
// a storable primitive.
type UnsupportedValueError struct {
	Field string
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("field %s: cannot store value of type %T", e.Field, e.Value)
}
