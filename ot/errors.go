package ot

import (
	"errors"
	"fmt"
)

// Errors returned from parsing and editing font images. Clients should test for
// them with errors.Is, as they are usually wrapped with additional context.
var (
	ErrParse            = errors.New("SFNT format")
	ErrTableNotFound    = errors.New("table not found")
	ErrDuplicateTable   = errors.New("duplicate table")
	ErrTableBounds      = errors.New("table out of bounds")
	ErrMissingHeadTable = errors.New("no head table")
)

// ErrorSeverity represents the severity level of a font error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the font binary unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates an error that prevents a requested operation.
	SeverityMajor
	// SeverityMinor indicates an issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while parsing or editing a font.
type FontError struct {
	Table    Tag           // The table where the error occurred (0 for header and directory)
	Section  string        // Section of the font binary (e.g., "Header", "TableRecords")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
	Err      error         // Sentinel error classifying the issue
}

// Error implements the error interface.
func (e *FontError) Error() string {
	table := "-"
	if e.Table != 0 {
		table = e.Table.Printable()
	}
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, table, e.Section, e.Issue)
}

// Unwrap makes FontError work with errors.Is and errors.As.
func (e *FontError) Unwrap() error {
	return e.Err
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(section string, offset uint32, issue string) error {
	return &FontError{
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
		Offset:   offset,
		Err:      ErrParse,
	}
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent editing of the font.
type FontWarning struct {
	Table  Tag    // The table where the warning occurred (0 for header and directory)
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	table := "-"
	if w.Table != 0 {
		table = w.Table.Printable()
	}
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", table, w.Issue)
}

// errorCollector accumulates warnings while parsing.
type errorCollector struct {
	warnings []FontWarning
}

// addWarning records a parsing warning and traces it.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	w := FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	}
	tracer().Infof("%s", w.String())
	ec.warnings = append(ec.warnings, w)
}

// hasWarnings returns true if any warnings have been recorded.
func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}
