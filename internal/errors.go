package internal

import "fmt"

// QueryError represents a transport-level failure talking to the backend
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// HistoryError represents errors accessing the conversation history store
type HistoryError struct {
	Op  string // "open", "save", "load", "list"
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("history error: %s: %v", e.Op, e.Err)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during conversation export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
