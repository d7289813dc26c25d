// Package scanerror defines the error taxonomy of the statement extraction
// pipeline. Every failure a scan can produce is represented by a typed error
// so callers can distinguish recoverable conditions (a missing or wrong PDF
// password) from fatal ones.
package scanerror

import "fmt"

// FileTooLargeError reports an upload rejected for exceeding the size limit.
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large: %d bytes (limit %d)", e.Path, e.Size, e.Limit)
}

// UnreadableFileError reports an upload whose bytes could not be read.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("cannot read file %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// PasswordRequiredError signals that the PDF is encrypted and no password was
// supplied. The pipeline suspends rather than failing; the buffer is retained.
type PasswordRequiredError struct {
	Path string
}

func (e *PasswordRequiredError) Error() string {
	return fmt.Sprintf("PDF %s is password protected", e.Path)
}

// IncorrectPasswordError signals that the supplied PDF password was wrong.
// The pipeline stays suspended and the user may retry without limit.
type IncorrectPasswordError struct {
	Path string
}

func (e *IncorrectPasswordError) Error() string {
	return fmt.Sprintf("incorrect password for PDF %s", e.Path)
}

// FatalDocumentError reports a document-open failure not related to
// encryption. It aborts the scan.
type FatalDocumentError struct {
	Path string
	Err  error
}

func (e *FatalDocumentError) Error() string {
	return fmt.Sprintf("cannot open document %s: %v", e.Path, e.Err)
}

func (e *FatalDocumentError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a failure of the remote extraction call (network,
// auth or model error). It is surfaced once and never retried automatically.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("statement extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// EmptyResultError signals that extraction succeeded but found no
// transactions. It is distinct from a technical failure.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "no transactions found in the document"
}
