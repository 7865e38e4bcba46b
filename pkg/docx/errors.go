package docx

import "fmt"

// DocumentError reports an input that could not be interpreted as a valid
// Word document. It aborts the whole conversion; there is no partial output.
type DocumentError struct {
	Source string
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("cannot load document %s: %s", e.Source, e.Reason)
	}
	return "cannot load document: " + e.Reason
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
