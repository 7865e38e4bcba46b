package xmlgen

import "fmt"

// GenerateError reports a failure while rendering a specific field. It names
// the field tag, the owning record type, and the attempted value, and keeps
// the original cause available via Unwrap.
type GenerateError struct {
	Tag        string
	RecordType string
	Value      any
	Err        error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("failed to generate XML for tag %q in %s (value: %#v): %v",
		e.Tag, e.RecordType, e.Value, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// wrapGenerateError attaches field context to a rendering failure. An error
// that already carries its own context is propagated unchanged so the
// innermost field is the one reported.
func wrapGenerateError(field Field, record Record, err error) error {
	if _, ok := err.(*GenerateError); ok {
		return err
	}
	return &GenerateError{
		Tag:        field.Tag,
		RecordType: record.XMLName(),
		Value:      field.Value,
		Err:        err,
	}
}
