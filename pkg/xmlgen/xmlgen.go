// Package xmlgen provides a generic, descriptor-driven XML generator for
// profile records. Each record type declares its fields in output order and
// an empty-value policy; the generator walks that declaration recursively
// and emits a sequence of XML text fragments.
package xmlgen

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptyPolicy controls how a record's empty field values are rendered.
type EmptyPolicy int

const (
	// SkipEmpty omits the element entirely when the value is empty.
	SkipEmpty EmptyPolicy = iota

	// RenderEmpty emits a self-closing element when the value is empty.
	RenderEmpty
)

// Record is implemented by every serializable record type. XMLFields returns
// the declared fields in output order; XMLName is the element name used when
// the record appears as an item inside a list wrapper.
type Record interface {
	XMLName() string
	XMLFields() []Field
	EmptyPolicy() EmptyPolicy
}

// Renderer is implemented by values that produce their own XML fragment,
// bypassing the generic field walk. Used where a value must carry an
// attribute instead of plain element content.
type Renderer interface {
	RenderXML() string
}

// Field pairs an element tag with its current value. Supported value types
// are string, int, Renderer, Record, and []Record; anything else fails
// generation with a GenerateError.
type Field struct {
	Tag   string
	Value any
}

// Generate renders a record into a sequence of XML fragments. An optional
// rootTag wraps the whole output; stray angle brackets on the tag are
// stripped before use.
func Generate(record Record, rootTag string) ([]string, error) {
	var fragments []string

	if rootTag != "" {
		cleanTag := strings.TrimSuffix(strings.TrimPrefix(rootTag, "<"), ">")
		fragments = append(fragments, "<"+cleanTag+">")
	}

	fragments, err := appendRecord(fragments, record)
	if err != nil {
		return nil, err
	}

	if rootTag != "" {
		cleanTag := strings.TrimSuffix(strings.TrimPrefix(rootTag, "<"), ">")
		fragments = append(fragments, "</"+cleanTag+">")
	}

	return fragments, nil
}

// GenerateString renders a record into a single XML string.
func GenerateString(record Record, rootTag string) (string, error) {
	fragments, err := Generate(record, rootTag)
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, ""), nil
}

// appendRecord walks a record's declared fields in order, appending one or
// more fragments per field.
func appendRecord(fragments []string, record Record) ([]string, error) {
	renderAll := record.EmptyPolicy() == RenderEmpty

	for _, field := range record.XMLFields() {
		fieldFragments, err := renderField(field, renderAll)
		if err != nil {
			return nil, wrapGenerateError(field, record, err)
		}
		fragments = append(fragments, fieldFragments...)
	}

	return fragments, nil
}

// renderField produces the fragments for a single field.
func renderField(field Field, renderAll bool) ([]string, error) {
	if isEmpty(field.Value) {
		if renderAll {
			return []string{"<" + field.Tag + "/>"}, nil
		}
		return nil, nil
	}

	switch value := field.Value.(type) {
	case Renderer:
		return []string{value.RenderXML()}, nil

	case Record:
		fragments := []string{"<" + field.Tag + ">"}
		fragments, err := appendRecord(fragments, value)
		if err != nil {
			return nil, err
		}
		return append(fragments, "</"+field.Tag+">"), nil

	case []Record:
		// Lists are always containers: the wrapper element is emitted even
		// when the list is empty.
		fragments := []string{"<" + field.Tag + ">"}
		for _, item := range value {
			if renderer, ok := item.(Renderer); ok {
				fragments = append(fragments, renderer.RenderXML())
				continue
			}
			itemTag := strings.ToLower(item.XMLName())
			fragments = append(fragments, "<"+itemTag+">")
			var err error
			fragments, err = appendRecord(fragments, item)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, "</"+itemTag+">")
		}
		return append(fragments, "</"+field.Tag+">"), nil

	case string:
		return []string{"<" + field.Tag + ">" + EscapeText(value) + "</" + field.Tag + ">"}, nil

	case int:
		return []string{"<" + field.Tag + ">" + strconv.Itoa(value) + "</" + field.Tag + ">"}, nil

	default:
		return nil, fmt.Errorf("unsupported value type %T", field.Value)
	}
}

// isEmpty reports whether a field value should be treated as absent.
// Lists are never empty in this sense; their wrapper is always rendered.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)
	return ok && text == ""
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText escapes the five XML-reserved characters in element content.
func EscapeText(text string) string {
	return textEscaper.Replace(text)
}
