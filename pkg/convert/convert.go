// Package convert ties the pipeline together: load a document from a path or
// URL, extract the profile, and generate the submission XML.
package convert

import (
	"context"

	"github.com/joho9119/other-support-xml-gen/pkg/docx"
	"github.com/joho9119/other-support-xml-gen/pkg/extract"
	"github.com/joho9119/other-support-xml-gen/pkg/fetch"
	"github.com/joho9119/other-support-xml-gen/pkg/schema"
	"github.com/joho9119/other-support-xml-gen/pkg/xmlgen"
)

// XMLDeclaration is prepended to every generated document.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// RootTag wraps the generated profile XML.
const RootTag = "profile"

// Result is one successful conversion: the XML text and the filename derived
// from the profile's name parts.
type Result struct {
	Profile  *schema.Profile
	XML      string
	FileName string
}

// Converter runs the document-to-XML pipeline.
type Converter struct {
	parser  *extract.Parser
	fetcher *fetch.Fetcher
}

// New creates a Converter with the built-in label vocabulary and no fetcher;
// it can only convert local files.
func New() *Converter {
	return &Converter{parser: extract.NewParser()}
}

// NewWithOptions creates a Converter with a custom parser and an optional
// fetcher for URL inputs.
func NewWithOptions(parser *extract.Parser, fetcher *fetch.Fetcher) *Converter {
	return &Converter{parser: parser, fetcher: fetcher}
}

// Convert loads the input (a local .docx path, or an HTTP/HTTPS URL when a
// fetcher is configured) and produces the profile XML.
func (c *Converter) Convert(ctx context.Context, input string) (*Result, error) {
	var doc *docx.Document
	var err error

	if fetch.IsURL(input) {
		if c.fetcher == nil {
			return nil, &docx.DocumentError{Source: input, Reason: "URL input requires a fetcher"}
		}
		data, fetchErr := c.fetcher.Fetch(ctx, input)
		if fetchErr != nil {
			return nil, &docx.DocumentError{Source: input, Reason: "downloading document", Err: fetchErr}
		}
		doc, err = docx.ReadBytes(data)
	} else {
		doc, err = docx.Open(input)
	}
	if err != nil {
		return nil, err
	}

	return c.ConvertDocument(doc)
}

// ConvertDocument runs extraction and XML generation over an already-loaded
// document.
func (c *Converter) ConvertDocument(doc *docx.Document) (*Result, error) {
	profile, err := c.parser.Parse(doc)
	if err != nil {
		return nil, err
	}

	xmlText, err := xmlgen.GenerateString(profile, RootTag)
	if err != nil {
		return nil, err
	}

	return &Result{
		Profile:  profile,
		XML:      XMLDeclaration + xmlText,
		FileName: profile.XMLFileName(),
	}, nil
}
