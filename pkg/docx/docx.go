// Package docx reads the text content of Word documents. It opens the OOXML
// ZIP container, decodes word/document.xml with a streaming token walk, and
// exposes the document body as an ordered stream of paragraph and table
// blocks. Formatting, images, and anything else beyond text is ignored.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Block is either a *Paragraph or a *Table, in document order.
type Block interface {
	isBlock()
}

// Paragraph is one body paragraph with its runs joined into plain text.
type Paragraph struct {
	Text string
}

func (*Paragraph) isBlock() {}

// Table is one body table as rows of cell texts. Each cell's paragraphs are
// joined with newlines.
type Table struct {
	Rows [][]string
}

func (*Table) isBlock() {}

// Document is the ordered block stream of one document body.
type Document struct {
	Blocks []Block
}

// Open reads a .docx file from disk.
func Open(path string) (*Document, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".docx") {
		return nil, &DocumentError{Source: path, Reason: "input must be a .docx file"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &DocumentError{Source: path, Reason: "input does not point to a valid file path", Err: err}
	}
	if info.IsDir() {
		return nil, &DocumentError{Source: path, Reason: "input points to a directory, not a file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Source: path, Reason: "reading file", Err: err}
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read decodes a .docx container from an in-memory reader.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &DocumentError{Reason: "not a valid .docx container", Err: err}
	}

	var contentFile *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			contentFile = f
			break
		}
	}
	if contentFile == nil {
		return nil, &DocumentError{Reason: "word/document.xml not found in archive"}
	}

	rc, err := contentFile.Open()
	if err != nil {
		return nil, &DocumentError{Reason: "opening word/document.xml", Err: err}
	}
	defer rc.Close()

	blocks, err := parseBody(rc)
	if err != nil {
		return nil, &DocumentError{Reason: "decoding word/document.xml", Err: err}
	}
	return &Document{Blocks: blocks}, nil
}

// ReadBytes decodes a .docx container held fully in memory.
func ReadBytes(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// bodyParser accumulates body-level paragraphs and tables from the document
// XML token stream. Paragraphs inside table cells contribute to the cell text
// rather than the block stream; tables nested inside cells are flattened into
// the enclosing cell.
type bodyParser struct {
	blocks []Block

	paragraph   strings.Builder
	inParagraph bool

	table          *Table
	tableDepth     int
	row            []string
	cell           strings.Builder
	inCell         bool
	cellParagraphs int

	inText bool
}

// parseBody walks the document XML and returns the ordered block stream.
func parseBody(r io.Reader) ([]Block, error) {
	decoder := xml.NewDecoder(r)
	parser := &bodyParser{}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading XML token: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			parser.startElement(t.Name.Local)
		case xml.CharData:
			if parser.inText {
				parser.text(string(t))
			}
		case xml.EndElement:
			parser.endElement(t.Name.Local)
		}
	}

	return parser.blocks, nil
}

func (p *bodyParser) startElement(name string) {
	switch name {
	case "tbl":
		p.tableDepth++
		if p.tableDepth == 1 {
			p.table = &Table{}
		}
	case "tr":
		if p.tableDepth == 1 {
			p.row = []string{}
		}
	case "tc":
		if p.tableDepth == 1 {
			p.inCell = true
			p.cell.Reset()
			p.cellParagraphs = 0
		}
	case "p":
		if p.inCell {
			if p.cellParagraphs > 0 {
				p.cell.WriteString("\n")
			}
			p.cellParagraphs++
		} else if p.tableDepth == 0 {
			p.inParagraph = true
			p.paragraph.Reset()
		}
	case "t":
		p.inText = true
	case "br", "cr":
		p.text("\n")
	case "tab":
		p.text("\t")
	}
}

func (p *bodyParser) text(content string) {
	switch {
	case p.inCell:
		p.cell.WriteString(content)
	case p.inParagraph:
		p.paragraph.WriteString(content)
	}
}

func (p *bodyParser) endElement(name string) {
	switch name {
	case "t":
		p.inText = false
	case "tc":
		if p.tableDepth == 1 && p.inCell {
			p.row = append(p.row, p.cell.String())
			p.inCell = false
		}
	case "tr":
		if p.tableDepth == 1 && p.row != nil {
			p.table.Rows = append(p.table.Rows, p.row)
			p.row = nil
		}
	case "tbl":
		if p.tableDepth == 1 {
			p.blocks = append(p.blocks, p.table)
			p.table = nil
		}
		if p.tableDepth > 0 {
			p.tableDepth--
		}
	case "p":
		if p.inParagraph && p.tableDepth == 0 && !p.inCell {
			p.blocks = append(p.blocks, &Paragraph{Text: p.paragraph.String()})
			p.inParagraph = false
		}
	}
}
