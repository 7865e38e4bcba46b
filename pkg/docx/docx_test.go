package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// buildDocx assembles a minimal .docx container around the given body XML.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	f, err := archive.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentHeader + body + documentFooter)); err != nil {
		t.Fatal(err)
	}
	if err := archive.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadBytesParagraphs(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>Name of Individual: </w:t></w:r><w:r><w:t>Doe, Jane</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>ACTIVE</w:t></w:r></w:p>`)

	doc, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes() error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}

	p1, ok := doc.Blocks[0].(*Paragraph)
	if !ok {
		t.Fatalf("block 0 type = %T, want *Paragraph", doc.Blocks[0])
	}
	if p1.Text != "Name of Individual: Doe, Jane" {
		t.Errorf("runs not joined: %q", p1.Text)
	}
}

func TestReadBytesLineBreaksAndTabs(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>before</w:t><w:br/><w:t>after</w:t><w:tab/><w:t>end</w:t></w:r></w:p>`)

	doc, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes() error: %v", err)
	}
	p := doc.Blocks[0].(*Paragraph)
	if p.Text != "before\nafter\tend" {
		t.Errorf("Text = %q", p.Text)
	}
}

func TestReadBytesIgnoresInterElementWhitespace(t *testing.T) {
	data := buildDocx(t, "<w:p>\n  <w:r>\n    <w:t>clean</w:t>\n  </w:r>\n</w:p>")

	doc, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes() error: %v", err)
	}
	p := doc.Blocks[0].(*Paragraph)
	if p.Text != "clean" {
		t.Errorf("Text = %q, want %q", p.Text, "clean")
	}
}

func TestReadBytesTable(t *testing.T) {
	data := buildDocx(t,
		`<w:tbl>`+
			`<w:tr><w:tc><w:p><w:r><w:t>Year</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Months</w:t></w:r></w:p></w:tc></w:tr>`+
			`<w:tr><w:tc><w:p><w:r><w:t>2024</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>3.0</w:t></w:r></w:p><w:p><w:r><w:t>calendar</w:t></w:r></w:p></w:tc></w:tr>`+
			`</w:tbl>`+
			`<w:p><w:r><w:t>after</w:t></w:r></w:p>`)

	doc, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes() error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}

	table, ok := doc.Blocks[0].(*Table)
	if !ok {
		t.Fatalf("block 0 type = %T, want *Table", doc.Blocks[0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "Year" || table.Rows[0][1] != "Months" {
		t.Errorf("header row = %v", table.Rows[0])
	}
	// Multiple paragraphs in one cell join with newlines.
	if table.Rows[1][1] != "3.0\ncalendar" {
		t.Errorf("cell = %q", table.Rows[1][1])
	}

	p, ok := doc.Blocks[1].(*Paragraph)
	if !ok || p.Text != "after" {
		t.Errorf("block after table = %+v", doc.Blocks[1])
	}
}

func TestReadBytesNestedTableFlattened(t *testing.T) {
	data := buildDocx(t,
		`<w:tbl><w:tr><w:tc>`+
			`<w:p><w:r><w:t>outer</w:t></w:r></w:p>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
			`</w:tc></w:tr></w:tbl>`)

	doc, err := ReadBytes(data)
	if err != nil {
		t.Fatalf("ReadBytes() error: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(doc.Blocks))
	}
	table := doc.Blocks[0].(*Table)
	if len(table.Rows) != 1 || len(table.Rows[0]) != 1 {
		t.Fatalf("Rows = %v", table.Rows)
	}
}

func TestReadBytesNotAZip(t *testing.T) {
	_, err := ReadBytes([]byte("this is not a zip archive"))
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("error type = %T, want *DocumentError", err)
	}
}

func TestReadBytesMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	f, err := archive.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err := archive.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = ReadBytes(buf.Bytes())
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("error type = %T, want *DocumentError", err)
	}
	if docErr.Reason != "word/document.xml not found in archive" {
		t.Errorf("Reason = %q", docErr.Reason)
	}
}

func TestOpenRejectsWrongExtension(t *testing.T) {
	_, err := Open("document.pdf")
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("error type = %T, want *DocumentError", err)
	}
	if docErr.Source != "document.pdf" {
		t.Errorf("Source = %q", docErr.Source)
	}
}

func TestOpenRejectsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.docx"))
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("error type = %T, want *DocumentError", err)
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "folder.docx")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := Open(dir)
	var docErr *DocumentError
	if !errors.As(err, &docErr) {
		t.Fatalf("error type = %T, want *DocumentError", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.docx")
	data := buildDocx(t, `<w:p><w:r><w:t>hello</w:t></w:r></w:p>`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(doc.Blocks))
	}
	if doc.Blocks[0].(*Paragraph).Text != "hello" {
		t.Errorf("Text = %q", doc.Blocks[0].(*Paragraph).Text)
	}
}
