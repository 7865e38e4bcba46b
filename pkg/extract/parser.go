package extract

import (
	"strings"

	"github.com/joho9119/other-support-xml-gen/pkg/docx"
	"github.com/joho9119/other-support-xml-gen/pkg/schema"
)

// Section is the document section currently being read. Support entries are
// seeded with section-derived defaults when their builder is created.
type Section string

const (
	SectionActive  Section = "ACTIVE"
	SectionPending Section = "PENDING"
	SectionInKind  Section = "IN-KIND"
)

// Parser turns a document's block stream into a SciENcv profile. A Parser
// holds no per-document state; concurrent Parse calls are safe because all
// accumulation lives in the call frame.
type Parser struct {
	labels *LabelTable
}

// NewParser creates a parser with the built-in label vocabulary.
func NewParser() *Parser {
	return &Parser{labels: DefaultLabels()}
}

// NewParserWithLabels creates a parser with a customized label table.
func NewParserWithLabels(labels *LabelTable) *Parser {
	return &Parser{labels: labels}
}

// Parse consumes the block stream in document order and returns the profile:
// one identification plus the finalized support records grouped under their
// sections. Any finalization failure aborts the parse with no partial output.
func (p *Parser) Parse(doc *docx.Document) (*schema.Profile, error) {
	var firstName, middleName, lastName string
	var supports []schema.Support

	section := SectionActive
	builder := NewBuilder(section)
	active := false
	lastField := FieldID("")

	flush := func() error {
		support, err := builder.Finalize()
		if err != nil {
			return err
		}
		supports = append(supports, support)
		return nil
	}

	for _, block := range doc.Blocks {
		switch blk := block.(type) {
		case *docx.Paragraph:
			text := Clean(blk.Text)
			if text == "" {
				continue
			}

			if rawName, ok := p.labels.MatchName(text); ok {
				firstName, middleName, lastName = DecomposeName(rawName)
				continue
			}

			if p.labels.MatchSectionHeader(text) {
				if active {
					if err := flush(); err != nil {
						return nil, err
					}
				}
				section = sectionFromHeader(text)
				builder = NewBuilder(section)
				active = false
				continue
			}

			if p.labels.Pattern(FieldProjectTitle).MatchString(text) {
				if active {
					if err := flush(); err != nil {
						return nil, err
					}
				}
				builder = NewBuilder(section)
				active = true
				// A new record never inherits the continuation target of the
				// previous one.
				lastField = ""
			}

			if !active {
				continue
			}

			lastField = p.segment(text, builder, lastField)

		case *docx.Table:
			if active {
				builder.AddCommitments(ExtractCommitments(blk))
			}
		}
	}

	// Final flush: without it the last record in the document is dropped.
	if active {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	name, err := schema.NewName(firstName, middleName, lastName)
	if err != nil {
		return nil, err
	}

	return &schema.Profile{
		Identification: schema.Identification{Name: name},
		Funding:        supports,
	}, nil
}

// sectionFromHeader maps a section header paragraph onto its section tag.
// Anything that is not PENDING or IN-KIND counts as ACTIVE.
func sectionFromHeader(text string) Section {
	header := strings.ToUpper(text)
	switch {
	case strings.Contains(header, "PENDING"):
		return SectionPending
	case strings.Contains(header, "IN-KIND"):
		return SectionInKind
	default:
		return SectionActive
	}
}
