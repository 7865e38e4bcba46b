package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joho9119/other-support-xml-gen/pkg/schema"
)

var (
	nonDigitPattern = regexp.MustCompile(`\D`)

	// effortNumberPattern finds the leading decimal in an effort string once
	// unit words are stripped ("2.0 CM", "1.5 months", "3.0 calendar months").
	effortNumberPattern = regexp.MustCompile(`\d+\.?\d*`)

	effortUnits = strings.NewReplacer("months", "", "cm", "")
)

// Builder accumulates field text for one in-progress support record. One slot
// per known field identifier; ownership transfers to an immutable
// schema.Support at Finalize, after which the builder is discarded.
type Builder struct {
	ProjectTitle      string
	AwardNumber       string
	SupportSource     string
	Location          string
	AwardAmount       string
	OverallObjectives string
	PotentialOverlap  string
	StartDate         string
	EndDate           string
	ContributionType  schema.ContributionType
	SupportType       schema.SupportType
	Commitment        []RawCommitment
}

// NewBuilder creates a fresh builder seeded with section-derived defaults:
// IN-KIND sections produce in-kind contributions, PENDING sections produce
// pending support.
func NewBuilder(section Section) *Builder {
	builder := &Builder{
		ContributionType: schema.ContributionAward,
		SupportType:      schema.SupportCurrent,
	}
	if section == SectionInKind {
		builder.ContributionType = schema.ContributionInKind
	}
	if section == SectionPending {
		builder.SupportType = schema.SupportPending
	}
	return builder
}

// Apply maps a recognized field identifier and its text onto the matching
// builder slot. Labeled values replace the slot; continuation text appends
// with a single-space join. The free-text goals and overlap fields always
// append, and the dates field is only ever parsed, never appended.
func (b *Builder) Apply(id FieldID, text string, continuation bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	set := func(slot *string, additive bool) {
		if (continuation || additive) && *slot != "" {
			*slot += " " + text
		} else {
			*slot = text
		}
	}

	switch id {
	case FieldProjectTitle:
		set(&b.ProjectTitle, false)
	case FieldProjectNumber:
		set(&b.AwardNumber, false)
	case FieldSource:
		set(&b.SupportSource, false)
	case FieldPlace:
		set(&b.Location, false)
	case FieldAmount:
		set(&b.AwardAmount, false)
	case FieldMajorGoals:
		set(&b.OverallObjectives, true)
	case FieldOverlap:
		set(&b.PotentialOverlap, true)
	case FieldDates:
		if !continuation {
			b.StartDate, b.EndDate = ExtractDates(text)
		}
	case FieldStatus, FieldRole, FieldPDPI, FieldPersonMonths:
		// Recognized labels with no profile slot. They still delimit value
		// spans and absorb continuation text from following paragraphs.
	}
}

// AddCommitments appends raw (year, effort) pairs from a person-months table.
func (b *Builder) AddCommitments(commitments []RawCommitment) {
	b.Commitment = append(b.Commitment, commitments...)
}

// Finalize consumes the builder and produces an immutable, invariant-checked
// Support record. A non-numeric effort value fails with a FinalizeError
// naming the owning project title and the offending raw value.
func (b *Builder) Finalize() (schema.Support, error) {
	commitment := make([]schema.PersonMonth, 0, len(b.Commitment))
	for _, raw := range b.Commitment {
		amount, err := parseEffort(raw.Effort)
		if err != nil {
			return schema.Support{}, &FinalizeError{
				ProjectTitle: b.ProjectTitle,
				Value:        raw.Effort,
				Err:          err,
			}
		}
		commitment = append(commitment, schema.PersonMonth{Year: raw.Year, Amount: amount})
	}

	overlap := b.PotentialOverlap
	if overlap == "" {
		overlap = "None"
	}

	return schema.NewSupport(schema.Support{
		ProjectTitle:      b.ProjectTitle,
		AwardNumber:       b.AwardNumber,
		SupportSource:     b.SupportSource,
		Location:          b.Location,
		ContributionType:  b.ContributionType,
		AwardAmount:       b.AwardAmount,
		OverallObjectives: b.OverallObjectives,
		PotentialOverlap:  overlap,
		StartDate:         b.StartDate,
		EndDate:           b.EndDate,
		SupportType:       b.SupportType,
		Commitment:        commitment,
	}), nil
}

// parseEffort converts an effort string to a decimal amount. The table
// extractor has already lowercased the text and removed "calendar"; this
// strips the remaining unit words and takes the first number.
func parseEffort(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(effortUnits.Replace(raw))
	if number := effortNumberPattern.FindString(cleaned); number != "" {
		cleaned = number
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("effort value %q is not numeric", raw)
	}
	return amount, nil
}
