// Package schema provides the typed SciENcv profile records produced by the
// extractor and consumed by the XML generator. Constructors apply the field
// invariants (length caps, digit-only amounts, enum fallbacks) so a record
// that exists is always valid.
package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/joho9119/other-support-xml-gen/pkg/xmlgen"
)

// ContributionType classifies a support entry as a monetary award or an
// in-kind contribution.
type ContributionType string

const (
	ContributionAward  ContributionType = "award"
	ContributionInKind ContributionType = "inkind"
)

// SupportType classifies a support entry as currently funded or pending.
type SupportType string

const (
	SupportCurrent SupportType = "current"
	SupportPending SupportType = "pending"
)

// Field length caps applied at Support construction.
const (
	MaxProjectTitle      = 300
	MaxAwardNumber       = 50
	MaxLocation          = 60
	MaxSupportSource     = 60
	MaxPotentialOverlap  = 5000
	MaxInKindDescription = 500
	MaxAwardAmount       = 13
)

// Name holds the decomposed name of the individual the profile describes.
type Name struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// NewName constructs a Name, requiring both a first and a last name.
// A blank first or last name yields an IdentityError.
func NewName(first, middle, last string) (Name, error) {
	if first == "" {
		return Name{}, &IdentityError{Part: "firstname"}
	}
	if last == "" {
		return Name{}, &IdentityError{Part: "lastname"}
	}
	return Name{FirstName: first, MiddleName: middle, LastName: last}, nil
}

func (n Name) XMLName() string { return "name" }

func (n Name) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (n Name) XMLFields() []xmlgen.Field {
	return []xmlgen.Field{
		{Tag: "firstname", Value: n.FirstName},
		{Tag: "middlename", Value: n.MiddleName},
		{Tag: "lastname", Value: n.LastName},
	}
}

// Identification wraps exactly one Name.
type Identification struct {
	Name Name
}

func (i Identification) XMLName() string { return "identification" }

func (i Identification) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (i Identification) XMLFields() []xmlgen.Field {
	return []xmlgen.Field{
		{Tag: "name", Value: xmlgen.Record(i.Name)},
	}
}

// Year is a calendar year used for employment date ranges.
type Year struct {
	Year int
}

func (y Year) XMLName() string { return "year" }

func (y Year) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (y Year) XMLFields() []xmlgen.Field {
	return []xmlgen.Field{
		{Tag: "year", Value: y.Year},
	}
}

// Organization is the employer attached to a Position. Absent fields are
// kept as empty strings rather than rejected.
type Organization struct {
	OrgName         string
	City            string
	StateOrProvince string
	Country         string
}

func (o Organization) XMLName() string { return "organization" }

func (o Organization) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (o Organization) XMLFields() []xmlgen.Field {
	return []xmlgen.Field{
		{Tag: "orgname", Value: o.OrgName},
		{Tag: "city", Value: o.City},
		{Tag: "stateorprovince", Value: o.StateOrProvince},
		{Tag: "country", Value: o.Country},
	}
}

// Position is one employment entry. EndDate is nil for a current position.
type Position struct {
	PositionTitle string
	Organization  Organization
	StartDate     Year
	EndDate       *Year
}

// NewPosition constructs a Position, rejecting end dates earlier than the
// start date.
func NewPosition(title string, org Organization, start Year, end *Year) (Position, error) {
	if end != nil && start.Year > end.Year {
		return Position{}, &PositionError{Title: title, StartYear: start.Year, EndYear: end.Year}
	}
	return Position{PositionTitle: title, Organization: org, StartDate: start, EndDate: end}, nil
}

func (p Position) XMLName() string { return "position" }

func (p Position) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (p Position) XMLFields() []xmlgen.Field {
	endDate := any("")
	if p.EndDate != nil {
		endDate = xmlgen.Record(*p.EndDate)
	}
	return []xmlgen.Field{
		{Tag: "positiontitle", Value: p.PositionTitle},
		{Tag: "organization", Value: xmlgen.Record(p.Organization)},
		{Tag: "startdate", Value: xmlgen.Record(p.StartDate)},
		{Tag: "enddate", Value: endDate},
	}
}

// PersonMonth is one year's effort commitment. The year appears as an
// attribute in XML, so the type carries its own renderer.
type PersonMonth struct {
	Year   string
	Amount decimal.Decimal
}

func (pm PersonMonth) XMLName() string { return "personmonth" }

func (pm PersonMonth) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.SkipEmpty }

func (pm PersonMonth) XMLFields() []xmlgen.Field {
	return []xmlgen.Field{
		{Tag: "year", Value: pm.Year},
		{Tag: "amount", Value: pm.amountText()},
	}
}

// amountText renders the amount at its parsed scale. Decimal's String trims
// trailing zeros, which would turn an effort of "3.0" into "3".
func (pm PersonMonth) amountText() string {
	places := -pm.Amount.Exponent()
	if places < 0 {
		places = 0
	}
	return pm.Amount.StringFixed(places)
}

// RenderXML emits the person-month element with its year attribute.
func (pm PersonMonth) RenderXML() string {
	return `<personmonth year="` + xmlgen.EscapeText(pm.Year) + `">` +
		xmlgen.EscapeText(pm.amountText()) + "</personmonth>"
}

// Support is one finalized award, pending award, or in-kind contribution.
type Support struct {
	ProjectTitle      string
	AwardNumber       string
	SupportSource     string
	Location          string
	ContributionType  ContributionType
	AwardAmount       string
	InKindDescription string
	OverallObjectives string
	PotentialOverlap  string
	StartDate         string
	EndDate           string
	SupportType       SupportType
	Commitment        []PersonMonth
}

var nonDigits = regexp.MustCompile(`\D`)

// NewSupport normalizes a raw Support into one that satisfies every field
// invariant: length caps, digit-only award amount, enum fallbacks, and the
// in-kind description rules.
func NewSupport(s Support) Support {
	s.ProjectTitle = truncate(s.ProjectTitle, MaxProjectTitle)
	s.Location = truncate(s.Location, MaxLocation)
	s.SupportSource = truncate(s.SupportSource, MaxSupportSource)
	s.PotentialOverlap = truncate(s.PotentialOverlap, MaxPotentialOverlap)

	awardNumber := strings.ReplaceAll(s.AwardNumber, " ", "")
	if awardNumber == "" {
		awardNumber = "N/A"
	}
	s.AwardNumber = truncate(awardNumber, MaxAwardNumber)

	s.AwardAmount = truncate(nonDigits.ReplaceAllString(s.AwardAmount, ""), MaxAwardAmount)

	if s.ContributionType != ContributionAward && s.ContributionType != ContributionInKind {
		s.ContributionType = ContributionAward
	}
	if s.SupportType != SupportCurrent && s.SupportType != SupportPending {
		s.SupportType = SupportCurrent
	}

	if s.ContributionType == ContributionInKind {
		if s.InKindDescription == "" && s.ProjectTitle != "" {
			s.InKindDescription = s.ProjectTitle
		}
		s.InKindDescription = truncate(s.InKindDescription, MaxInKindDescription)
	} else {
		s.InKindDescription = ""
	}

	return s
}

// truncate caps text at max characters. Counting runes rather than bytes
// keeps a multibyte character from being split at the cap, which would leak
// invalid UTF-8 into the generated XML.
func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

func (s Support) XMLName() string { return "support" }

func (s Support) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.RenderEmpty }

func (s Support) XMLFields() []xmlgen.Field {
	commitment := make([]xmlgen.Record, len(s.Commitment))
	for i, pm := range s.Commitment {
		commitment[i] = pm
	}
	return []xmlgen.Field{
		{Tag: "projecttitle", Value: s.ProjectTitle},
		{Tag: "awardnumber", Value: s.AwardNumber},
		{Tag: "supportsource", Value: s.SupportSource},
		{Tag: "location", Value: s.Location},
		{Tag: "contributiontype", Value: string(s.ContributionType)},
		{Tag: "awardamount", Value: s.AwardAmount},
		{Tag: "inkinddescription", Value: s.InKindDescription},
		{Tag: "overallobjectives", Value: s.OverallObjectives},
		{Tag: "potentialoverlap", Value: s.PotentialOverlap},
		{Tag: "startdate", Value: s.StartDate},
		{Tag: "enddate", Value: s.EndDate},
		{Tag: "supporttype", Value: string(s.SupportType)},
		{Tag: "commitment", Value: commitment},
	}
}

// Profile is the complete SciENcv profile: one identification, an employment
// history (not populated by the document extractor), and the funding list.
type Profile struct {
	Identification Identification
	Employment     []Position
	Funding        []Support
}

func (p *Profile) XMLName() string { return "profile" }

func (p *Profile) EmptyPolicy() xmlgen.EmptyPolicy { return xmlgen.RenderEmpty }

func (p *Profile) XMLFields() []xmlgen.Field {
	employment := make([]xmlgen.Record, len(p.Employment))
	for i, position := range p.Employment {
		employment[i] = position
	}
	funding := make([]xmlgen.Record, len(p.Funding))
	for i, support := range p.Funding {
		funding[i] = support
	}
	return []xmlgen.Field{
		{Tag: "identification", Value: xmlgen.Record(p.Identification)},
		{Tag: "employment", Value: employment},
		{Tag: "funding", Value: funding},
	}
}

// FirstName returns the profile's first name.
func (p *Profile) FirstName() string { return p.Identification.Name.FirstName }

// LastName returns the profile's last name.
func (p *Profile) LastName() string { return p.Identification.Name.LastName }

// XMLFileName derives a unique output filename from the profile's name parts
// and the current time. Sub-second precision keeps repeated conversions in
// one session from colliding.
func (p *Profile) XMLFileName() string {
	return p.xmlFileNameAt(time.Now())
}

func (p *Profile) xmlFileNameAt(now time.Time) string {
	var name string
	switch {
	case p.FirstName() != "" && p.LastName() != "":
		name = p.LastName() + "_" + p.FirstName()
	case p.FirstName() != "":
		name = p.FirstName()
	default:
		name = "no_name_found"
	}
	timestamp := now.Format("2006-01-02_15-04-05") + "-" + strconv.Itoa(now.Nanosecond())
	return name + "_" + timestamp + ".xml"
}
