// Package extract converts the ordered block stream of an Other Support
// document into typed profile records. A fixed table of label patterns drives
// a field segmenter and a section state machine; each finished record is
// normalized into a schema.Support.
package extract

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldID identifies a recognizable document field.
type FieldID string

const (
	// Positional labels, checked against whole paragraphs by the state
	// machine rather than scanned for by the segmenter.
	FieldSectionHeader FieldID = "section_header"
	FieldNameID        FieldID = "name_id"

	// Value labels scanned for anywhere in a paragraph.
	FieldProjectTitle  FieldID = "project_title"
	FieldMajorGoals    FieldID = "major_goals"
	FieldStatus        FieldID = "status"
	FieldRole          FieldID = "role"
	FieldProjectNumber FieldID = "project_number"
	FieldPDPI          FieldID = "pd_pi"
	FieldSource        FieldID = "source"
	FieldPlace         FieldID = "place"
	FieldDates         FieldID = "dates"
	FieldAmount        FieldID = "amount"
	FieldOverlap       FieldID = "overlap"
	FieldPersonMonths  FieldID = "person_months_stopper"
)

// valueLabelOrder fixes the scan order for value labels so segmentation is
// deterministic on (theoretical) same-offset ties.
var valueLabelOrder = []FieldID{
	FieldProjectTitle,
	FieldMajorGoals,
	FieldStatus,
	FieldRole,
	FieldProjectNumber,
	FieldPDPI,
	FieldSource,
	FieldPlace,
	FieldDates,
	FieldAmount,
	FieldOverlap,
	FieldPersonMonths,
}

// defaultLabelPatterns is the built-in label vocabulary for the NIH Other
// Support format page (rev. 10/2021).
var defaultLabelPatterns = map[FieldID]string{
	FieldSectionHeader: `(?i)^(ACTIVE|PENDING|IN-KIND)`,
	FieldNameID:        `(?i)Name of Individual:\s*(.+?)(?:\s+Commons ID:.*)?$`,
	FieldProjectTitle:  `(?i)Title:\s*`,
	FieldMajorGoals:    `(?i)Major Goals:\s*`,
	FieldStatus:        `(?i)Status of Support:\s*`,
	FieldRole:          `(?i)Role:\s*`,
	FieldProjectNumber: `(?i)Project Number:\s*`,
	FieldPDPI:          `(?i)Name of PD/PI:\s*`,
	FieldSource:        `(?i)Source of Support:\s*`,
	FieldPlace:         `(?i)(?:Primary )?Place of Performance:\s*`,
	FieldDates:         `(?i)Project.*?Date.*?:`,
	FieldAmount:        `(?i)Total Award Amount.*?:`,
	FieldOverlap:       `(?i)\*?Overlap\s*:\s*`,
	FieldPersonMonths:  `(?i)Person\s*Months`,
}

// LabelTable maps field identifiers to their recognition patterns.
type LabelTable struct {
	patterns map[FieldID]*regexp.Regexp
}

// DefaultLabels returns a label table with the built-in vocabulary.
func DefaultLabels() *LabelTable {
	patterns := make(map[FieldID]*regexp.Regexp, len(defaultLabelPatterns))
	for id, pattern := range defaultLabelPatterns {
		patterns[id] = regexp.MustCompile(pattern)
	}
	return &LabelTable{patterns: patterns}
}

// LoadOverlay replaces individual label patterns from a YAML file of the form:
//
//	labels:
//	  project_title: '(?i)Project Title:\s*'
//
// Only known field identifiers may be overridden; an unknown key or an
// uncompilable pattern is an error and leaves the table unchanged.
func (t *LabelTable) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading label overlay: %w", err)
	}

	var overlay struct {
		Labels map[string]string `yaml:"labels"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing label overlay YAML: %w", err)
	}

	compiled := make(map[FieldID]*regexp.Regexp, len(overlay.Labels))
	for key, pattern := range overlay.Labels {
		id := FieldID(key)
		if _, known := defaultLabelPatterns[id]; !known {
			return fmt.Errorf("unknown label identifier %q (known: %s)", key, knownLabelIDs())
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compiling pattern for %q: %w", key, err)
		}
		compiled[id] = re
	}

	for id, re := range compiled {
		t.patterns[id] = re
	}
	return nil
}

func knownLabelIDs() string {
	ids := make([]string, 0, len(defaultLabelPatterns))
	for id := range defaultLabelPatterns {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}

// AllLabelIDs returns every field identifier in display order: the two
// positional labels first, then the value labels in scan order.
func AllLabelIDs() []FieldID {
	ids := []FieldID{FieldSectionHeader, FieldNameID}
	return append(ids, valueLabelOrder...)
}

// Pattern returns the recognition pattern for a field identifier.
func (t *LabelTable) Pattern(id FieldID) *regexp.Regexp {
	return t.patterns[id]
}

// MatchName extracts the individual's name from a paragraph carrying the
// "Name of Individual" label. Any trailing Commons ID suffix is excluded by
// the pattern's capture group.
func (t *LabelTable) MatchName(text string) (string, bool) {
	match := t.patterns[FieldNameID].FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.Trim(match[1], " *_"), true
}

// MatchSectionHeader reports whether the paragraph starts a new section
// (ACTIVE, PENDING, or IN-KIND).
func (t *LabelTable) MatchSectionHeader(text string) bool {
	return t.patterns[FieldSectionHeader].MatchString(text)
}
