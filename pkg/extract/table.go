package extract

import (
	"strings"

	"github.com/joho9119/other-support-xml-gen/pkg/docx"
)

// RawCommitment is one (year, effort) pair pulled from a person-months table,
// still in text form.
type RawCommitment struct {
	Year   string
	Effort string
}

// ExtractCommitments pulls (year, effort) pairs out of a table block. A first
// row mentioning "year" or "month" is treated as a header and skipped. The
// year is a digits-only extraction, so "Year 1" yields "1"; the effort is the
// second cell lowercased with the "calendar" token removed. Rows missing
// either value contribute nothing.
func ExtractCommitments(table *docx.Table) []RawCommitment {
	rows := table.Rows

	startRow := 0
	if len(rows) > 0 {
		var header strings.Builder
		for _, cell := range rows[0] {
			header.WriteString(strings.ToLower(cell))
		}
		headerText := header.String()
		if strings.Contains(headerText, "year") || strings.Contains(headerText, "month") {
			startRow = 1
		}
	}

	var commitments []RawCommitment
	for _, row := range rows[startRow:] {
		if len(row) < 2 {
			continue
		}
		year := nonDigitPattern.ReplaceAllString(row[0], "")
		effort := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(row[1]), "calendar", ""))
		if year != "" && effort != "" {
			commitments = append(commitments, RawCommitment{Year: year, Effort: effort})
		}
	}
	return commitments
}
