package extract

import "sort"

// labelMatch is one label occurrence inside a paragraph.
type labelMatch struct {
	id    FieldID
	start int
	end   int
}

// segment partitions one paragraph's text into labeled value spans and
// applies them to the builder in left-to-right order. Text before the first
// label, or a paragraph with no labels at all, is continuation content for
// the previously active field. Returns the identifier of the last label
// processed so the caller can carry the active-field context forward.
func (p *Parser) segment(text string, builder *Builder, lastField FieldID) FieldID {
	var matches []labelMatch
	for _, id := range valueLabelOrder {
		pattern := p.labels.Pattern(id)
		if pattern == nil {
			continue
		}
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, labelMatch{id: id, start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	if len(matches) == 0 {
		if lastField != "" {
			builder.Apply(lastField, text, true)
		}
		return lastField
	}

	if matches[0].start > 0 && lastField != "" {
		if preText := TrimMarkup(text[:matches[0].start]); preText != "" {
			builder.Apply(lastField, preText, true)
		}
	}

	current := lastField
	for i, match := range matches {
		valueEnd := len(text)
		if i+1 < len(matches) {
			valueEnd = matches[i+1].start
		}
		value := TrimMarkup(text[match.end:valueEnd])

		current = match.id
		builder.Apply(current, value, false)
	}
	return current
}
