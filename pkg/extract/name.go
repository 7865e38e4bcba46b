package extract

import "strings"

// DecomposeName splits the free text captured after a "Name of Individual"
// label into first, middle, and last name parts.
//
// A comma means "Last, First Middle...": the left side is the last name, the
// first token on the right is the first name, and any remaining tokens join
// with spaces into the middle name. Without a comma the text reads "First
// [Middle...] Last"; extra middle tokens are concatenated without a
// separator. A single bare token serves as both first and last name.
func DecomposeName(fullName string) (first, middle, last string) {
	fullName = strings.TrimSpace(fullName)

	if comma := strings.Index(fullName, ","); comma >= 0 {
		last = strings.TrimSpace(fullName[:comma])
		rest := strings.Fields(fullName[comma+1:])
		if len(rest) > 0 {
			first = rest[0]
			middle = strings.Join(rest[1:], " ")
		}
		return first, middle, last
	}

	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", parts[0]
	case 2:
		return parts[0], "", parts[1]
	default:
		return parts[0], strings.Join(parts[1:len(parts)-1], ""), parts[len(parts)-1]
	}
}
