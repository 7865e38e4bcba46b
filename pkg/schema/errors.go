package schema

import "fmt"

// IdentityError reports a profile whose individual could not be identified:
// the document never yielded a usable first or last name.
type IdentityError struct {
	Part string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("no %s found for the individual", e.Part)
}

// PositionError reports an employment entry whose start year falls after its
// end year.
type PositionError struct {
	Title     string
	StartYear int
	EndYear   int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %q starts in %d, after its end year %d",
		e.Title, e.StartYear, e.EndYear)
}
