package extract

import "fmt"

// FinalizeError reports a record whose accumulated data could not be
// converted into a valid Support entry. The whole parse aborts: a partially
// valid profile is worse than no output for a compliance submission.
type FinalizeError struct {
	ProjectTitle string
	Value        string
	Err          error
}

func (e *FinalizeError) Error() string {
	title := e.ProjectTitle
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("could not process support entry for project %q: %v", title, e.Err)
}

func (e *FinalizeError) Unwrap() error {
	return e.Err
}
