package domain

// IssueCategory classifies tickets. Tickets reference it by ID.
type IssueCategory struct {
	ID   int
	Name string
}
