package content

import (
	"fmt"
	"strings"
)

// Status is the editorial workflow status of a content item.
//
// Valid transitions:
//
//	DRAFT     -> REVIEW
//	REVIEW    -> PUBLISHED, DRAFT
//	PUBLISHED -> ARCHIVED, DRAFT
//	ARCHIVED  -> (none)
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusReview    Status = "REVIEW"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusReview},
	StatusReview:    {StatusPublished, StatusDraft},
	StatusPublished: {StatusArchived, StatusDraft},
	StatusArchived:  {},
}

// ParseStatus parses a status string case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusReview:
		return StatusReview, nil
	case StatusPublished:
		return StatusPublished, nil
	case StatusArchived:
		return StatusArchived, nil
	default:
		return "", NewValidationError(fmt.Sprintf("Invalid content status: %s", s))
	}
}

// CanTransitionTo reports whether moving to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s Status) IsDraft() bool     { return s == StatusDraft }
func (s Status) IsReview() bool    { return s == StatusReview }
func (s Status) IsPublished() bool { return s == StatusPublished }
func (s Status) IsArchived() bool  { return s == StatusArchived }

func (s Status) String() string { return string(s) }
