package domain

import (
	"regexp"
	"strings"
)

// Club is an organizational unit that members belong to and events are published under.
// ID is derived from the name at creation and never changes afterwards.
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ClubID derives the immutable identifier of a club from its display name:
// lower-cased, with every run of whitespace replaced by a single "-".
//
//	"Robotics Society" → "robotics-society"
func ClubID(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// DefaultClubs is the catalog written on the very first load of an empty store.
func DefaultClubs() []Club {
	return []Club{
		{ID: "stic", Name: "STIC", Description: "Student Technical Innovation Club"},
		{ID: "gdg", Name: "GDG", Description: "Google Developer Group"},
		{ID: "aws", Name: "AWS", Description: "Amazon Web Services Club"},
		{ID: "acm", Name: "ACM", Description: "Association for Computing Machinery"},
		{ID: "ieee", Name: "IEEE", Description: "Institute of Electrical and Electronics Engineers"},
	}
}

// FindClub returns the club with the given id.
func FindClub(clubs []Club, id string) (Club, bool) {
	for _, c := range clubs {
		if c.ID == id {
			return c, true
		}
	}
	return Club{}, false
}
