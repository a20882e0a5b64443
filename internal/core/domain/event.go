package domain

import "time"

// NewEventWindow is how long after creation an event is flagged as new to guests.
const NewEventWindow = 24 * time.Hour

// Event is something a club publishes. ClubName is a copy of the owning club's
// name and is rewritten whenever the club is renamed. Date and Time are kept
// as entered by the member.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ClubID      string    `json:"clubId"`
	ClubName    string    `json:"clubName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// IsNew reports whether the event was created less than NewEventWindow before now.
func (e Event) IsNew(now time.Time) bool {
	return now.Sub(e.CreatedAt) < NewEventWindow
}

// FindEvent returns the index of the event with the given id, or -1.
func FindEvent(events []Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
