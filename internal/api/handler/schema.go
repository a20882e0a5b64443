package handler

import "time"

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin member guest"`
	ClubID   string `json:"clubId"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	ClubID   string `json:"clubId,omitempty"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
}

// --- Clubs ---

type clubRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

type clubResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type clubSummaryResponse struct {
	clubResponse
	MemberCount int `json:"memberCount"`
	EventCount  int `json:"eventCount"`
}

type cascadeResponse struct {
	Club           clubResponse `json:"club"`
	EventsRenamed  int          `json:"eventsRenamed,omitempty"`
	MembersRemoved int          `json:"membersRemoved,omitempty"`
	EventsRemoved  int          `json:"eventsRemoved,omitempty"`
}

// --- Members ---

type memberRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	ClubID   string `json:"clubId"   validate:"required"`
}

// memberResponse includes the password: the admin screen shows it so
// credentials can be handed to the member.
type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	ClubID   string `json:"clubId"`
	ClubName string `json:"clubName,omitempty"`
}

type credentialsRequest struct {
	ClubID string `json:"clubId" validate:"required"`
}

type credentialsResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Events ---

type eventRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date"        validate:"required"`
	Time        string `json:"time"        validate:"required"`
}

type eventResponse struct {
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

type memberEventsResponse struct {
	Member userResponse    `json:"member"`
	All    []eventResponse `json:"all"`
	Own    []eventResponse `json:"own"`
}

// --- Guest ---

type feedEventResponse struct {
	eventResponse
	IsNew bool `json:"isNew"`
}

type guestFeedResponse struct {
	Clubs         []clubResponse      `json:"clubs"`
	Events        []feedEventResponse `json:"events"`
	Notifications []eventResponse     `json:"notifications"`
}
