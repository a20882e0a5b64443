package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role selects which dashboard a user may enter.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// DefaultAdminID and the credentials below are used to seed an administrator
// when the user collection has none.
const (
	DefaultAdminID       = "admin-1"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// User models an actor of the portal. The club binding only exists for
// members: construct users with NewAdmin, NewMember or NewGuest so a non-member
// can never carry a club id.
//
// Password holds whatever the credential sealer produced: the verbatim text in
// the default mode, a bcrypt hash in hardened mode.
type User struct {
	ID       string
	Username string
	Password string
	Role     Role
	clubID   string
}

func NewAdmin(id, username, password string) User {
	return User{ID: id, Username: username, Password: password, Role: RoleAdmin}
}

func NewMember(id, username, password, clubID string) User {
	return User{ID: id, Username: username, Password: password, Role: RoleMember, clubID: clubID}
}

func NewGuest(id, username, password string) User {
	return User{ID: id, Username: username, Password: password, Role: RoleGuest}
}

// ClubID returns the club a member belongs to; ok is false for admins and guests.
func (u User) ClubID() (string, bool) {
	if u.Role != RoleMember {
		return "", false
	}
	return u.clubID, true
}

// BelongsTo reports whether u is a member of the given club.
func (u User) BelongsTo(clubID string) bool {
	id, ok := u.ClubID()
	return ok && id == clubID
}

// WithClub returns a copy of a member moved to another club.
// Non-members are returned unchanged.
func (u User) WithClub(clubID string) User {
	if u.Role == RoleMember {
		u.clubID = clubID
	}
	return u
}

// SameUsername compares usernames case-insensitively.
func (u User) SameUsername(username string) bool {
	return strings.EqualFold(u.Username, username)
}

// userRecord is the persisted shape: {id, username, password, role, clubId?}.
type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	ClubID   string `json:"clubId,omitempty"`
}

func (u User) MarshalJSON() ([]byte, error) {
	rec := userRecord{ID: u.ID, Username: u.Username, Password: u.Password, Role: u.Role}
	if id, ok := u.ClubID(); ok {
		rec.ClubID = id
	}
	return json.Marshal(rec)
}

// UnmarshalJSON rejects unknown roles and drops a clubId found on a non-member record.
func (u *User) UnmarshalJSON(data []byte) error {
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if !rec.Role.Valid() {
		return fmt.Errorf("user %q: unknown role %q", rec.ID, rec.Role)
	}
	*u = User{ID: rec.ID, Username: rec.Username, Password: rec.Password, Role: rec.Role}
	if rec.Role == RoleMember {
		u.clubID = rec.ClubID
	}
	return nil
}

// FindUser returns the user with the given id.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
