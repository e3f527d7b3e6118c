package domain

import "time"

// User represents a chat participant known to the bot. Users are created on
// first contact and never deleted; the admin flag is fixed at creation.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Label returns the human-readable form used in reports: "@handle" when the
// user has one, the stored full name otherwise, "unknown" as a last resort.
func (u *User) Label() string {
	if u == nil {
		return "unknown"
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.FullName != "" {
		return u.FullName
	}
	return "unknown"
}
