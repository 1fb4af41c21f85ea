package models

import "strings"

// User is the authenticated-user snapshot cached next to the session
// credentials. It is not authoritative and may lag behind the server until
// the next profile fetch.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// DisplayName returns "First Last", falling back to the e-mail.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
