package models

import "strings"

// User is a registered account. The password is kept in plaintext because the
// stored collection is shared with existing data in that form.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SameEmail reports whether email belongs to the user, ignoring case and
// surrounding blanks (used for duplicate detection only).
func (user User) SameEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(email))
}
