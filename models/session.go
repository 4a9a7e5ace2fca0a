package models

// Session is the login state of the single local user.
type Session struct {
	IsAuthenticated bool `json:"authenticated"`
}
