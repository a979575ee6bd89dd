package models

// Session is the decoded state of a stored bearer token.
type Session struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"userId"`
}
