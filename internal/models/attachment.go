package models

// Attachment is a document or video linked from a timeline entry.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
