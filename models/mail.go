package models

// Mail is a plain-text message handed to a mail delivery adapter.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
