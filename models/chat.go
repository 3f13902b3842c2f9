// models/chat.go
package models

// AskRequest is the body of POST /ask, sent as a form field or a JSON key.
type AskRequest struct {
	Question string `form:"question" json:"question"`
}

// AskResponse is returned for every /ask outcome, errors included.
type AskResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	DocumentPages int    `json:"document_pages"`
}
