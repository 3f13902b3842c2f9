package models

// GenerateRequest is the JSON body sent to the Llama 2 endpoint.
type GenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// GenerateResponse is the subset of the endpoint reply we read.
// Response is nil when the field is absent or null.
type GenerateResponse struct {
	Response *string `json:"response"`
}
