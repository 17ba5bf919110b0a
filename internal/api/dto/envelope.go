package dto

import "encoding/json"

// Envelope is the response wrapper used by every endpoint:
// {"status": "success"|"error", "message": "...", "data": ...}.
type Envelope struct {
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorBody covers the error shapes a backend may send: the envelope's
// message, a bare "detail" string, or a nested {"error": {...}} object.
type ErrorBody struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  any    `json:"detail,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Text returns the most specific human readable message in the body.
func (b ErrorBody) Text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != nil && b.Error.Message != "":
		return b.Error.Message
	}
	if detail, ok := b.Detail.(string); ok {
		return detail
	}
	return ""
}
