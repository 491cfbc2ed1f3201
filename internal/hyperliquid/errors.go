package hyperliquid

import (
	"encoding/json"
	"fmt"
)

// ClientError represents an HTTP 4xx response from the Hyperliquid API.
//
// When the response body is a JSON error object, Code, Message, and Data
// carry its parsed fields; otherwise Message holds the raw body text and
// Code stays empty.
type ClientError struct {
	// StatusCode is the HTTP status (400-499).
	StatusCode int

	// Code is the API error code from the body, if any.
	Code string

	// Message is the API error message, or the raw body when the body
	// was not parseable JSON.
	Message string

	// Data is the optional structured payload attached to the error.
	Data json.RawMessage
}

// Error satisfies the error interface.
func (e *ClientError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hyperliquid: client error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("hyperliquid: client error %d: %s", e.StatusCode, e.Message)
}

// ServerError represents an HTTP 5xx response from the Hyperliquid API.
// Server errors carry no structured body, only the raw text.
type ServerError struct {
	// StatusCode is the HTTP status (500-599).
	StatusCode int

	// Body is the raw response body.
	Body string
}

// Error satisfies the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("hyperliquid: server error %d: %s", e.StatusCode, e.Body)
}

// apiErrorBody is the JSON error object shape returned with 4xx statuses.
type apiErrorBody struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// newClientError builds a ClientError from a 4xx response body, falling
// back to the raw text when the body is not the expected JSON object.
func newClientError(statusCode int, body []byte) *ClientError {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || (parsed.Code == "" && parsed.Msg == "") {
		return &ClientError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	msg := parsed.Msg
	if msg == "" {
		msg = string(body)
	}

	return &ClientError{
		StatusCode: statusCode,
		Code:       parsed.Code,
		Message:    msg,
		Data:       parsed.Data,
	}
}
