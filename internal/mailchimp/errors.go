package mailchimp

import (
	"encoding/json"
	"errors"
	"fmt"
)

const memberExistsTitle = "Member Exists"

// APIError is a non-2xx response from the Mailchimp API. The message
// prefers the provider's detail field; otherwise it falls back to the
// HTTP status.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mailchimp: %s", e.Detail)
	}
	if e.Title != "" {
		return fmt.Sprintf("mailchimp: %s (HTTP %d)", e.Title, e.StatusCode)
	}
	return fmt.Sprintf("mailchimp: HTTP %d", e.StatusCode)
}

// ConflictError means the member already exists in the audience. It is
// expected during upserts and triggers the update fallback; it is never
// surfaced to end users as a failure.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("mailchimp: member %s already exists", e.Email)
}

// IsConflict reports whether err is a member-exists conflict.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// decodeError classifies a non-2xx response body. Mailchimp signals an
// existing member with status 400 and title "Member Exists"; everything
// else, including unparseable bodies, becomes an *APIError.
func decodeError(status int, body []byte, email string) error {
	var parsed struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &APIError{StatusCode: status, Detail: string(body)}
	}
	if status == 400 && parsed.Title == memberExistsTitle {
		return &ConflictError{Email: email}
	}
	return &APIError{StatusCode: status, Title: parsed.Title, Detail: parsed.Detail}
}
