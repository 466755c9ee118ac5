package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the registry.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// maxErrorBody caps how much of a non-JSON error body ends up in a message.
const maxErrorBody = 512

// newAPIError extracts the server's message from the known error shapes:
// {"error":"msg"}, {"error":{"message":"msg"}}, {"message":"msg"}, or the
// raw body.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var shape struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &shape); err == nil {
		var s string
		var obj struct {
			Message string `json:"message"`
		}
		switch {
		case len(shape.Error) > 0 && json.Unmarshal(shape.Error, &s) == nil && s != "":
			e.Message = s
		case len(shape.Error) > 0 && json.Unmarshal(shape.Error, &obj) == nil && obj.Message != "":
			e.Message = obj.Message
		case shape.Message != "":
			e.Message = shape.Message
		}
		if e.Message != "" {
			return e
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	e.Message = msg
	return e
}
