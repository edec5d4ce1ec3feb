// Package remote talks to the factory service: the REST API that owns
// employees, machines, sectors, departments, stock and users.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Category groups remote failures by what the screen should do about them.
type Category string

const (
	// CategoryValidation: the service rejected the payload (400, 409, 422).
	CategoryValidation Category = "validation"
	// CategoryNotFound: the record does not exist (404).
	CategoryNotFound Category = "not_found"
	// CategoryUnauthorized: missing, expired or insufficient credentials (401, 403).
	CategoryUnauthorized Category = "unauthorized"
	// CategoryServer: the service failed (5xx).
	CategoryServer Category = "server"
	// CategoryNetwork: no response was received.
	CategoryNetwork Category = "network"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrUserNotFound = errors.New("user not found")
)

// RemoteError is returned by every remote operation that fails. Message is
// meant to be shown to the user as is.
type RemoteError struct {
	Category Category
	Status   int
	Message  string
	Cause    error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// HTTPStatus is the status the console answers with when it relays this
// error to its own clients.
func (e *RemoteError) HTTPStatus() int {
	switch e.Category {
	case CategoryValidation:
		if e.Status == http.StatusConflict || e.Status == http.StatusUnprocessableEntity {
			return e.Status
		}
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryUnauthorized:
		if e.Status == http.StatusForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case CategoryNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// AsRemoteError unwraps err into a *RemoteError.
func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	re, ok := AsRemoteError(err)
	return ok && re.Category == CategoryUnauthorized
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	re, ok := AsRemoteError(err)
	return ok && re.Category == CategoryNotFound
}

// CategoryOf maps an HTTP status onto a Category.
func CategoryOf(status int) Category {
	switch {
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryUnauthorized
	case status >= 500:
		return CategoryServer
	default:
		return CategoryValidation
	}
}

// Messages overrides the user-facing message for specific statuses of one
// resource, e.g. 409 on stock means the item code is taken.
type Messages map[int]string

var defaultMessages = map[Category]string{
	CategoryValidation:   "invalid data, check the required fields",
	CategoryNotFound:     "resource not found",
	CategoryUnauthorized: "access not authorized",
	CategoryServer:       "internal server error, contact the system administrator",
	CategoryNetwork:      "could not connect to the server",
}

// errorBody covers the spellings the factory service uses for its message
// field, including its historical "menssagem" typo.
type errorBody struct {
	Menssagem string `json:"menssagem"`
	Mensagem  string `json:"mensagem"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

func (b errorBody) text() string {
	for _, s := range []string{b.Menssagem, b.Mensagem, b.Message, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// newStatusError builds the error for a non-2xx response. A resource
// override wins over the body message, which wins over the category
// default.
func newStatusError(status int, body []byte, overrides Messages) *RemoteError {
	category := CategoryOf(status)
	msg, ok := overrides[status]
	if !ok {
		var b errorBody
		if len(body) > 0 && json.Unmarshal(body, &b) == nil {
			msg = b.text()
		}
	}
	if msg == "" {
		msg = defaultMessages[category]
		if category == CategoryValidation && status != http.StatusBadRequest {
			msg = fmt.Sprintf("request failed with status %d", status)
		}
	}
	return &RemoteError{Category: category, Status: status, Message: msg}
}

func newNetworkError(cause error) *RemoteError {
	return &RemoteError{
		Category: CategoryNetwork,
		Message:  defaultMessages[CategoryNetwork],
		Cause:    cause,
	}
}
