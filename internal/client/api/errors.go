package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrSessionExpired = errors.New("session expired")

	errNoRefreshCredential = errors.New("no refresh credential stored")
)

// Kind classifies a failed call.
type Kind int

const (
	// KindNetwork: no response reached the client.
	KindNetwork Kind = iota + 1
	// KindHTTP: status outside 2xx, after any recovery attempt.
	KindHTTP
	// KindApplication: 2xx response whose body reports a domain failure.
	KindApplication
	// KindSessionExpired: the call failed and the session has been cleared.
	KindSessionExpired
	// KindInvalid: the request could not be built.
	KindInvalid
	// KindDecode: the response body could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindApplication:
		return "application"
	case KindSessionExpired:
		return "session_expired"
	case KindInvalid:
		return "invalid"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is the single error shape surfaced to callers. Message is meant to be
// rendered to the user as is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrSessionExpired:
		return e.Kind == KindSessionExpired
	case ErrUnauthorized:
		return e.Kind == KindHTTP && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case ErrNotFound:
		return e.Kind == KindHTTP && e.Status == http.StatusNotFound
	}
	return false
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func invalidError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func httpError(status int, body []byte) *Error {
	msg, ok := extractMessage(body)
	if !ok {
		msg = statusMessage(status)
	}
	return &Error{Kind: KindHTTP, Status: status, Message: msg}
}

func statusMessage(status int) string {
	text := http.StatusText(status)
	if text == "" {
		text = "unexpected status"
	}
	return fmt.Sprintf("request failed: %s (%d)", text, status)
}

// messageKeys is the priority order for human-readable error messages.
var messageKeys = []string{"message", "detail", "error"}

// extractMessage looks for the first non-empty string under messageKeys.
// Values may also be lists (["msg"]) or field-error objects
// ({"email": ["taken"]}); the first string found wins.
func extractMessage(body []byte) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", false
	}
	for _, key := range messageKeys {
		if msg := firstString(fields[key]); msg != "" {
			return msg, true
		}
	}
	return "", false
}

func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if s := firstString(item); s != "" {
				return s
			}
		}
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := firstString(obj[k]); s != "" {
				return k + ": " + s
			}
		}
	}
	return ""
}

// applicationError detects the {"success": false, ...} convention on 2xx
// responses.
func applicationError(status int, body []byte) *Error {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Success == nil || *probe.Success {
		return nil
	}
	msg, ok := extractMessage(body)
	if !ok {
		msg = "request rejected by server"
	}
	return &Error{Kind: KindApplication, Status: status, Message: msg}
}
