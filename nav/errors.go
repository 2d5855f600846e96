package nav

import "fmt"

// Kind classifies a navigation or load failure.
type Kind string

const (
	// KindInvalidURL means the user's input failed URL validation.
	KindInvalidURL Kind = "invalid-url"
	// KindCORS means the target refused cross-origin access.
	KindCORS Kind = "cors"
	// KindBlocked means the target refuses to be embedded.
	KindBlocked Kind = "blocked"
	// KindNetwork covers DNS, connection and HTTP-level failures.
	KindNetwork Kind = "network"
	// KindTimeout means the load exceeded the fixed load timeout.
	KindTimeout Kind = "timeout"
	// KindSSL covers TLS handshake and certificate failures.
	KindSSL Kind = "ssl"
	// KindUnknown is the fallback for anything unclassified.
	KindUnknown Kind = "unknown"
)

// Error describes a failed navigation or page load. It is recorded in
// session state rather than propagated; exactly one is visible at a
// time and the latest wins.
type Error struct {
	Kind      Kind
	Message   string
	URL       string
	Timestamp int64 // unix milliseconds
}

// NewError builds an Error stamped with the current time.
func NewError(kind Kind, message, url string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		URL:       url,
		Timestamp: nowMillis(),
	}
}

// Recoverable reports whether offering a retry makes sense. Only
// invalid input is final: retyping the URL is a new navigation, not a
// retry of this one.
func (e *Error) Recoverable() bool {
	return e.Kind != KindInvalidURL
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
