package nav

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// Normalize trims surrounding whitespace and prepends https:// when the
// input does not already carry an explicit http or https scheme.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !schemePattern.MatchString(raw) {
		return "https://" + raw
	}
	return raw
}

// Parse normalizes raw and validates the result as a well-formed http
// or https URL with a host, returning the normalized form.
func Parse(raw string) (string, error) {
	normalized := Normalize(raw)
	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("invalid URL %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return normalized, nil
}

// IsSecure reports whether the URL uses the https scheme.
func IsSecure(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && strings.EqualFold(u.Scheme, "https")
}

// Hostname returns the parsed hostname, or the input itself when it
// cannot be parsed. It never fails; chrome labels always have
// something to show.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
