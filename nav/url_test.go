package nav

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare hostname gets https",
			raw:  "example.com",
			want: "https://example.com",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  example.com/path  ",
			want: "https://example.com/path",
		},
		{
			name: "explicit https unchanged",
			raw:  "https://example.com",
			want: "https://example.com",
		},
		{
			name: "explicit http unchanged",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name: "scheme match is case-insensitive",
			raw:  "HTTPS://Example.com",
			want: "HTTPS://Example.com",
		},
		{
			name: "uppercase http unchanged",
			raw:  "HTTP://example.com",
			want: "HTTP://example.com",
		},
		{
			name: "non-http scheme still gets prefixed",
			raw:  "ftp://example.com",
			want: "https://ftp://example.com",
		},
		{
			name: "localhost with port",
			raw:  "localhost:3000",
			want: "https://localhost:3000",
		},
		{
			name: "empty stays empty",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only stays empty",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Any non-empty string without an http(s) prefix must normalize to
// "https://" + its trimmed form.
func TestNormalizePrefixProperty(t *testing.T) {
	inputs := []string{
		"example.com",
		"sub.domain.example.com/a/b?q=1",
		"  padded.example.org ",
		"192.168.1.1:8080",
		"not even a url",
	}
	for _, raw := range inputs {
		want := "https://" + strings.TrimSpace(raw)
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare hostname",
			raw:  "apple.com",
			want: "https://apple.com",
		},
		{
			name: "full https URL",
			raw:  "https://example.com/path?q=1",
			want: "https://example.com/path?q=1",
		},
		{
			name: "http URL kept as http",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "spaces in host",
			raw:     "not a url",
			wantErr: true,
		},
		{
			name:    "missing host",
			raw:     "https://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsSecure(t *testing.T) {
	tests := []struct {
		rawURL string
		want   bool
	}{
		{"https://example.com", true},
		{"HTTPS://example.com", true},
		{"http://example.com", false},
		{"", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		if got := IsSecure(tt.rawURL); got != tt.want {
			t.Errorf("IsSecure(%q) = %v, want %v", tt.rawURL, got, tt.want)
		}
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://example.com/path", "example.com"},
		{"https://sub.example.com:8443", "sub.example.com"},
		{"http://192.168.0.1:8080/x", "192.168.0.1"},
		// Unparseable input falls back to the input itself.
		{"http://exa mple.com", "http://exa mple.com"},
		{"plain text", "plain text"},
	}

	for _, tt := range tests {
		if got := Hostname(tt.rawURL); got != tt.want {
			t.Errorf("Hostname(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}
