package network

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://Example.COM/Path",
			want: "https://example.com/Path",
		},
		{
			name: "strips default https port",
			in:   "https://example.com:443/x",
			want: "https://example.com/x",
		},
		{
			name: "strips default http port",
			in:   "http://example.com:80/x",
			want: "http://example.com/x",
		},
		{
			name: "keeps non-default port",
			in:   "https://example.com:8443/x",
			want: "https://example.com:8443/x",
		},
		{
			name: "sorts query parameters",
			in:   "https://example.com/?b=2&a=1",
			want: "https://example.com/?a=1&b=2",
		},
		{
			name:    "unparseable",
			in:      "https://exa mple.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	got, err := Origin("https://example.com:8443/path?q=1")
	if err != nil {
		t.Fatalf("Origin() error = %v", err)
	}
	if got != "https://example.com:8443" {
		t.Errorf("Origin() = %q", got)
	}

	if _, err := Origin("/relative/path"); err == nil {
		t.Error("expected error for relative URL")
	}
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{
			name: "absolute ref unchanged",
			base: "https://example.com/page",
			ref:  "https://cdn.example.com/icon.png",
			want: "https://cdn.example.com/icon.png",
		},
		{
			name: "relative ref resolved",
			base: "https://example.com/dir/page.html",
			ref:  "favicon.ico",
			want: "https://example.com/dir/favicon.ico",
		},
		{
			name: "root-relative ref",
			base: "https://example.com/dir/page.html",
			ref:  "/favicon.ico",
			want: "https://example.com/favicon.ico",
		},
		{
			name: "protocol-relative ref",
			base: "https://example.com/page",
			ref:  "//static.example.com/icon.svg",
			want: "https://static.example.com/icon.svg",
		},
		{
			name: "empty ref returns base",
			base: "https://example.com/page",
			ref:  "",
			want: "https://example.com/page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRef(tt.base, tt.ref)
			if err != nil {
				t.Fatalf("ResolveRef() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRef(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}
