package network

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func testPage(url string) *Page {
	return &Page{URL: url, FinalURL: url, Title: "t", FetchedAt: time.Now()}
}

func TestCacheSetGet(t *testing.T) {
	c := NewCache(10)
	c.Set("https://example.com/", testPage("https://example.com/"), http.Header{})

	if got := c.Get("https://example.com/"); got == nil {
		t.Fatal("expected a cache hit")
	}
	if got := c.Get("https://other.com/"); got != nil {
		t.Error("expected a miss for an unknown key")
	}
}

func TestCacheRespectsNoStore(t *testing.T) {
	c := NewCache(10)
	headers := http.Header{}
	headers.Set("Cache-Control", "no-store")

	c.Set("https://example.com/", testPage("https://example.com/"), headers)
	if c.Get("https://example.com/") != nil {
		t.Error("no-store response must not be cached")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

func TestCacheMaxAgeZeroExpiresImmediately(t *testing.T) {
	c := NewCache(10)
	headers := http.Header{}
	headers.Set("Cache-Control", "max-age=0")

	c.Set("https://example.com/", testPage("https://example.com/"), headers)
	if c.Get("https://example.com/") != nil {
		t.Error("max-age=0 entry must read as expired")
	}
}

func TestCacheMaxAgeFresh(t *testing.T) {
	c := NewCache(10)
	headers := http.Header{}
	headers.Set("Cache-Control", "public, max-age=3600")

	c.Set("https://example.com/", testPage("https://example.com/"), headers)
	if c.Get("https://example.com/") == nil {
		t.Error("entry within max-age must be served")
	}
}

func TestCacheExpiresHeader(t *testing.T) {
	c := NewCache(10)

	past := http.Header{}
	past.Set("Expires", time.Now().Add(-time.Hour).Format(http.TimeFormat))
	c.Set("https://stale.com/", testPage("https://stale.com/"), past)
	if c.Get("https://stale.com/") != nil {
		t.Error("entry past its Expires must read as expired")
	}

	future := http.Header{}
	future.Set("Expires", time.Now().Add(time.Hour).Format(http.TimeFormat))
	c.Set("https://fresh.com/", testPage("https://fresh.com/"), future)
	if c.Get("https://fresh.com/") == nil {
		t.Error("entry before its Expires must be served")
	}
}

func TestCacheEvictsOldestAtCapacity(t *testing.T) {
	c := NewCache(3)
	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("https://site-%d.com/", i)
		c.Set(key, testPage(key), http.Header{})
		time.Sleep(time.Millisecond) // keep cachedAt ordering distinct
	}

	if c.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", c.Size())
	}
	if c.Get("https://site-0.com/") != nil {
		t.Error("oldest entry should have been evicted")
	}
	if c.Get("https://site-3.com/") == nil {
		t.Error("newest entry should still be cached")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(10)
	c.Set("a", testPage("a"), http.Header{})
	c.Set("b", testPage("b"), http.Header{})

	c.Delete("a")
	if c.Get("a") != nil {
		t.Error("deleted entry still served")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestParseMaxAge(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Duration
		wantSet  bool
	}{
		{"max-age=3600", time.Hour, true},
		{"public, max-age=60", time.Minute, true},
		{"max-age=0", 0, true},
		{"no-cache", 0, false},
		{"", 0, false},
		{"max-age=bogus", 0, false},
	}

	for _, tt := range tests {
		got, set := parseMaxAge(tt.in)
		if got != tt.want || set != tt.wantSet {
			t.Errorf("parseMaxAge(%q) = (%v, %v), want (%v, %v)", tt.in, got, set, tt.want, tt.wantSet)
		}
	}
}
