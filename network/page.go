package network

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarkAC007/iphone-browser-emulator/nav"
)

// Page is what the loader hands the viewport: enough of a fetched
// document to preview it inside the frame.
type Page struct {
	URL         string // as requested
	FinalURL    string // after redirects
	Title       string
	FaviconURL  string
	Text        string
	ContentType string
	Secure      bool
	StatusCode  int
	FetchedAt   time.Time
	Cached      bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache sets the page cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// Loader fetches pages and maps every failure mode to a navigation
// error kind. It never returns a Go error: per the error-handling
// policy, load failures are state for the chrome, not exceptions.
type Loader struct {
	client *Client
	cache  *Cache
	log    *zap.Logger
}

// NewLoader creates a page loader.
func NewLoader(client *Client, log *zap.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		cache:  NewCache(100),
		log:    log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadPage fetches urlStr and returns the page, or the navigation
// error that describes why it cannot be shown.
func (l *Loader) LoadPage(ctx context.Context, urlStr string) (*Page, *nav.Error) {
	key, err := NormalizeKey(urlStr)
	if err != nil {
		key = urlStr
	}

	if page := l.cache.Get(key); page != nil {
		l.log.Debug("page served from cache", zap.String("url", urlStr))
		cached := *page
		cached.Cached = true
		return &cached, nil
	}

	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		navErr := classifyError(err, urlStr)
		l.log.Debug("page load failed",
			zap.String("url", urlStr),
			zap.String("kind", string(navErr.Kind)),
			zap.Error(err))
		return nil, navErr
	}

	if reason, refused := refusesEmbedding(resp.Headers); refused {
		return nil, nav.NewError(nav.KindBlocked,
			fmt.Sprintf("this site refuses to be embedded (%s)", reason), urlStr)
	}

	if resp.StatusCode == 403 {
		return nil, nav.NewError(nav.KindCORS,
			fmt.Sprintf("access denied: %s", resp.Status), urlStr)
	}
	if resp.StatusCode >= 400 {
		return nil, nav.NewError(nav.KindNetwork,
			fmt.Sprintf("server returned %s", resp.Status), urlStr)
	}

	finalURL := urlStr
	if resp.FinalURL != nil {
		finalURL = resp.FinalURL.String()
	}

	page := &Page{
		URL:         urlStr,
		FinalURL:    finalURL,
		ContentType: resp.ContentType,
		Secure:      strings.HasPrefix(strings.ToLower(finalURL), "https://"),
		StatusCode:  resp.StatusCode,
		FetchedAt:   time.Now(),
	}

	if isHTML(resp.ContentType) {
		meta := extractMeta(resp.Body)
		if meta.cspBlocksEmbedding() {
			return nil, nav.NewError(nav.KindBlocked,
				"this site refuses to be embedded (content security policy)", urlStr)
		}
		page.Title = meta.title
		page.Text = meta.text
		page.FaviconURL = resolveFavicon(finalURL, meta.faviconHref)
	} else {
		page.Text = previewText(string(resp.Body))
	}
	if page.Title == "" {
		page.Title = nav.Hostname(finalURL)
	}

	l.cache.Set(key, page, resp.Headers)
	l.log.Debug("page loaded",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
		zap.String("title", page.Title))
	return page, nil
}

// ClearCache drops all cached pages.
func (l *Loader) ClearCache() {
	l.cache.Clear()
}

// classifyError maps a transport failure to a navigation error kind.
func classifyError(err error, urlStr string) *nav.Error {
	var (
		netErr  net.Error
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nav.NewError(nav.KindTimeout, "the page took too long to load", urlStr)
	case errors.As(err, &netErr) && netErr.Timeout():
		return nav.NewError(nav.KindTimeout, "the page took too long to load", urlStr)
	case errors.As(err, &certErr),
		errors.As(err, new(x509.UnknownAuthorityError)),
		errors.As(err, new(x509.HostnameError)),
		errors.As(err, new(x509.CertificateInvalidError)):
		return nav.NewError(nav.KindSSL, "secure connection failed: "+err.Error(), urlStr)
	case errors.Is(err, context.Canceled):
		return nav.NewError(nav.KindUnknown, "the load was canceled", urlStr)
	case errors.As(err, &dnsErr):
		return nav.NewError(nav.KindNetwork, "could not resolve host: "+dnsErr.Name, urlStr)
	default:
		return nav.NewError(nav.KindNetwork, err.Error(), urlStr)
	}
}

// refusesEmbedding checks the response headers for an explicit
// embed-refusal signal, mirroring how a browser would treat the frame.
func refusesEmbedding(headers http.Header) (reason string, refused bool) {
	xfo := strings.ToLower(strings.TrimSpace(headers.Get("X-Frame-Options")))
	if xfo == "deny" || xfo == "sameorigin" {
		return "X-Frame-Options: " + xfo, true
	}

	if frameAncestorsBlock(headers.Get("Content-Security-Policy")) {
		return "frame-ancestors policy", true
	}
	return "", false
}

// frameAncestorsBlock reports whether a CSP value carries a
// frame-ancestors directive that excludes arbitrary embedders.
func frameAncestorsBlock(csp string) bool {
	for _, directive := range strings.Split(csp, ";") {
		directive = strings.TrimSpace(directive)
		rest, ok := strings.CutPrefix(strings.ToLower(directive), "frame-ancestors")
		if !ok {
			continue
		}
		for _, source := range strings.Fields(rest) {
			if source == "*" {
				return false
			}
		}
		return true
	}
	return false
}

func isHTML(contentType string) bool {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// resolveFavicon turns a favicon href into an absolute URL, defaulting
// to /favicon.ico at the page's origin.
func resolveFavicon(pageURL, href string) string {
	if href == "" {
		origin, err := Origin(pageURL)
		if err != nil {
			return ""
		}
		return origin + "/favicon.ico"
	}
	resolved, err := ResolveRef(pageURL, href)
	if err != nil {
		return ""
	}
	return resolved
}
