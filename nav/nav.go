// Package nav implements the navigation and history model: the single
// source of truth for what URL is shown, what came before it, and what
// its current load status is.
package nav

import "time"

// Entry is a single visited page in the session history. URL and
// Timestamp are fixed at creation; Title and Favicon are filled in
// later once the page has been fetched.
type Entry struct {
	URL       string
	Timestamp int64 // unix milliseconds
	Title     string
	Favicon   string
}

// Session holds the ordered history, the cursor into it, and the load
// state of the current page. It has exactly one logical owner and all
// operations are synchronous, so it carries no lock; callers that share
// a Session across goroutines must serialize access themselves.
type Session struct {
	entries  []Entry
	index    int // -1 when the history is empty
	current  string
	loading  bool
	progress int
	err      *Error
}

// State is a point-in-time snapshot of a Session. CanGoBack and
// CanGoForward are always derived from HistoryIndex and the history
// length; they are never stored so they cannot drift.
type State struct {
	CurrentURL   string
	History      []Entry
	HistoryIndex int
	IsLoading    bool
	LoadProgress int
	Err          *Error
	CanGoBack    bool
	CanGoForward bool
}

// NewSession returns an empty session with no history.
func NewSession() *Session {
	return &Session{index: -1}
}

// NavigateOption configures a call to Navigate.
type NavigateOption func(*navigateOptions)

type navigateOptions struct {
	replace bool
}

// Replace makes Navigate overwrite the current history entry instead of
// appending a new one, when a current entry exists.
func Replace() NavigateOption {
	return func(o *navigateOptions) { o.replace = true }
}

// Navigate normalizes and validates rawURL and moves the session to it.
// Invalid input records an invalid-url error and leaves the history
// untouched. Valid input truncates any forward history, appends (or
// replaces) an entry, and enters the loading state.
func (s *Session) Navigate(rawURL string, opts ...NavigateOption) {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}

	normalized, err := Parse(rawURL)
	if err != nil {
		s.err = NewError(KindInvalidURL, err.Error(), rawURL)
		return
	}

	entry := Entry{URL: normalized, Timestamp: nowMillis()}
	if o.replace && s.index >= 0 {
		s.entries[s.index] = entry
	} else {
		// Navigating from a non-tail cursor discards forward history.
		s.entries = append(s.entries[:s.index+1], entry)
		s.index = len(s.entries) - 1
	}

	s.current = normalized
	s.beginLoad()
}

// GoBack moves the cursor one entry back and re-enters the loading
// state. It is a no-op when there is nothing to go back to.
func (s *Session) GoBack() {
	if s.index <= 0 {
		return
	}
	s.index--
	s.current = s.entries[s.index].URL
	s.beginLoad()
}

// GoForward moves the cursor one entry forward and re-enters the
// loading state. It is a no-op when there is nothing ahead.
func (s *Session) GoForward() {
	if s.index >= len(s.entries)-1 {
		return
	}
	s.index++
	s.current = s.entries[s.index].URL
	s.beginLoad()
}

// Refresh re-enters the loading state for the current URL without
// touching the history. It is a no-op when nothing has been loaded.
func (s *Session) Refresh() {
	if s.current == "" {
		return
	}
	s.beginLoad()
}

// Stop marks a user-initiated cancellation of the in-flight load. The
// actual fetch is owned by the content loader; this only settles the
// session state. Progress is forced to 100 so the bar reads as settled.
func (s *Session) Stop() {
	s.loading = false
	s.progress = 100
}

// SetProgress stores the load progress, clamped to [0,100].
func (s *Session) SetProgress(p int) {
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	s.progress = p
}

// FinishLoad records a successful load completion.
func (s *Session) FinishLoad() {
	s.loading = false
	s.progress = 100
	s.err = nil
}

// FailLoad records a load failure reported by the content loader.
func (s *Session) FailLoad(err *Error) {
	s.loading = false
	s.progress = 0
	s.err = err
}

// SetPageMeta enriches the current entry with the loaded page's title
// and favicon. It is a no-op when the history is empty.
func (s *Session) SetPageMeta(title, favicon string) {
	if s.index < 0 {
		return
	}
	s.entries[s.index].Title = title
	s.entries[s.index].Favicon = favicon
}

// Reset restores the empty initial state.
func (s *Session) Reset() {
	s.entries = nil
	s.index = -1
	s.current = ""
	s.loading = false
	s.progress = 0
	s.err = nil
}

// CurrentURL returns the URL at the history cursor, or "" when empty.
func (s *Session) CurrentURL() string {
	return s.current
}

// State returns a snapshot of the session. The history slice is copied
// so callers cannot mutate the session through it.
func (s *Session) State() State {
	history := make([]Entry, len(s.entries))
	copy(history, s.entries)
	return State{
		CurrentURL:   s.current,
		History:      history,
		HistoryIndex: s.index,
		IsLoading:    s.loading,
		LoadProgress: s.progress,
		Err:          s.err,
		CanGoBack:    s.index > 0,
		CanGoForward: s.index < len(s.entries)-1,
	}
}

func (s *Session) beginLoad() {
	s.err = nil
	s.loading = true
	s.progress = 0
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
