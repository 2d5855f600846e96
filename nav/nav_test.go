package nav

import (
	"testing"
)

// checkInvariants verifies the derived booleans against the cursor and
// history length after an operation.
func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	st := s.State()
	if st.HistoryIndex < -1 || (len(st.History) == 0 && st.HistoryIndex != -1) ||
		(len(st.History) > 0 && st.HistoryIndex >= len(st.History)) {
		t.Fatalf("history index %d out of range for %d entries", st.HistoryIndex, len(st.History))
	}
	if want := st.HistoryIndex > 0; st.CanGoBack != want {
		t.Errorf("CanGoBack = %v, want %v (index %d)", st.CanGoBack, want, st.HistoryIndex)
	}
	if want := st.HistoryIndex < len(st.History)-1; st.CanGoForward != want {
		t.Errorf("CanGoForward = %v, want %v (index %d, len %d)",
			st.CanGoForward, want, st.HistoryIndex, len(st.History))
	}
}

func TestNewSessionEmptyState(t *testing.T) {
	s := NewSession()
	st := s.State()

	if st.CurrentURL != "" {
		t.Errorf("CurrentURL = %q, want empty", st.CurrentURL)
	}
	if st.HistoryIndex != -1 {
		t.Errorf("HistoryIndex = %d, want -1", st.HistoryIndex)
	}
	if len(st.History) != 0 {
		t.Errorf("History length = %d, want 0", len(st.History))
	}
	if st.CanGoBack || st.CanGoForward {
		t.Error("empty session should not be able to go back or forward")
	}
	if st.IsLoading || st.LoadProgress != 0 || st.Err != nil {
		t.Error("empty session should be idle with no error")
	}
}

func TestNavigateAppendsAndLoads(t *testing.T) {
	s := NewSession()
	s.Navigate("example.com")
	checkInvariants(t, s)

	st := s.State()
	if st.CurrentURL != "https://example.com" {
		t.Errorf("CurrentURL = %q, want %q", st.CurrentURL, "https://example.com")
	}
	if st.HistoryIndex != 0 || len(st.History) != 1 {
		t.Errorf("history = %d entries at index %d, want 1 at 0", len(st.History), st.HistoryIndex)
	}
	if !st.IsLoading || st.LoadProgress != 0 {
		t.Errorf("expected loading state with progress 0, got loading=%v progress=%d",
			st.IsLoading, st.LoadProgress)
	}
	if st.History[0].Timestamp == 0 {
		t.Error("entry timestamp not set")
	}
}

func TestNavigateInvalidURLLeavesHistoryUntouched(t *testing.T) {
	s := NewSession()
	s.Navigate("https://example.com")
	s.FinishLoad()
	before := s.State()

	s.Navigate("not a url")
	checkInvariants(t, s)

	st := s.State()
	if st.Err == nil || st.Err.Kind != KindInvalidURL {
		t.Fatalf("Err = %+v, want invalid-url", st.Err)
	}
	if st.Err.Recoverable() {
		t.Error("invalid-url must not be recoverable")
	}
	if st.CurrentURL != before.CurrentURL {
		t.Errorf("CurrentURL changed: %q -> %q", before.CurrentURL, st.CurrentURL)
	}
	if st.HistoryIndex != before.HistoryIndex || len(st.History) != len(before.History) {
		t.Errorf("history mutated: index %d len %d, want index %d len %d",
			st.HistoryIndex, len(st.History), before.HistoryIndex, len(before.History))
	}
}

func TestNavigateClearsPreviousError(t *testing.T) {
	s := NewSession()
	s.Navigate("bad url here")
	if s.State().Err == nil {
		t.Fatal("expected error after invalid navigation")
	}

	s.Navigate("example.com")
	if s.State().Err != nil {
		t.Errorf("Err = %+v, want nil after successful navigation", s.State().Err)
	}
}

func TestNavigateTruncatesForwardHistory(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.Navigate("https://b.com")
	s.Navigate("https://c.com")

	// Move cursor back to a.com.
	s.GoBack()
	s.GoBack()
	st := s.State()
	if st.HistoryIndex != 0 || st.CurrentURL != "https://a.com" {
		t.Fatalf("setup failed: index %d url %q", st.HistoryIndex, st.CurrentURL)
	}

	s.Navigate("https://d.com")
	checkInvariants(t, s)

	st = s.State()
	if len(st.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.History))
	}
	if st.History[0].URL != "https://a.com" || st.History[1].URL != "https://d.com" {
		t.Errorf("history = [%s, %s], want [https://a.com, https://d.com]",
			st.History[0].URL, st.History[1].URL)
	}
	if st.HistoryIndex != 1 {
		t.Errorf("HistoryIndex = %d, want 1", st.HistoryIndex)
	}
}

func TestNavigateReplace(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.Navigate("https://b.com")

	s.Navigate("https://c.com", Replace())
	checkInvariants(t, s)

	st := s.State()
	if len(st.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.History))
	}
	if st.History[1].URL != "https://c.com" {
		t.Errorf("replaced entry = %q, want https://c.com", st.History[1].URL)
	}
	if st.History[0].URL != "https://a.com" {
		t.Errorf("earlier entry = %q, want https://a.com", st.History[0].URL)
	}
}

func TestNavigateReplaceOnEmptyHistoryAppends(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com", Replace())

	st := s.State()
	if len(st.History) != 1 || st.HistoryIndex != 0 {
		t.Errorf("history = %d entries at index %d, want 1 at 0", len(st.History), st.HistoryIndex)
	}
}

func TestGoBackGoForwardRoundTrip(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.Navigate("https://b.com")
	s.Navigate("https://c.com")
	s.GoBack() // land somewhere in the middle

	before := s.State()
	s.GoBack()
	checkInvariants(t, s)
	s.GoForward()
	checkInvariants(t, s)

	after := s.State()
	if after.CurrentURL != before.CurrentURL {
		t.Errorf("CurrentURL = %q, want %q", after.CurrentURL, before.CurrentURL)
	}
	if after.HistoryIndex != before.HistoryIndex {
		t.Errorf("HistoryIndex = %d, want %d", after.HistoryIndex, before.HistoryIndex)
	}
}

func TestGoBackNoopAtStart(t *testing.T) {
	s := NewSession()
	s.GoBack() // empty history must not panic

	s.Navigate("https://a.com")
	s.FinishLoad()
	s.GoBack() // already at the first entry
	checkInvariants(t, s)

	st := s.State()
	if st.HistoryIndex != 0 || st.CurrentURL != "https://a.com" {
		t.Errorf("index %d url %q, want 0 / https://a.com", st.HistoryIndex, st.CurrentURL)
	}
	if st.IsLoading {
		t.Error("no-op GoBack must not re-enter the loading state")
	}
}

func TestGoForwardNoopAtTail(t *testing.T) {
	s := NewSession()
	s.GoForward() // empty history must not panic

	s.Navigate("https://a.com")
	s.FinishLoad()
	s.GoForward()
	checkInvariants(t, s)

	if st := s.State(); st.IsLoading {
		t.Error("no-op GoForward must not re-enter the loading state")
	}
}

func TestGoBackEntersLoadingAndClearsError(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.FinishLoad()
	s.Navigate("https://b.com")
	s.FailLoad(NewError(KindTimeout, "load timed out", "https://b.com"))

	s.GoBack()

	st := s.State()
	if st.Err != nil {
		t.Errorf("Err = %+v, want nil", st.Err)
	}
	if !st.IsLoading || st.LoadProgress != 0 {
		t.Errorf("loading=%v progress=%d, want true/0", st.IsLoading, st.LoadProgress)
	}
	if st.CurrentURL != "https://a.com" {
		t.Errorf("CurrentURL = %q, want https://a.com", st.CurrentURL)
	}
}

func TestRefresh(t *testing.T) {
	s := NewSession()

	// No current URL: no-op.
	s.Refresh()
	if st := s.State(); st.IsLoading {
		t.Error("Refresh on empty session must be a no-op")
	}

	s.Navigate("https://a.com")
	s.FinishLoad()
	s.FailLoad(NewError(KindNetwork, "connection reset", "https://a.com"))

	s.Refresh()
	st := s.State()
	if !st.IsLoading || st.LoadProgress != 0 || st.Err != nil {
		t.Errorf("after Refresh: loading=%v progress=%d err=%v, want true/0/nil",
			st.IsLoading, st.LoadProgress, st.Err)
	}
	if len(st.History) != 1 {
		t.Errorf("Refresh mutated history: %d entries", len(st.History))
	}
}

func TestStopAlwaysSettles(t *testing.T) {
	cases := []func(*Session){
		func(s *Session) {}, // idle
		func(s *Session) { s.Navigate("https://a.com") },                  // loading
		func(s *Session) { s.Navigate("https://a.com"); s.FinishLoad() },  // loaded
		func(s *Session) { s.Navigate("https://a.com"); s.SetProgress(42) }, // mid-load
	}

	for i, setup := range cases {
		s := NewSession()
		setup(s)
		s.Stop()
		st := s.State()
		if st.IsLoading {
			t.Errorf("case %d: IsLoading = true after Stop", i)
		}
		if st.LoadProgress != 100 {
			t.Errorf("case %d: LoadProgress = %d after Stop, want 100", i, st.LoadProgress)
		}
	}
}

func TestSetProgressClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{150, 100},
		{-10, 0},
		{0, 0},
		{100, 100},
		{55, 55},
	}

	s := NewSession()
	for _, tt := range tests {
		s.SetProgress(tt.in)
		if got := s.State().LoadProgress; got != tt.want {
			t.Errorf("SetProgress(%d): progress = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFinishLoadClearsError(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.FailLoad(NewError(KindSSL, "certificate expired", "https://a.com"))

	s.Navigate("https://a.com")
	s.FinishLoad()

	st := s.State()
	if st.Err != nil || st.IsLoading || st.LoadProgress != 100 {
		t.Errorf("after FinishLoad: err=%v loading=%v progress=%d", st.Err, st.IsLoading, st.LoadProgress)
	}
}

func TestFailLoadRecordsLatestError(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.FailLoad(NewError(KindNetwork, "no route to host", "https://a.com"))
	s.FailLoad(NewError(KindTimeout, "load timed out", "https://a.com"))

	st := s.State()
	if st.Err == nil || st.Err.Kind != KindTimeout {
		t.Fatalf("Err = %+v, want latest (timeout)", st.Err)
	}
	if st.IsLoading || st.LoadProgress != 0 {
		t.Errorf("loading=%v progress=%d, want false/0", st.IsLoading, st.LoadProgress)
	}
}

func TestSetPageMeta(t *testing.T) {
	s := NewSession()
	s.SetPageMeta("ignored", "") // empty history: no-op, no panic

	s.Navigate("https://a.com")
	s.SetPageMeta("Example Domain", "https://a.com/favicon.ico")

	st := s.State()
	if st.History[0].Title != "Example Domain" {
		t.Errorf("Title = %q, want %q", st.History[0].Title, "Example Domain")
	}
	if st.History[0].Favicon != "https://a.com/favicon.ico" {
		t.Errorf("Favicon = %q", st.History[0].Favicon)
	}
}

func TestReset(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.com")
	s.Navigate("https://b.com")
	s.FailLoad(NewError(KindUnknown, "boom", "https://b.com"))

	s.Reset()

	st := s.State()
	if st.CurrentURL != "" || st.HistoryIndex != -1 || len(st.History) != 0 {
		t.Errorf("state not reset: %+v", st)
	}
	if st.IsLoading || st.LoadProgress != 0 || st.Err != nil {
		t.Errorf("load state not reset: %+v", st)
	}
}

func TestErrorRecoverable(t *testing.T) {
	recoverable := []Kind{KindCORS, KindBlocked, KindNetwork, KindTimeout, KindSSL, KindUnknown}
	for _, kind := range recoverable {
		if !NewError(kind, "x", "https://a.com").Recoverable() {
			t.Errorf("kind %s should be recoverable", kind)
		}
	}
	if NewError(KindInvalidURL, "x", "a.com").Recoverable() {
		t.Error("invalid-url should not be recoverable")
	}
}

// Invariants must hold after every operation in an arbitrary sequence.
func TestInvariantsAcrossOperationSequence(t *testing.T) {
	s := NewSession()
	ops := []func(){
		func() { s.Navigate("https://a.com") },
		func() { s.GoBack() },
		func() { s.Navigate("https://b.com") },
		func() { s.Navigate("https://c.com") },
		func() { s.GoBack() },
		func() { s.GoBack() },
		func() { s.GoForward() },
		func() { s.Navigate("https://d.com") },
		func() { s.Refresh() },
		func() { s.Stop() },
		func() { s.GoForward() },
		func() { s.Navigate("bad input!") },
		func() { s.GoBack() },
		func() { s.Reset() },
		func() { s.GoBack() },
		func() { s.Navigate("https://e.com", Replace()) },
	}
	for _, op := range ops {
		op()
		checkInvariants(t, s)
	}
}
