// Package prefs persists user preferences (device, orientation, theme,
// visited URLs) as a single JSON document, the way the original tool
// kept them in browser local storage. Writes are last-writer-wins and
// not transactional; the data is non-critical by design.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// HistoryCap is the maximum number of remembered URLs; the oldest are
// evicted beyond it.
const HistoryCap = 50

// Data is the on-disk document. Zero values fall back to defaults at
// read time, so partially written or older files still load.
type Data struct {
	Device      string   `json:"device"`
	Orientation string   `json:"orientation"`
	Theme       string   `json:"theme"`
	URLHistory  []string `json:"urlHistory"`
}

func defaults() Data {
	return Data{
		Orientation: "portrait",
		Theme:       "light",
	}
}

// Store reads and writes the preference file. Every setter persists
// immediately.
type Store struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	data Data
}

// Open loads the preference file at path, falling back to defaults for
// a missing or unreadable file. The parent directory is created so the
// first save succeeds.
func Open(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}

	s := &Store{path: path, log: log, data: defaults()}
	if err := s.load(); err != nil {
		// A corrupt file is replaced by defaults on the next write.
		log.Warn("could not load preferences, using defaults",
			zap.String("path", path), zap.Error(err))
	}
	return s, nil
}

// Path returns the location of the preference file.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current preference data.
func (s *Store) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	out.URLHistory = append([]string(nil), s.data.URLHistory...)
	return out
}

// SetDevice persists the selected device id.
func (s *Store) SetDevice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Device = id
	s.save()
}

// SetOrientation persists the frame orientation.
func (s *Store) SetOrientation(orientation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Orientation = orientation
	s.save()
}

// SetTheme persists the chrome theme.
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = theme
	s.save()
}

// AddURL records a visited URL at the head of the history, dropping
// any earlier occurrence and evicting the oldest entries past the cap.
func (s *Store) AddURL(url string) {
	if url == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, 0, len(s.data.URLHistory)+1)
	history = append(history, url)
	for _, u := range s.data.URLHistory {
		if u != url {
			history = append(history, u)
		}
	}
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}
	s.data.URLHistory = history
	s.save()
}

// Reload re-reads the file, used when another process wrote it. The
// in-memory state is replaced wholesale: last writer wins.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the file into s.data. Callers hold s.mu or have exclusive
// access during construction.
func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	data := defaults()
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if data.Orientation == "" {
		data.Orientation = "portrait"
	}
	if data.Theme == "" {
		data.Theme = "light"
	}
	if len(data.URLHistory) > HistoryCap {
		data.URLHistory = data.URLHistory[:HistoryCap]
	}
	s.data = data
	return nil
}

// save writes the current data. Failures are logged, not returned:
// preference persistence is best-effort and must never break the UI.
func (s *Store) save() {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.log.Error("could not encode preferences", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.log.Error("could not write preferences",
			zap.String("path", s.path), zap.Error(err))
	}
}
