// Package featured keeps the landing page's list of featured events. The list comes from a local YAML
// file, or from the embedded default when no file is configured, and never from the event store.
package featured

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Eursukkul/devevent/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed default_events.yaml
var defaultEvents []byte

// Event is one landing page card.
type Event struct {
	Title    string `yaml:"title"`
	Image    string `yaml:"image"`
	Slug     string `yaml:"slug"`
	Location string `yaml:"location"`
	Date     string `yaml:"date"`
	Time     string `yaml:"time"`
}

// Parse decodes a YAML list of featured events. Every entry needs a title and a slug.
func Parse(data []byte) ([]Event, error) {
	var events []Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse featured events: %w", err)
	}
	for i, e := range events {
		if e.Title == "" || e.Slug == "" {
			return nil, fmt.Errorf("featured event %d: title and slug are required", i)
		}
	}
	return events, nil
}

// Default returns the embedded list.
func Default() []Event {
	events, err := Parse(defaultEvents)
	if err != nil {
		panic(err)
	}
	return events
}

// Store serves the current list and swaps it when the backing file changes.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	events []Event
}

// NewStore loads path, or the embedded default when path is empty.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	if path == "" {
		s.set(Default())
		return s, nil
	}
	events, err := s.load()
	if err != nil {
		return nil, err
	}
	s.set(events)
	return s, nil
}

// Events returns a copy of the current list.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) set(events []Event) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	metrics.FeaturedEvents.Set(float64(len(events)))
}

func (s *Store) load() ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read featured events %s: %w", s.path, err)
	}
	// Writers truncate before writing, so an empty read is usually a half-written file.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("featured events %s is empty", s.path)
	}
	return Parse(data)
}

// Watch reloads the file in the background whenever it is written or replaced. A broken file keeps
// the previous list. The returned stop function ends the watch.
func (s *Store) Watch() (stop func(), err error) {
	if s.path == "" {
		return func() {}, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("featured watcher: %w", err)
	}
	// Watch the directory so editors that replace the file by rename are still seen.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("featured watcher add %s: %w", s.path, err)
	}

	target := filepath.Clean(s.path)
	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				events, err := s.load()
				if err != nil {
					s.logger.Warn("keeping previous featured events", "path", s.path, "error", err)
					continue
				}
				s.set(events)
				s.logger.Info("featured events reloaded", "path", s.path, "count", len(events))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if !errors.Is(err, fsnotify.ErrEventOverflow) {
					s.logger.Warn("featured watcher error", "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
