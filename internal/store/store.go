package store

import (
	"sync"

	"github.com/texhue/texhue/internal/style"
)

// State is the canonical editor state: the ordered rule list plus the active
// theme name. Snapshots returned by the store are independent copies.
type State struct {
	Styles []style.Record
	Theme  string
}

type subscriberEntry struct {
	id       int
	listener func()
}

// Store owns the editor state and fans out change notifications. Listeners
// run synchronously on the writer's goroutine, in subscription order, after
// the write has landed, so a write performed inside a listener is observed
// by the notification pass it triggers. Persistence goes through the styles
// document on disk.
type Store struct {
	path string

	mu     sync.RWMutex
	state  State
	dirty  bool
	subs   []subscriberEntry
	nextID int
}

// NewStore loads the styles document at path (starting empty when the file
// does not exist yet) and returns a store bound to it.
func NewStore(path string, themeName string) (*Store, error) {
	doc, err := style.LoadOrInit(path)
	if err != nil {
		return nil, err
	}

	return &Store{
		path: path,
		state: State{
			Styles: doc.Styles,
			Theme:  themeName,
		},
	}, nil
}

// NewMemStore returns a store with no backing file, for tests and previews.
func NewMemStore(initial State) *Store {
	return &Store{
		state: State{
			Styles: style.CloneRecords(initial.Styles),
			Theme:  initial.Theme,
		},
	}
}

// Path returns the backing document path. Empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// GetState returns a deep snapshot of the current state.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Styles: style.CloneRecords(s.state.Styles),
		Theme:  s.state.Theme,
	}
}

// Styles returns a snapshot of the current rule list.
func (s *Store) Styles() []style.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return style.CloneRecords(s.state.Styles)
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Theme
}

// Dirty reports whether the state has changed since the last load or save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirty
}

// SetStyles replaces the whole rule list and notifies subscribers. The store
// accepts any list, including ones it did not produce.
func (s *Store) SetStyles(styles []style.Record) {
	s.mu.Lock()
	s.state.Styles = style.CloneRecords(styles)
	s.dirty = true
	s.mu.Unlock()

	s.notify()
}

// SetTheme replaces the active theme name and notifies subscribers.
func (s *Store) SetTheme(name string) {
	s.mu.Lock()
	s.state.Theme = name
	s.mu.Unlock()

	s.notify()
}

// Replace swaps in a whole new state and notifies subscribers.
func (s *Store) Replace(state State) {
	s.mu.Lock()
	s.state = State{
		Styles: style.CloneRecords(state.Styles),
		Theme:  state.Theme,
	}
	s.dirty = true
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a listener invoked after every state change. The
// returned closure removes the registration.
func (s *Store) Subscribe(listener func()) func() {
	if listener == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriberEntry{id: id, listener: listener})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.subs {
			if entry.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Save writes the current rule list to the backing document atomically.
// In-memory stores treat Save as a no-op.
func (s *Store) Save() error {
	if s.path == "" {
		s.mu.Lock()
		s.dirty = false
		s.mu.Unlock()
		return nil
	}

	s.mu.RLock()
	doc := &style.Document{
		Version: style.DocumentVersion,
		Styles:  style.CloneRecords(s.state.Styles),
	}
	s.mu.RUnlock()

	if err := style.SaveDocument(s.path, doc); err != nil {
		return err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// notify runs listeners outside the lock: a listener reading the store or
// writing back into it must not deadlock.
func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.subs))
	for i, entry := range s.subs {
		listeners[i] = entry.listener
	}
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener()
	}
}
