package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TTL is how long a rendered segment stays fresh for the same directory.
const TTL = 5 * time.Second

// EnvSession names the environment variable that scopes the cache slot to
// one interactive shell session. The hook snippet exports it as the shell's
// PID; without it the parent PID of the current invocation is used.
const EnvSession = "CHPROMPT_SESSION"

// Entry is the single cache slot: the last rendered segment, the directory
// it was computed for, and when. RenderedText is either empty (not in a
// tracked repository) or a fully rendered, color-applied string.
type Entry struct {
	Directory    string    `json:"directory"`
	ComputedAt   time.Time `json:"computed_at"`
	RenderedText string    `json:"rendered_text"`
}

// IsZero reports whether the slot is empty.
func (e Entry) IsZero() bool {
	return e.Directory == "" && e.ComputedAt.IsZero() && e.RenderedText == ""
}

// Store holds the cache slot and its on-disk location.
//
// Capacity is exactly one entry. Switching directory and returning within
// the TTL is always a miss; there is no multi-entry retention. Every prompt
// redraw runs as a fresh process, so the slot is persisted to a per-session
// scratch file rather than kept in process memory.
type Store struct {
	path  string
	entry Entry
}

// NewStore creates a store backed by the given file with an empty slot.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-session scratch file for the cache slot.
func DefaultPath() string {
	session := os.Getenv(EnvSession)
	if session == "" {
		session = strconv.Itoa(os.Getppid())
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "chprompt", "prompt-"+session+".json")
}

// Path returns the on-disk location of the slot.
func (s *Store) Path() string {
	return s.path
}

// Load reads the slot from disk.
// A missing or corrupt file loads as the empty slot, not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.entry = Entry{}
			return nil
		}
		return err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.entry = Entry{}
		return nil
	}

	s.entry = entry
	return nil
}

// Save writes the slot to disk atomically.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tempPath := s.path + ".tmp"

	data, err := json.Marshal(s.entry)
	if err != nil {
		return err
	}

	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tempPath, s.path)
}

// Lookup returns the slot when it is fresh for dir at now.
// Hit iff the directory matches and the entry is younger than TTL.
func (s *Store) Lookup(dir string, now time.Time) (Entry, bool) {
	if s.entry.Directory != dir || s.entry.Directory == "" {
		return Entry{}, false
	}
	if now.Sub(s.entry.ComputedAt) >= TTL {
		return Entry{}, false
	}
	return s.entry, true
}

// Store overwrites the slot unconditionally.
func (s *Store) Store(dir string, now time.Time, renderedText string) {
	s.entry = Entry{
		Directory:    dir,
		ComputedAt:   now,
		RenderedText: renderedText,
	}
}

// Clear resets the slot to empty. Called whenever the status query reports
// no repository.
func (s *Store) Clear() {
	s.entry = Entry{}
}

// Open acquires the slot's file lock and loads it.
// Returns the store, a release function, and an error.
// Caller must defer release() if err == nil.
func Open(path string) (*Store, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}

	lock := NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	s := NewStore(path)
	if err := s.Load(); err != nil {
		lock.Unlock()
		return nil, nil, fmt.Errorf("failed to load cache: %w", err)
	}

	release := func() { _ = lock.Unlock() }

	return s, release, nil
}
