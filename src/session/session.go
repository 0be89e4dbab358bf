package session

import (
	"fmt"
	"sync"

	"exchange-simulator/src/interfaces"
	"exchange-simulator/src/logger"
)

// -----------------------------------------------------------------------------
// Store holds the demo session flags that gate the simulated registration
// flow. In the browser demo these lived in localStorage, with a custom
// in-page event propagating same-tab changes; here the flags sit behind the
// session store with subscriber callbacks replacing the event.
// -----------------------------------------------------------------------------

// The two recognized flag keys.
const (
	FlagRegistered = "orderly_registered"
	FlagKeyExpired = "orderly_key_expired"
)

var knownFlags = map[string]struct{}{
	FlagRegistered: {},
	FlagKeyExpired: {},
}

type Store struct {
	flags  map[string]string
	subs   []func(key, value string)
	db     interfaces.IDatabase
	Logger *logger.Logger
	mu     sync.Mutex
}

// -----------------------------------------------------------------------------

// NewStore restores persisted flags from the session database.
// db may be nil (no persistence, used in tests).
func NewStore(db interfaces.IDatabase) *Store {
	s := &Store{
		flags:  make(map[string]string),
		db:     db,
		Logger: logger.NewLogger("SessionStore"),
	}

	if db != nil {
		restored, err := db.LoadSessionFlags()
		if err != nil {
			s.Logger.Warning("Failed to restore session flags: %v", err)
		} else {
			for k, v := range restored {
				if _, ok := knownFlags[k]; ok {
					s.flags[k] = v
				}
			}
		}
	}

	return s
}

// -----------------------------------------------------------------------------

// Flags returns a copy of all set flags. Unset flags are absent, mirroring
// the "true"/absent convention of the browser keys.
func (s *Store) Flags() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// -----------------------------------------------------------------------------

// Get returns one flag value; ok=false when the flag is unset.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.flags[key]
	return v, ok
}

// -----------------------------------------------------------------------------

// Set writes a flag, persists it, and notifies subscribers. An empty value
// clears the flag (the browser demo removed the key outright).
func (s *Store) Set(key, value string) error {
	if _, ok := knownFlags[key]; !ok {
		return fmt.Errorf("unknown session flag: %s", key)
	}

	s.mu.Lock()
	if value == "" {
		delete(s.flags, key)
	} else {
		s.flags[key] = value
	}
	subs := make([]func(key, value string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.SaveSessionFlag(key, value); err != nil {
			s.Logger.Warning("Failed to persist session flag %s: %v", key, err)
		}
	}

	// Notify outside the lock; subscribers may read back from the store.
	for _, fn := range subs {
		fn(key, value)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Subscribe registers a callback invoked on every flag change. This replaces
// the demo's same-document localStorageChange event.
func (s *Store) Subscribe(fn func(key, value string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
