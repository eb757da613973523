// Package credential holds the process-wide delegated Google Drive credential.
// The store is injected rather than read from ambient globals so that tests
// can substitute a fake credential without touching the environment.
package credential

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// Store holds the single delegated OAuth2 token for the Drive account.
// It is written by the OAuth callback and read by every storage-facing
// handler. Writes are rare and operator-triggered.
type Store struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromJSON creates a Store seeded from a JSON-encoded oauth2.Token,
// as held in the GOOGLE_TOKEN environment variable. An empty blob yields an
// empty store.
func NewStoreFromJSON(blob string) (*Store, error) {
	s := &Store{}
	if blob == "" {
		return s, nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(blob), &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token JSON: %w", err)
	}
	s.token = &tok
	return s, nil
}

// Set replaces the stored token.
func (s *Store) Set(tok *oauth2.Token) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

// Token returns the stored token, or nil if none has been set.
func (s *Store) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Present reports whether a usable credential is stored. A token without an
// access token does not count.
func (s *Store) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != nil && s.token.AccessToken != ""
}
