// Package session persists the single ambient logged-in identity. One
// process writes it at login, the next reads it to resume; at most one
// session exists at a time and its presence is the authorization gate for
// collection operations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/isdelr/card-binder-be/internal/auth"
	"github.com/isdelr/card-binder-be/internal/common"
)

// Session is the typed object serialized to the session file. The embedded
// token is signed, so a tampered file fails validation instead of being
// trusted.
type Session struct {
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
	Token    string    `json:"token"`
}

// Store reads and writes the session file.
type Store struct {
	path   string
	secret []byte
}

// NewStore creates a Store persisting to the given path.
func NewStore(path string, secret []byte) *Store {
	return &Store{path: path, secret: secret}
}

// Establish records username as the current identity, overwriting any prior
// session, and returns the written session. A second login silently
// replaces the first.
func (s *Store) Establish(username string) (Session, error) {
	token, err := auth.GenerateToken(s.secret, username)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	sess := Session{
		Username: username,
		IssuedAt: time.Now(),
		Token:    token,
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Current returns the logged-in username. It fails with
// common.ErrNoSession when no session file exists or its token does not
// validate; a stale or tampered file is the same as being logged out.
func (s *Store) Current() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", common.ErrNoSession
		}
		return "", err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return "", common.ErrNoSession
	}

	claims, err := auth.ValidateToken(s.secret, sess.Token)
	if err != nil || claims.Username != sess.Username {
		return "", common.ErrNoSession
	}
	return sess.Username, nil
}

// Clear deletes the session. Clearing an absent session is a no-op, not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
