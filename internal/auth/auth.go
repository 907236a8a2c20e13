// Package auth resolves an incoming identity (an opaque bearer token) to
// the stable user_id engine verbs are ownership-checked against. It does
// not issue or manage sessions — per spec.md §1 the HTTP surface and its
// session cookies are an external collaborator this core never sees.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Resolver maps bearer tokens to stable user IDs.
type Resolver struct {
	mu    sync.RWMutex
	users map[string]string // sha256(token) hex -> user_id
	hash  map[string]string // user_id -> bcrypt hash of its token, for Verify
}

// NewResolver builds an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		users: make(map[string]string),
		hash:  make(map[string]string),
	}
}

// Register issues a stable identity for a token, hashing it with bcrypt the
// way the teacher's session manager hashes credentials. Calling Register
// twice for the same token is idempotent.
func (r *Resolver) Register(token, userID string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[tokenKey(token)] = userID
	r.hash[userID] = string(h)
	return nil
}

// Resolve returns the user_id bound to a bearer token, or an error if the
// token is unknown.
func (r *Resolver) Resolve(token string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.users[tokenKey(token)]
	if !ok {
		return "", fmt.Errorf("unknown token")
	}
	if h, ok := r.hash[userID]; ok {
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte(token)); err != nil {
			return "", fmt.Errorf("token verification failed: %w", err)
		}
	}
	return userID, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
