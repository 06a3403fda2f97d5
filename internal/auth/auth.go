// Package auth implements the login credential check.
//
// This is a placeholder, not a security control: one configured
// username/password pair is compared with plain equality, and a match hands
// out a fixed token that nothing downstream ever verifies.
package auth

import (
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Checker validates login attempts against a single credential pair.
type Checker struct {
	creds types.Credentials
}

// NewChecker returns a Checker for creds. Empty fields fall back to the
// values of types.DefaultCredentials.
func NewChecker(creds types.Credentials) *Checker {
	def := types.DefaultCredentials()
	if creds.Username == "" {
		creds.Username = def.Username
	}
	if creds.Password == "" {
		creds.Password = def.Password
	}
	if creds.Token == "" {
		creds.Token = def.Token
	}
	return &Checker{creds: creds}
}

// Login returns the configured token when username and password match.
// Returns ErrCredentialsRequired if either is empty and
// ErrInvalidCredentials on a mismatch.
func (c *Checker) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", types.ErrCredentialsRequired
	}
	if username != c.creds.Username || password != c.creds.Password {
		return "", types.ErrInvalidCredentials
	}
	return c.creds.Token, nil
}
