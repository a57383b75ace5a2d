package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies bearer tokens carrying a user id.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
