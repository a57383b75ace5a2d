package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

type claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// JWTStrategy signs HS256 tokens with a userId claim.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a signed token for the user.
func (s *JWTStrategy) IssueToken(userID int64) (string, error) {
	issued := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken validates signature, algorithm and expiry and returns the user id.
func (s *JWTStrategy) ParseToken(token string) (int64, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || c.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return c.UserID, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
