// Package auth issues and validates the signed, time-bound tokens that
// carry a caller's identity, and resolves that identity for protected
// operations.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidityDuration applies when Issue is called without a ttl.
const DefaultTokenValidityDuration = 15 * time.Minute

// Claims is the token payload: the registered claims (sub = username,
// iat, exp) plus the numeric user id. UserID is a pointer so that a token
// without "id" can be told apart from id 0.
type Claims struct {
	UserID *int64 `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 tokens with a single process-wide
// key. It is immutable and safe for concurrent use.
type TokenCodec struct {
	secretKey  []byte
	now        func() time.Time
	defaultTTL time.Duration
}

type CodecOption func(*TokenCodec)

// WithClock replaces time.Now for both issuing and validation.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultTTL sets the lifetime used when Issue gets no ttl. Values of
// zero or less keep DefaultTokenValidityDuration.
func WithDefaultTTL(ttl time.Duration) CodecOption {
	return func(c *TokenCodec) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

func NewTokenCodec(secretKey []byte, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{
		secretKey:  append([]byte(nil), secretKey...),
		now:        time.Now,
		defaultTTL: DefaultTokenValidityDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue returns a signed token for (username, userID) that expires ttl after
// now. A ttl of zero or less means the codec's default ttl.
func (c *TokenCodec) Issue(username string, userID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(c.secretKey)
}

// Decode verifies the signature and then the expiry of tokenString.
//
// A malformed token, a foreign algorithm or a bad signature yields
// common.ErrInvalidToken; a correctly signed token at or past its exp
// yields common.ErrTokenExpired. Presence of sub and id is not checked
// here, see Resolver.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
