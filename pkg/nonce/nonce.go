// Package nonce issues and checks one-time action tokens. Tokens are HS256
// JWTs bound to a user and an action; spending one records its ID so it
// cannot be replayed.
package nonce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
	ErrUsed    = errors.New("token already used")
)

// Store remembers spent token IDs.
type Store interface {
	ConsumeToken(ctx context.Context, jti string, expires time.Time) (bool, error)
}

// Claims are the JWT claims of an action token.
type Claims struct {
	Action string `json:"act"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies action tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

// NewIssuer creates an issuer. secret must not be empty.
func NewIssuer(secret []byte, ttl time.Duration, store Store) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Issuer{secret: secret, ttl: ttl, store: store, now: time.Now}, nil
}

// Issue returns a signed token for user to perform action once.
func (i *Issuer) Issue(user, action string) (string, error) {
	now := i.now()
	claims := Claims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, user and action without spending the token.
func (i *Issuer) Verify(token, user, action string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(user),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if claims.Action != action || claims.ID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Consume spends a verified token. A second call for the same token fails
// with ErrUsed.
func (i *Issuer) Consume(ctx context.Context, claims *Claims) error {
	ok, err := i.store.ConsumeToken(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUsed
	}
	return nil
}
