package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-accounts-api/internal/domain"
	"github.com/go-accounts-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// TicketClaims is the payload of an activation ticket: the candidate user
// record plus the digest of its one-time code. The ticket is the only place
// a PendingRegistration ever lives.
type TicketClaims struct {
	Registration domain.PendingRegistration `json:"user"`
	CodeDigest   string                     `json:"code_digest"`
	jwt.RegisteredClaims
}

// SessionClaims is the payload of an access or refresh token. The subject is
// the user id; nothing else is carried.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies HS256 session tokens under one
// purpose-specific secret. Access and refresh tokens are two independent
// codecs with distinct secrets and TTLs.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl}
}

// Sign mints a token whose subject is userID. A ULID jti guarantees two
// tokens minted for the same user in the same second still differ.
func (c *SessionCodec) Sign(userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        id.New(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify returns the token's subject, or one of domain.ErrTokenExpired,
// domain.ErrTokenMalformed, domain.ErrInvalidSignature.
func (c *SessionCodec) Verify(tokenStr string) (string, error) {
	var claims SessionClaims
	if err := parse(tokenStr, c.secret, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("missing subject: %w", domain.ErrTokenMalformed)
	}
	return claims.Subject, nil
}

// TicketCodec signs and verifies activation tickets under the activation
// secret.
type TicketCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTicketCodec(secret string, ttl time.Duration) *TicketCodec {
	return &TicketCodec{secret: []byte(secret), ttl: ttl}
}

func (c *TicketCodec) Sign(reg domain.PendingRegistration, codeDigest string) (string, error) {
	now := time.Now()
	claims := TicketClaims{
		Registration: reg,
		CodeDigest:   codeDigest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.New(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *TicketCodec) Verify(tokenStr string) (*TicketClaims, error) {
	var claims TicketClaims
	if err := parse(tokenStr, c.secret, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func parse(tokenStr string, secret []byte, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return mapJWTError(err)
	}
	if !token.Valid {
		return domain.ErrTokenMalformed
	}
	return nil
}

// mapJWTError translates jwt/v5 errors into the domain's distinct failure
// kinds. Signature failures take precedence: a tampered token is reported as
// a bad signature even when its embedded expiry has also passed.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidSignature)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidSignature)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%v: %w", err, domain.ErrTokenExpired)
	default:
		return fmt.Errorf("%v: %w", err, domain.ErrTokenMalformed)
	}
}
