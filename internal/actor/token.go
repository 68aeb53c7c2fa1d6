package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum length of a token signing secret.
const MinSecretLength = 32

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrShortSecret  = fmt.Errorf("secret must be at least %d bytes", MinSecretLength)
)

// Verifier signs and verifies HS256 actor tokens. The subject claim is the actor id.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given secret.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	return &Verifier{secret: secret}, nil
}

// Verify validates the token and returns the actor it names.
func (v *Verifier) Verify(tokenString string) (*Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	return &Actor{ID: sub}, nil
}

// Generate mints a token for the actor id. A zero ttl produces a token without expiry.
func (v *Verifier) Generate(actorID string, ttl time.Duration) (string, error) {
	if actorID == "" {
		return "", errors.New("actor id is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  actorID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
