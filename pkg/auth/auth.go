// Package auth issues and verifies bearer tokens for the HTTP API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")
)

// Authenticator verifies user credentials and manages signed tokens.
type Authenticator struct {
	secret   []byte
	tokenTTL time.Duration
	// users maps usernames to bcrypt password hashes
	users map[string]string
	// dummyHash is compared for unknown users so failed logins take the
	// same time whether or not the username exists
	dummyHash []byte
}

// NewAuthenticator creates an Authenticator. users maps usernames to bcrypt
// hashes as produced by HashPassword.
func NewAuthenticator(secret string, tokenTTL time.Duration, users map[string]string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("auth secret must not be empty")
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare authenticator: %w", err)
	}
	return &Authenticator{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		users:     users,
		dummyHash: dummy,
	}, nil
}

// HashPassword hashes a plaintext password for storage in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks the credentials and returns a signed token on success.
func (a *Authenticator) Login(username, password string) (string, error) {
	hash, ok := a.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.IssueToken(username)
}

// IssueToken signs a token for the given subject.
func (a *Authenticator) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		Issuer:    "nodelens",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns its subject.
func (a *Authenticator) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
