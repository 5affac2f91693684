package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendwise/spendwise/internal/shared"
)

// TokenManager issues and verifies signed identity assertions. Tokens are
// stateless: verification is a function of (token, secret, current time)
// and needs no store lookup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager constructs a TokenManager signing with secret. Issued
// tokens expire ttl from issuance.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token embedding the user id.
func (tm *TokenManager) Issue(userID string) (string, error) {
	issuedAt := tm.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
// Every failure mode collapses to shared.ErrInvalidToken.
func (tm *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !parsed.Valid {
		return "", shared.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", shared.ErrInvalidToken
	}
	return claims.Subject, nil
}
