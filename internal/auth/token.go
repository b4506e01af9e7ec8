package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/shopstack/ecommerce-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// Claims is the minimal identity snapshot embedded in a token. The access
// guard treats it as a hint only: role and activity are always re-read from
// the store.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed, expiring tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. The secret must be non-empty; callers verify
// this at startup (missing secret is a fatal configuration error, never a
// per-call one). A non-positive ttl falls back to 7 days.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity snapshot.
func (tc *TokenCodec) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
}

// Verify parses and validates a token. Every failure cause (bad signature,
// malformed payload, wrong algorithm, expiry) collapses into
// domain.ErrInvalidToken so callers cannot distinguish them.
func (tc *TokenCodec) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
