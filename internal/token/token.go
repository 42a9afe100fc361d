// Package token issues and verifies the signed bearer tokens that protect the
// API. Tokens are self-contained: there is no server-side session state, and a
// token dies only by expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushub/asset-manager/internal/models"
)

// ErrInvalidToken is the only failure Verify reports. Malformed, expired and
// badly signed tokens are indistinguishable to callers on purpose.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = time.Hour

type Claims struct {
	Role   string `json:"role"`
	UserID uint   `json:"id,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	Secret []byte
	TTL    time.Duration
}

func (s *Service) Issue(username string, role models.Role, userID uint) (string, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := Claims{
		Role:   string(role),
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

func (s *Service) Verify(raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
