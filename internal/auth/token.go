package auth

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

func (t *TokenIssuer) Issue(u domain.User) (string, time.Time, error) {
	expires := time.Now().Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:    u.Email,
		FullName: u.FullName,
		UserType: string(u.UserType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse validates a bearer token and rebuilds the user snapshot from its
// claims without a row-store round trip.
func (t *TokenIssuer) Parse(raw string) (*domain.User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{
		ID:       id,
		Email:    c.Email,
		FullName: c.FullName,
		UserType: domain.UserType(c.UserType),
	}, nil
}
