package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/errs"
)

// Claims identifies the signed-in admin.
type Claims struct {
	Email   string `json:"email"`
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *t
	cp.now = now
	return &cp
}

// Issue signs a token for the admin that expires after the configured TTL.
func (t *TokenIssuer) Issue(email, adminID string) (string, time.Time, error) {
	issuedAt := t.now()
	expiresAt := issuedAt.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:   email,
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates tokenString and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewExpiredTokenError()
		}
		e := errs.NewInvalidTokenError()
		e.Cause = err
		return nil, e
	}
	if !token.Valid || claims.Email == "" {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}
