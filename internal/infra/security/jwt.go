package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/domain/model"
)

type accessClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HMAC access tokens. It does no I/O.
type JWTCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

type CodecOption func(*JWTCodec)

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret string, algorithm string, opts ...CodecOption) (*JWTCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}

	c := &JWTCodec{secret: []byte(secret), method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs claims with exp = now + ttl.
func (c *JWTCodec) Issue(claims model.TokenClaims, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(ttl)

	tok := jwt.NewWithClaims(c.method, accessClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify returns apperr.ErrTokenExpiredOrInvalid for any signature, format or expiry
// failure and apperr.ErrTokenMalformed for a valid token without a subject.
func (c *JWTCodec) Verify(raw string) (model.TokenClaims, error) {
	var ac accessClaims
	tok, err := jwt.ParseWithClaims(raw, &ac, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return model.TokenClaims{}, apperr.ErrTokenExpiredOrInvalid.Wrap(err)
	}
	if !tok.Valid {
		return model.TokenClaims{}, apperr.ErrTokenExpiredOrInvalid
	}

	if ac.Subject == "" {
		return model.TokenClaims{}, apperr.ErrTokenMalformed
	}

	out := model.TokenClaims{
		Subject: ac.Subject,
		Email:   ac.Email,
		Role:    model.Role(ac.Role),
	}
	if ac.IssuedAt != nil {
		out.IssuedAt = ac.IssuedAt.Time
	}
	if ac.ExpiresAt != nil {
		out.ExpiresAt = ac.ExpiresAt.Time
	}
	return out, nil
}
