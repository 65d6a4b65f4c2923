package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/model"
)

// PasswordHasher turns a plain password into a salted hash and checks it back.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, hashed string) bool
}

// TokenCodec issues and verifies access tokens.
type TokenCodec interface {
	Issue(claims model.TokenClaims, ttl time.Duration) (token string, expiresAt time.Time, err error)
	Verify(token string) (model.TokenClaims, error)
}

type IDGenerator interface {
	NewID() uuid.UUID
}

type Clock interface {
	Now() time.Time
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID { return uuid.New() }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
