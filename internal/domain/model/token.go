package model

import "time"

// TokenClaims is what an access token asserts about its bearer.
type TokenClaims struct {
	Subject   string // user id
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
