package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// ParseRole accepts any letter case and surrounding spaces.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"type:varchar(50);not null" json:"name"`
	FirstName    string    `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName     string    `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address      string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// NormalizeEmail is the canonical form used for storage, uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail accepts a bare address only, not the "Name <addr>" form.
func ValidEmail(email string) bool {
	if email == "" || utf8.RuneCountInString(email) > MaxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Column widths of the user text fields, in characters.
const (
	MaxEmailLen     = 255
	MaxFirstNameLen = 100
	MaxLastNameLen  = 100
	MaxPhoneLen     = 30
	MaxAddressLen   = 255
)

// ValidName reports whether a display name has 2 to 50 characters.
func ValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 50
}
