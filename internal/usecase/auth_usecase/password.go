package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

var commonPasswords = map[string]struct{}{
	"password":     {},
	"password1":    {},
	"password123":  {},
	"123456789012": {},
	"1234567890":   {},
	"12345678":     {},
	"qwerty":       {},
	"qwertyuiop":   {},
	"letmein":      {},
	"admin":        {},
	"admin123":     {},
	"welcome1":     {},
}

// PasswordProblems lists every strength requirement plain fails. Empty means acceptable.
func PasswordProblems(plain string) []string {
	var problems []string

	if utf8.RuneCountInString(plain) < minPasswordLength {
		problems = append(problems, "must be at least 8 characters")
	}
	if len(plain) > maxPasswordBytes {
		problems = append(problems, "must be at most 72 bytes")
	}

	var hasUpper, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		problems = append(problems, "must contain an uppercase letter")
	}
	if !hasDigit {
		problems = append(problems, "must contain a digit")
	}

	if _, ok := commonPasswords[strings.ToLower(plain)]; ok {
		problems = append(problems, "is too common")
	}
	return problems
}
