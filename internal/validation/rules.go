package validation

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the minimum length accepted for any password.
const MinPasswordLength = 8

// Moo (village/plot number) bounds.
const (
	MinMoo = 0
	MaxMoo = 1000
)

// StripDashes removes the separator dashes users commonly type into citizen
// IDs and phone numbers ("1-2345-67890-12-3", "081-234-5678").
func StripDashes(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

// IsEmail reports whether the value passes the portal's email rule:
// non-empty and containing "@".
func IsEmail(s string) bool {
	return s != "" && strings.Contains(s, "@")
}

// IsCitizenID reports whether the value is exactly 13 numeric digits after
// stripping separator dashes.
func IsCitizenID(s string) bool {
	return isDigits(StripDashes(s), 13)
}

// IsMobile reports whether the value is exactly 10 numeric digits after
// stripping separator dashes.
func IsMobile(s string) bool {
	return isDigits(StripDashes(s), 10)
}

// IsMoo reports whether the village/plot number is within [0, 1000].
func IsMoo(moo int) bool {
	return moo >= MinMoo && moo <= MaxMoo
}

// CheckPassword applies the basic password rule: non-empty, minimum length 8.
// Returns an empty string when the password is acceptable, otherwise the
// message to surface on the field.
func CheckPassword(password string) string {
	if password == "" {
		return "password is required"
	}
	if len(password) < MinPasswordLength {
		return "password must be at least 8 characters"
	}
	return ""
}

// CheckStrictPassword applies the stricter change-password rule: the basic
// rule plus at least one uppercase letter, one lowercase letter and one
// digit, and the new password must differ from the current one.
func CheckStrictPassword(newPassword, currentPassword string) string {
	if msg := CheckPassword(newPassword); msg != "" {
		return msg
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range newPassword {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "password must contain an uppercase letter, a lowercase letter and a digit"
	}

	if newPassword == currentPassword {
		return "new password must differ from the current password"
	}
	return ""
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
