// Package validation holds input format rules shared by signup and
// profile updates.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"chirp/internal/models"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 128
	maxEmailLen    = 254
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	loginIDRegex  = regexp.MustCompile(`^[a-z0-9_]{4,30}$`)
)

// Password checks length and character-class requirements. Length is
// counted in runes so multi-byte characters are not penalized.
func Password(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLen {
		return models.NewValidationError("Password must be at least 12 characters")
	}
	if len(runes) > maxPasswordLen {
		return models.NewValidationError("Password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return models.NewValidationError("Password must contain upper and lower case letters, a digit and a special character")
	}
	return nil
}

// Username allows letters, digits, underscore and hyphen, but not as a
// leading or trailing character.
func Username(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("Username must be 3-20 characters of letters, digits, underscore or hyphen")
	}
	first, last := username[0], username[len(username)-1]
	if first == '-' || first == '_' || last == '-' || last == '_' {
		return models.NewValidationError("Username cannot start or end with a hyphen or underscore")
	}
	return nil
}

// LoginID is the immutable sign-in identifier chosen at signup.
func LoginID(loginID string) error {
	if !loginIDRegex.MatchString(loginID) {
		return models.NewValidationError("Login ID must be 4-30 characters of lowercase letters, digits or underscore")
	}
	return nil
}

// Email checks RFC 5322 shape plus a few practical restrictions the
// parser is too lenient about.
func Email(email string) error {
	if len(email) > maxEmailLen {
		return models.NewValidationError("Email must be at most 254 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return models.NewValidationError("Invalid email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if domain == "" || strings.HasSuffix(domain, ".") || !strings.Contains(domain, ".") {
		return models.NewValidationError("Invalid email address")
	}
	return nil
}
