package auth

import (
	"net/mail"
	"strings"
)

// ValidateSignup checks the proposed profile against the field constraints
// and returns every violation found, not just the first. An empty slice means
// the input is acceptable. The function is pure: no I/O, no request objects.
func ValidateSignup(email, password, name string) []string {
	var violations []string

	if strings.TrimSpace(email) == "" {
		violations = append(violations, "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, "Email must be a valid address")
	}

	if password == "" {
		violations = append(violations, "Password is required")
	}

	if strings.TrimSpace(name) == "" {
		violations = append(violations, "Name is required")
	}

	return violations
}
