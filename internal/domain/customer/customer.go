// Package customer holds the customer details captured at checkout and
// their validation rules.
package customer

import (
	"regexp"
	"strings"
)

// Info is the customer record attached to an order.
type Info struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

var (
	// emailPattern is a simplified RFC address check: one @, no whitespace,
	// and a dot in the domain part.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// phonePattern requires exactly 10 ASCII digits.
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Validate checks all rules and returns every violation as a human-readable
// message. An empty slice means the record is valid. It never stops at the
// first failure; checkout surfaces all problems at once.
func Validate(info Info) []string {
	var errs []string

	if strings.TrimSpace(info.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if !emailPattern.MatchString(info.Email) {
		errs = append(errs, "Valid email is required")
	}
	if !phonePattern.MatchString(info.Phone) {
		errs = append(errs, "Valid 10-digit phone number is required")
	}
	if strings.TrimSpace(info.Address) == "" {
		errs = append(errs, "Delivery address is required")
	}

	return errs
}

// ValidationError reports the full set of rules an Info record violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid customer info: " + strings.Join(e.Violations, "; ")
}
