package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule validates a single string value.
// It returns a user-facing message on failure, or empty string on success.
type Rule func(value string) string

// Required fails on empty values.
func Required() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "field is required"
		}
		return ""
	}
}

// MaxLen fails on values longer than n characters.
func MaxLen(n int) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

// MinLen fails on non-empty values shorter than n characters.
func MinLen(n int) Rule {
	return func(value string) string {
		if value != "" && utf8.RuneCountInString(value) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email fails on values that are not a plausible email address.
// Empty values pass; combine with Required to reject them.
func Email() Rule {
	return func(value string) string {
		if value != "" && !emailRe.MatchString(value) {
			return "must be a valid email address"
		}
		return ""
	}
}

// OneOf fails on values outside the allowed set.
// Empty values pass; combine with Required to reject them.
func OneOf(allowed ...string) Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return "must be one of: " + strings.Join(allowed, ", ")
	}
}
