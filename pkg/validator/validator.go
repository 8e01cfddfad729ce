package validator

import (
	"sort"
	"strings"
)

// ValidationErrors collects field-level validation failures.
// It implements error so validation outcomes flow through normal error
// returns, while staying inspectable per field.
type ValidationErrors map[string][]string

// Error formats all failures as "field: message" lines joined by "; ",
// ordered by field name for deterministic output.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var parts []string
	for _, f := range fields {
		for _, msg := range e[f] {
			parts = append(parts, f+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Add records a failure for the field.
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field has any failures.
func (e ValidationErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first failure message for the field, or empty string.
func (e ValidationErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Apply runs the rules against the value and returns the collected failures,
// or nil when everything passed.
func Apply(field, value string, rules ...Rule) ValidationErrors {
	errs := ValidationErrors{}
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			errs.Add(field, msg)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
