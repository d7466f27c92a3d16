package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// NationalIDPattern matches a 9-digit national id
	NationalIDPattern = `^\d{9}$`

	// EmailPattern is deliberately loose: something@something.something
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// Name lengths
	NameMinLength = 2
	NameMaxLength = 100

	// PasswordMinLength applies to the login form
	PasswordMinLength = 6

	// Semester bounds
	SemesterMin = 1
	SemesterMax = 99
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	NationalID *regexp.Regexp
	Email      *regexp.Regexp
}{
	NationalID: regexp.MustCompile(NationalIDPattern),
	Email:      regexp.MustCompile(EmailPattern),
}
