// Package caseconv classifies identifiers against restrictive snake_case and
// CamelCase grammars and converts between the two forms losslessly.
package caseconv

import (
	"regexp"
	"strings"
)

// Case identifies the case convention an identifier conforms to.
type Case int

const (
	// CaseNeither marks identifiers conforming to neither grammar.
	CaseNeither Case = iota
	// CaseSnake marks identifiers conforming to the snake_case grammar.
	CaseSnake
	// CaseCamel marks identifiers conforming to the CamelCase grammar.
	CaseCamel
)

// String returns the human-readable name of the case convention.
func (caseConvention Case) String() string {
	switch caseConvention {
	case CaseSnake:
		return "snake_case"
	case CaseCamel:
		return "CamelCase"
	default:
		return "neither"
	}
}

// The grammars are deliberately restrictive: no leading, trailing, or doubled
// underscores, no pure-digit words, no uppercase runs. Every identifier
// accepted by one grammar converts to an identifier accepted by the other and
// back to the original.
var (
	// snakeCasePattern matches one or more lowercase alphanumeric words, each
	// starting with a lowercase letter, joined by single underscores.
	snakeCasePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z][a-z0-9]*)*$`)

	// camelCasePattern matches either a single uppercase letter, or an
	// uppercase-led first word with at least one trailing lowercase letter or
	// digit followed by any number of such words. Requiring the second
	// character to be lowercase or a digit rules out acronym-style starts
	// such as "HWorld".
	camelCasePattern = regexp.MustCompile(`^[A-Z]([a-z0-9]+([A-Z][a-z0-9]+)*)?$`)

	// snakeWordStartPattern locates the first letter of every snake_case
	// word together with its leading underscore, if any.
	snakeWordStartPattern = regexp.MustCompile(`(^|_)[a-z]`)

	// camelWordStartPattern locates the uppercase letter starting every
	// CamelCase word.
	camelWordStartPattern = regexp.MustCompile(`[A-Z]`)
)

// IsSnakeCase reports whether the identifier conforms to the snake_case
// grammar. It is total over all strings and never fails.
func IsSnakeCase(identifier string) bool {
	return snakeCasePattern.MatchString(identifier)
}

// IsCamelCase reports whether the identifier conforms to the CamelCase
// grammar. It is total over all strings and never fails.
func IsCamelCase(identifier string) bool {
	return camelCasePattern.MatchString(identifier)
}

// Classify returns the case convention of the identifier. The grammars are
// mutually exclusive, so the result is exactly one of the three values.
func Classify(identifier string) Case {
	if IsSnakeCase(identifier) {
		return CaseSnake
	}
	if IsCamelCase(identifier) {
		return CaseCamel
	}
	return CaseNeither
}

// SnakeToCamel converts a snake_case identifier to CamelCase. Identifiers not
// conforming to the snake_case grammar are returned unchanged.
func SnakeToCamel(identifier string) string {
	if !IsSnakeCase(identifier) {
		return identifier
	}
	return snakeWordStartPattern.ReplaceAllStringFunc(identifier, func(wordStart string) string {
		return strings.ToUpper(strings.TrimPrefix(wordStart, "_"))
	})
}

// CamelToSnake converts a CamelCase identifier to snake_case. Identifiers not
// conforming to the CamelCase grammar are returned unchanged.
func CamelToSnake(identifier string) string {
	if !IsCamelCase(identifier) {
		return identifier
	}
	separated := camelWordStartPattern.ReplaceAllStringFunc(identifier, func(wordStart string) string {
		return "_" + strings.ToLower(wordStart)
	})
	return strings.TrimPrefix(separated, "_")
}
