package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/caseshift/caseshift/internal/caseconv"
)

// WordBoundary selects how strictly the source string must be isolated by
// non-identifier characters before a substitution applies.
type WordBoundary int

const (
	// AnySequence substitutes every literal occurrence of the source.
	AnySequence WordBoundary = iota
	// AllowUnderscores substitutes occurrences isolated by non-identifier
	// characters, permitting any number of adjacent underscores, which are
	// preserved around the replacement.
	AllowUnderscores
	// WholeWord substitutes only occurrences isolated by non-identifier
	// characters. Identifier characters are letters, digits, and the
	// underscore.
	WholeWord
)

// Mode names used in configuration files and flags.
const (
	anySequenceModeName      = "any"
	allowUnderscoresModeName = "almost-word"
	wholeWordModeName        = "word"
)

// String returns the human-readable name of the boundary mode.
func (boundary WordBoundary) String() string {
	switch boundary {
	case AllowUnderscores:
		return allowUnderscoresModeName
	case WholeWord:
		return wholeWordModeName
	default:
		return anySequenceModeName
	}
}

// ParseWordBoundary maps a configured mode name to its WordBoundary value.
func ParseWordBoundary(modeName string) (WordBoundary, error) {
	switch modeName {
	case anySequenceModeName, "":
		return AnySequence, nil
	case allowUnderscoresModeName:
		return AllowUnderscores, nil
	case wholeWordModeName:
		return WholeWord, nil
	default:
		return AnySequence, fmt.Errorf("unknown word boundary mode %q", modeName)
	}
}

// substitutionPair holds one source/destination replacement. A nil pattern
// means plain literal replacement; otherwise the compiled boundary-aware
// pattern is applied with the prepared replacement template.
type substitutionPair struct {
	source      string
	destination string
	pattern     *regexp.Regexp
	replacement string
}

// rewriteLine applies the pair to a single line.
func (pair substitutionPair) rewriteLine(line string) string {
	if pair.pattern == nil {
		return strings.ReplaceAll(line, pair.source, pair.destination)
	}
	return pair.pattern.ReplaceAllString(line, pair.replacement)
}

// Substitution rewrites text by applying one or more source/destination
// pairs. When variants are enabled and both identifiers conform to the same
// case grammar, the pair converted to the opposite grammar is applied in the
// same pass, so renaming foo_bar to baz_qux also renames FooBar to BazQux.
type Substitution struct {
	pairs []substitutionPair
}

// NewSubstitution builds a substitution for the source and destination under
// the given boundary mode. withVariants adds the case-converted pair when one
// can be derived.
func NewSubstitution(source string, destination string, boundary WordBoundary, withVariants bool) *Substitution {
	pairs := []substitutionPair{newSubstitutionPair(source, destination, boundary)}
	if withVariants {
		variantSource, variantDestination, derived := caseVariant(source, destination)
		if derived {
			pairs = append(pairs, newSubstitutionPair(variantSource, variantDestination, boundary))
		}
	}
	return &Substitution{pairs: pairs}
}

// Apply rewrites a single line of text.
func (substitution *Substitution) Apply(line string) string {
	result := line
	for _, pair := range substitution.pairs {
		result = pair.rewriteLine(result)
	}
	return result
}

// Pairs returns the source identifiers this substitution replaces, primary
// pair first.
func (substitution *Substitution) Pairs() [][2]string {
	pairValues := make([][2]string, 0, len(substitution.pairs))
	for _, pair := range substitution.pairs {
		pairValues = append(pairValues, [2]string{pair.source, pair.destination})
	}
	return pairValues
}

// caseVariant derives the opposite-grammar pair when source and destination
// conform to the same case grammar. Identifiers classified as neither grammar
// never gain a variant.
func caseVariant(source string, destination string) (string, string, bool) {
	sourceCase := caseconv.Classify(source)
	if sourceCase == caseconv.CaseNeither || sourceCase != caseconv.Classify(destination) {
		return "", "", false
	}
	if sourceCase == caseconv.CaseSnake {
		return caseconv.SnakeToCamel(source), caseconv.SnakeToCamel(destination), true
	}
	return caseconv.CamelToSnake(source), caseconv.CamelToSnake(destination), true
}

// newSubstitutionPair compiles the boundary-aware pattern for one pair. The
// AnySequence mode keeps literal replacement and compiles nothing.
func newSubstitutionPair(source string, destination string, boundary WordBoundary) substitutionPair {
	pair := substitutionPair{source: source, destination: destination}
	switch boundary {
	case WholeWord:
		pair.pattern = regexp.MustCompile(wordEdge(source, "") + regexp.QuoteMeta(source) + wordEdgeAfter(source, ""))
		pair.replacement = escapeReplacement(destination)
	case AllowUnderscores:
		pair.pattern = regexp.MustCompile(wordEdge(source, `(_*)`) + regexp.QuoteMeta(source) + wordEdgeAfter(source, `(_*)`))
		pair.replacement = "${1}" + escapeReplacement(destination) + "${2}"
	}
	return pair
}

// wordEdge returns the leading boundary assertion for the source, but only
// when the source actually starts with an identifier character. The optional
// underscoreGroup is placed between the assertion and the source.
func wordEdge(source string, underscoreGroup string) string {
	if source == "" || !isWordCharacter(source[0]) {
		return underscoreGroup
	}
	return `\b` + underscoreGroup
}

// wordEdgeAfter mirrors wordEdge for the trailing end of the source.
func wordEdgeAfter(source string, underscoreGroup string) string {
	if source == "" || !isWordCharacter(source[len(source)-1]) {
		return underscoreGroup
	}
	return underscoreGroup + `\b`
}

// isWordCharacter reports whether the byte belongs to the identifier class.
func isWordCharacter(characterValue byte) bool {
	switch {
	case characterValue >= 'a' && characterValue <= 'z':
		return true
	case characterValue >= 'A' && characterValue <= 'Z':
		return true
	case characterValue >= '0' && characterValue <= '9':
		return true
	case characterValue == '_':
		return true
	default:
		return false
	}
}

// escapeReplacement neutralizes expansion metacharacters in the destination
// so it is inserted literally.
func escapeReplacement(destination string) string {
	return strings.ReplaceAll(destination, "$", "$$")
}
