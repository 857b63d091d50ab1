// Package enumerate yields file paths whose base names match glob patterns,
// restricted to a bounded depth below a start directory.
package enumerate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// UnboundedDepth disables the depth restriction.
	UnboundedDepth = 0
	// SingleLevelDepth restricts traversal to the start directory itself.
	SingleLevelDepth = 1
)

const (
	errorNoPatterns           = "at least one file pattern is required"
	errorInvalidPatternFormat = "invalid pattern %q: %w"
)

// Options configures a single traversal.
type Options struct {
	// Patterns holds shell-style glob patterns matched against base names.
	Patterns []string
	// StartDirectory is the traversal root. Empty means the current working
	// directory.
	StartDirectory string
	// MaxDepth bounds how deep below StartDirectory matching files may live.
	// The start directory itself is depth one. UnboundedDepth removes the
	// restriction.
	MaxDepth int
}

// VisitFunc receives each matching file path in filesystem traversal order.
// Returning an error stops the traversal and propagates the error.
type VisitFunc func(path string) error

// normalized applies the single-pattern shortcut: when exactly one pattern is
// given without a start directory and that pattern carries a directory
// component, the directory part becomes the start directory, the base name
// becomes the sole pattern, and traversal is forced non-recursive.
func (options Options) normalized() Options {
	if len(options.Patterns) == 1 && options.StartDirectory == "" {
		slashPattern := filepath.ToSlash(options.Patterns[0])
		if strings.Contains(slashPattern, "/") {
			options.StartDirectory = filepath.Dir(options.Patterns[0])
			options.Patterns = []string{filepath.Base(options.Patterns[0])}
			options.MaxDepth = SingleLevelDepth
		}
	}
	if options.StartDirectory == "" {
		options.StartDirectory = "."
	}
	return options
}

// Paths walks the start directory and invokes visit for every file whose base
// name matches at least one pattern within the depth bound. The sequence is
// lazy and one-shot: paths are produced as the walk discovers them, and a
// second traversal requires calling Paths again. Entries deeper than the
// bound are skipped, but the walk still descends into their directories.
func Paths(options Options, visit VisitFunc) error {
	if len(options.Patterns) == 0 {
		return errors.New(errorNoPatterns)
	}
	options = options.normalized()

	walkError := filepath.WalkDir(options.StartDirectory, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			return accessError
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if options.MaxDepth > UnboundedDepth {
			entryDepth, depthError := directoryDepth(options.StartDirectory, filepath.Dir(walkedPath))
			if depthError != nil {
				return depthError
			}
			if entryDepth > options.MaxDepth {
				return nil
			}
		}
		matched, matchError := matchesAnyPattern(directoryEntry.Name(), options.Patterns)
		if matchError != nil {
			return matchError
		}
		if matched {
			return visit(walkedPath)
		}
		return nil
	})
	return walkError
}

// directoryDepth counts path separators between the start directory and the
// directory holding an entry. The start directory itself is depth one.
func directoryDepth(startDirectory string, entryDirectory string) (int, error) {
	relativeDirectory, relativeError := filepath.Rel(startDirectory, entryDirectory)
	if relativeError != nil {
		return 0, relativeError
	}
	return len(strings.Split(relativeDirectory, string(os.PathSeparator))), nil
}

// matchesAnyPattern reports whether the base name matches at least one of the
// glob patterns.
func matchesAnyPattern(baseName string, patterns []string) (bool, error) {
	for _, patternValue := range patterns {
		matched, matchError := doublestar.Match(patternValue, baseName)
		if matchError != nil {
			return false, fmt.Errorf(errorInvalidPatternFormat, patternValue, matchError)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
