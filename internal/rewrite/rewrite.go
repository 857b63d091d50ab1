// Package rewrite applies identifier substitutions to file contents and file
// paths, either in place or as a unified diff preview.
package rewrite

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/caseshift/caseshift/internal/enumerate"
)

// diffContextLines is the number of context lines in unified diff output.
const diffContextLines = 3

// temporaryFilePattern names the staging files written next to each target.
const temporaryFilePattern = ".caseshift-*"

const errorContentNotUTF8 = "content is not valid UTF-8"

// Options configures how each enumerated file is rewritten.
type Options struct {
	// Source is the identifier being renamed.
	Source string
	// Destination replaces Source.
	Destination string
	// Boundary selects the word boundary mode for substitution.
	Boundary WordBoundary
	// DiffOnly renders a unified diff instead of mutating anything.
	DiffOnly bool
	// TextOnly suppresses path renaming, limiting changes to file contents.
	TextOnly bool
	// WithVariants also substitutes the case-converted source/destination
	// pair when one can be derived.
	WithVariants bool
	// KeepGoing continues with remaining files after a file fails instead of
	// aborting the batch.
	KeepGoing bool
}

// Executor rewrites files one at a time. It holds no state across files
// beyond its configuration, logger, and diff destination.
type Executor struct {
	substitution *Substitution
	options      Options
	logger       *zap.Logger
	diffWriter   io.Writer
}

// NewExecutor builds an executor from the options. Diff previews are written
// to diffWriter; the logger reports per-file progress and failures.
func NewExecutor(options Options, logger *zap.Logger, diffWriter io.Writer) *Executor {
	return &Executor{
		substitution: NewSubstitution(options.Source, options.Destination, options.Boundary, options.WithVariants),
		options:      options,
		logger:       logger,
		diffWriter:   diffWriter,
	}
}

// ProcessFile rewrites a single file: it computes the candidate path, reads
// and transforms the content line by line, and either previews the change as
// a unified diff or writes the result into place. Failures are reported as
// *FileError values.
func (executor *Executor) ProcessFile(path string) error {
	executor.logger.Debug("rewriting", zap.String("path", path))

	candidatePath := path
	if !executor.options.TextOnly {
		candidatePath = executor.substitution.Apply(path)
	}

	fileInformation, statError := os.Stat(path)
	if statError != nil {
		return newIOError(path, statError)
	}
	contentBytes, readError := os.ReadFile(path)
	if readError != nil {
		return newIOError(path, readError)
	}
	if !utf8.Valid(contentBytes) {
		return newEncodingError(path, errors.New(errorContentNotUTF8))
	}

	originalLines := splitLinesKeepEnds(string(contentBytes))
	transformedLines := make([]string, len(originalLines))
	for lineIndex, lineValue := range originalLines {
		transformedLines[lineIndex] = executor.substitution.Apply(lineValue)
	}

	if executor.options.DiffOnly {
		return executor.renderDiff(path, candidatePath, originalLines, transformedLines)
	}
	return executor.writeInPlace(path, candidatePath, fileInformation.Mode(), transformedLines)
}

// renderDiff writes a unified diff between the original and transformed lines
// to the executor's diff destination. No filesystem mutation occurs.
func (executor *Executor) renderDiff(originalPath string, candidatePath string, originalLines []string, transformedLines []string) error {
	unifiedDiff := difflib.UnifiedDiff{
		A:        originalLines,
		B:        transformedLines,
		FromFile: originalPath,
		ToFile:   candidatePath,
		Context:  diffContextLines,
	}
	diffText, diffError := difflib.GetUnifiedDiffString(unifiedDiff)
	if diffError != nil {
		return newIOError(originalPath, diffError)
	}
	if _, writeError := io.WriteString(executor.diffWriter, diffText); writeError != nil {
		return newIOError(originalPath, writeError)
	}
	return nil
}

// writeInPlace stages the transformed lines into a temporary file beside the
// candidate path, carries over the original permission bits, renames the
// staging file into place, and removes the original when the path changed.
// The rename is atomic, so no window exists with a half-written destination.
func (executor *Executor) writeInPlace(originalPath string, candidatePath string, fileMode fs.FileMode, transformedLines []string) error {
	targetDirectory := filepath.Dir(candidatePath)
	temporaryFile, temporaryError := os.CreateTemp(targetDirectory, temporaryFilePattern)
	if temporaryError != nil {
		return newIOError(candidatePath, temporaryError)
	}
	temporaryPath := temporaryFile.Name()
	staged := false
	defer func() {
		if !staged {
			temporaryFile.Close()
			os.Remove(temporaryPath)
		}
	}()

	for _, lineValue := range transformedLines {
		if _, writeError := io.WriteString(temporaryFile, lineValue); writeError != nil {
			return newIOError(candidatePath, writeError)
		}
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return newIOError(candidatePath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, fileMode.Perm()); chmodError != nil {
		return newIOError(candidatePath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, candidatePath); renameError != nil {
		return newIOError(candidatePath, renameError)
	}
	staged = true

	if candidatePath != originalPath {
		if removeError := os.Remove(originalPath); removeError != nil {
			return newIOError(originalPath, removeError)
		}
		executor.logger.Debug("renamed",
			zap.String("from", originalPath),
			zap.String("to", candidatePath),
		)
	}
	return nil
}

// splitLinesKeepEnds splits content into lines, each retaining its trailing
// newline. A final line without a newline is kept as-is; empty content yields
// no lines.
func splitLinesKeepEnds(content string) []string {
	var lines []string
	lineStart := 0
	for byteIndex := 0; byteIndex < len(content); byteIndex++ {
		if content[byteIndex] == '\n' {
			lines = append(lines, content[lineStart:byteIndex+1])
			lineStart = byteIndex + 1
		}
	}
	if lineStart < len(content) {
		lines = append(lines, content[lineStart:])
	}
	return lines
}

// Run enumerates matching paths and rewrites each file strictly one at a time
// in traversal order. By default the first file failure aborts the batch;
// with KeepGoing every failure is logged and the first one is returned after
// the remaining files have been processed. Zero enumerated paths is success.
func Run(enumerateOptions enumerate.Options, rewriteOptions Options, logger *zap.Logger, diffWriter io.Writer) error {
	executor := NewExecutor(rewriteOptions, logger, diffWriter)

	var firstFailure error
	enumerationError := enumerate.Paths(enumerateOptions, func(path string) error {
		processError := executor.ProcessFile(path)
		if processError == nil {
			return nil
		}
		if !rewriteOptions.KeepGoing {
			return processError
		}
		logger.Error("rewrite failed", zap.String("path", path), zap.Error(processError))
		if firstFailure == nil {
			firstFailure = processError
		}
		return nil
	})
	if enumerationError != nil {
		return enumerationError
	}
	return firstFailure
}
