package enumerate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caseshift/caseshift/internal/enumerate"
)

// buildTree creates the given relative file paths under root.
func buildTree(t *testing.T, root string, relativePaths []string) {
	t.Helper()
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if directoryError := os.MkdirAll(filepath.Dir(fullPath), 0o755); directoryError != nil {
			t.Fatalf("creating directory for %s: %v", relativePath, directoryError)
		}
		if writeError := os.WriteFile(fullPath, []byte("content\n"), 0o644); writeError != nil {
			t.Fatalf("writing %s: %v", relativePath, writeError)
		}
	}
}

// collectPaths runs the enumerator and returns visited paths relative to root.
func collectPaths(t *testing.T, root string, options enumerate.Options) []string {
	t.Helper()
	var visited []string
	visitError := enumerate.Paths(options, func(path string) error {
		relativePath, relativeError := filepath.Rel(root, path)
		if relativeError != nil {
			return relativeError
		}
		visited = append(visited, filepath.ToSlash(relativePath))
		return nil
	})
	if visitError != nil {
		t.Fatalf("enumerating paths: %v", visitError)
	}
	return visited
}

func containsPath(paths []string, target string) bool {
	for _, pathValue := range paths {
		if pathValue == target {
			return true
		}
	}
	return false
}

func TestPathsMatchesByBaseName(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"alpha.txt", "beta.txt", "gamma.log"})

	visited := collectPaths(t, root, enumerate.Options{
		Patterns:       []string{"*.txt"},
		StartDirectory: root,
		MaxDepth:       enumerate.UnboundedDepth,
	})
	if len(visited) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(visited), visited)
	}
	if !containsPath(visited, "alpha.txt") || !containsPath(visited, "beta.txt") {
		t.Fatalf("unexpected matches: %v", visited)
	}
}

func TestPathsMultiplePatterns(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"alpha.txt", "gamma.log", "delta.bin"})

	visited := collectPaths(t, root, enumerate.Options{
		Patterns:       []string{"*.txt", "*.log"},
		StartDirectory: root,
		MaxDepth:       enumerate.UnboundedDepth,
	})
	if len(visited) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(visited), visited)
	}
}

func TestPathsDepthBound(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{
		"top.txt",
		"child/nested.txt",
		"child/grandchild/deep.txt",
	})

	visited := collectPaths(t, root, enumerate.Options{
		Patterns:       []string{"*.txt"},
		StartDirectory: root,
		MaxDepth:       enumerate.SingleLevelDepth,
	})
	if !containsPath(visited, "top.txt") {
		t.Fatalf("expected top.txt in %v", visited)
	}
	if !containsPath(visited, "child/nested.txt") {
		t.Fatalf("expected child/nested.txt in %v; the first subdirectory level shares the start depth", visited)
	}
	if containsPath(visited, "child/grandchild/deep.txt") {
		t.Fatalf("did not expect deep.txt in %v", visited)
	}
}

func TestPathsUnboundedDepth(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"child/grandchild/deep.txt"})

	visited := collectPaths(t, root, enumerate.Options{
		Patterns:       []string{"*.txt"},
		StartDirectory: root,
		MaxDepth:       enumerate.UnboundedDepth,
	})
	if !containsPath(visited, "child/grandchild/deep.txt") {
		t.Fatalf("expected deep.txt in %v", visited)
	}
}

func TestPathsSinglePatternWithDirectoryComponent(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{
		"inner/match.txt",
		"inner/deep/too_deep/skipme.txt",
		"outer.txt",
	})

	pattern := filepath.Join(root, "inner", "*.txt")
	visited := collectPaths(t, root, enumerate.Options{
		Patterns: []string{pattern},
	})
	if !containsPath(visited, "inner/match.txt") {
		t.Fatalf("expected inner/match.txt in %v", visited)
	}
	if containsPath(visited, "outer.txt") {
		t.Fatalf("did not expect outer.txt in %v", visited)
	}
	if containsPath(visited, "inner/deep/too_deep/skipme.txt") {
		t.Fatalf("did not expect the doubly nested file in %v", visited)
	}
}

func TestPathsZeroMatches(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"alpha.txt"})

	visited := collectPaths(t, root, enumerate.Options{
		Patterns:       []string{"*.nomatch"},
		StartDirectory: root,
		MaxDepth:       enumerate.UnboundedDepth,
	})
	if len(visited) != 0 {
		t.Fatalf("expected no matches, got %v", visited)
	}
}

func TestPathsRequiresPatterns(t *testing.T) {
	enumerationError := enumerate.Paths(enumerate.Options{}, func(string) error { return nil })
	if enumerationError == nil {
		t.Fatal("expected an error for empty pattern list")
	}
}
