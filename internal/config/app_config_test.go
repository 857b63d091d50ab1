package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caseshift/caseshift/internal/config"
)

func writeConfigFile(t *testing.T, directory string, content string) {
	t.Helper()
	path := filepath.Join(directory, config.ConfigFileName)
	if writeError := os.WriteFile(path, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing configuration: %v", writeError)
	}
}

func TestLoadApplicationConfigurationMissingFile(t *testing.T) {
	workingDirectory := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("unexpected error: %v", loadError)
	}
	if configuration.Rename.Diff != nil || configuration.Rename.Boundary != "" {
		t.Fatalf("expected empty configuration, got %+v", configuration)
	}
}

func TestLoadApplicationConfigurationLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	writeConfigFile(t, workingDirectory, "rename:\n  boundary: word\n  diff: true\n  depth: 3\n")

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("unexpected error: %v", loadError)
	}
	if configuration.Rename.Boundary != "word" {
		t.Fatalf("expected boundary word, got %q", configuration.Rename.Boundary)
	}
	if configuration.Rename.Diff == nil || !*configuration.Rename.Diff {
		t.Fatal("expected diff default to be enabled")
	}
	if configuration.Rename.MaxDepth == nil || *configuration.Rename.MaxDepth != 3 {
		t.Fatalf("expected depth 3, got %v", configuration.Rename.MaxDepth)
	}
}

func TestLoadApplicationConfigurationLocalOverridesGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	globalDirectory := filepath.Join(homeDirectory, config.GlobalConfigDirectoryName)
	if directoryError := os.MkdirAll(globalDirectory, 0o755); directoryError != nil {
		t.Fatalf("creating global configuration directory: %v", directoryError)
	}
	writeConfigFile(t, globalDirectory, "rename:\n  boundary: word\n  text_only: true\n")

	workingDirectory := t.TempDir()
	writeConfigFile(t, workingDirectory, "rename:\n  boundary: almost-word\n")

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("unexpected error: %v", loadError)
	}
	if configuration.Rename.Boundary != "almost-word" {
		t.Fatalf("expected the local boundary to win, got %q", configuration.Rename.Boundary)
	}
	if configuration.Rename.TextOnly == nil || !*configuration.Rename.TextOnly {
		t.Fatal("expected the global text_only default to survive the merge")
	}
}

func TestMergePreservesUnsetFields(t *testing.T) {
	enabled := true
	base := config.ApplicationConfiguration{
		Rename: config.RenameConfiguration{Boundary: "word", KeepGoing: &enabled},
	}
	merged := base.Merge(config.ApplicationConfiguration{})
	if merged.Rename.Boundary != "word" {
		t.Fatalf("expected boundary to survive, got %q", merged.Rename.Boundary)
	}
	if merged.Rename.KeepGoing == nil || !*merged.Rename.KeepGoing {
		t.Fatal("expected keep_going to survive")
	}
}
