// Package config loads optional application configuration that supplies
// defaults for the command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the configuration file discovered in the working
	// directory.
	ConfigFileName = ".caseshift.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding
	// the global configuration file.
	GlobalConfigDirectoryName = ".caseshift"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds optional defaults for a rename invocation.
type ApplicationConfiguration struct {
	Rename RenameConfiguration `mapstructure:"rename"`
}

// RenameConfiguration mirrors the command line surface. Pointer fields
// distinguish unset values from explicit ones.
type RenameConfiguration struct {
	Boundary       string `mapstructure:"boundary"`
	Diff           *bool  `mapstructure:"diff"`
	TextOnly       *bool  `mapstructure:"text_only"`
	Variants       *bool  `mapstructure:"variants"`
	KeepGoing      *bool  `mapstructure:"keep_going"`
	Clipboard      *bool  `mapstructure:"clipboard"`
	StartDirectory string `mapstructure:"directory"`
	MaxDepth       *int   `mapstructure:"depth"`
}

// LoadApplicationConfiguration loads configuration from the global file under
// the user home and the local file in the working directory, the local file
// overriding the global one. Missing files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined
// configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Rename = result.Rename.merge(override.Rename)
	return result
}

func (configuration RenameConfiguration) merge(override RenameConfiguration) RenameConfiguration {
	result := configuration
	if override.Boundary != "" {
		result.Boundary = override.Boundary
	}
	if override.Diff != nil {
		result.Diff = cloneBool(override.Diff)
	}
	if override.TextOnly != nil {
		result.TextOnly = cloneBool(override.TextOnly)
	}
	if override.Variants != nil {
		result.Variants = cloneBool(override.Variants)
	}
	if override.KeepGoing != nil {
		result.KeepGoing = cloneBool(override.KeepGoing)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.StartDirectory != "" {
		result.StartDirectory = override.StartDirectory
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	return result
}

func cloneBool(value *bool) *bool {
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	cloned := *value
	return &cloned
}
