// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/caseshift/caseshift/internal/config"
	"github.com/caseshift/caseshift/internal/enumerate"
	"github.com/caseshift/caseshift/internal/rewrite"
	"github.com/caseshift/caseshift/internal/services/clipboard"
	"github.com/caseshift/caseshift/internal/utils"
)

const (
	wordFlagName          = "word"
	almostWordFlagName    = "almost-word"
	diffFlagName          = "diff"
	textOnlyFlagName      = "text-only"
	verboseFlagName       = "verbose"
	silentFlagName        = "silent"
	directoryFlagName     = "dir"
	depthFlagName         = "depth"
	keepGoingFlagName     = "keep-going"
	noVariantsFlagName    = "no-variants"
	clipboardFlagName     = "clipboard"
	configurationFlagName = "config"

	wordFlagShorthand      = "w"
	diffFlagShorthand      = "d"
	textOnlyFlagShorthand  = "f"
	verboseFlagShorthand   = "V"
	silentFlagShorthand    = "q"
	clipboardFlagShorthand = "c"

	versionTemplate      = "caseshift version: {{.Version}}\n"
	rootUse              = "caseshift SOURCE DEST PATTERN..."
	rootShortDescription = "rename an identifier across a file tree"
	rootLongDescription  = `caseshift renames a string in CamelCase, snake_case, and file names in one go.
It enumerates files matching the given patterns, substitutes SOURCE with DEST
in file contents and file names, and either rewrites the files in place or
previews the change as a unified diff.`
	rootUsageExample = `  # Rename an identifier and matching file names under the current directory
  caseshift foo_bar baz_qux '*.py'

  # Preview the change as a unified diff
  caseshift -d fooBar bazQux '*.go' '*.md'

  # Restrict matches to whole words, keep file names untouched
  caseshift -w -f old_name new_name 'src/*.c'`

	wordFlagDescription          = "force SOURCE to match only whole words"
	almostWordFlagDescription    = "like --word, but allow any number of surrounding underscores"
	diffFlagDescription          = "show a unified diff instead of modifying files in place"
	textOnlyFlagDescription      = "only rewrite file contents, do not rename any files"
	verboseFlagDescription       = "be verbose"
	silentFlagDescription        = "be silent"
	directoryFlagDescription     = "directory to start the file search in"
	depthFlagDescription         = "maximum directory depth to search, 0 for unbounded"
	keepGoingFlagDescription     = "continue with remaining files after a file fails"
	noVariantsFlagDescription    = "do not also rename the case-converted form of SOURCE"
	clipboardFlagDescription     = "copy the diff preview to the clipboard instead of printing it"
	configurationFlagDescription = "path to a configuration file"

	clipboardRequiresDiffMessage = "--clipboard requires --diff"
	minimumArgumentCount         = 3
)

// renameOptions stores the flag targets for a single invocation.
type renameOptions struct {
	wholeWord         bool
	allowUnderscores  bool
	diffOnly          bool
	textOnly          bool
	verbose           bool
	silent            bool
	keepGoing         bool
	noVariants        bool
	clipboardEnabled  bool
	startDirectory    string
	maxDepth          int
	configurationPath string
}

// Execute runs the caseshift application with the provided logger. The atomic
// level is adjusted once the verbosity flags have been parsed.
func Execute(loggerInstance *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := createRootCommand(loggerInstance, logLevel)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger, logLevel zap.AtomicLevel) *cobra.Command {
	var options renameOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(minimumArgumentCount),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runRename(command, arguments, options, loggerInstance, logLevel)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)

	rootCommand.Flags().BoolVarP(&options.wholeWord, wordFlagName, wordFlagShorthand, false, wordFlagDescription)
	rootCommand.Flags().BoolVar(&options.allowUnderscores, almostWordFlagName, false, almostWordFlagDescription)
	rootCommand.Flags().BoolVarP(&options.diffOnly, diffFlagName, diffFlagShorthand, false, diffFlagDescription)
	rootCommand.Flags().BoolVarP(&options.textOnly, textOnlyFlagName, textOnlyFlagShorthand, false, textOnlyFlagDescription)
	rootCommand.Flags().BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagDescription)
	rootCommand.Flags().BoolVarP(&options.silent, silentFlagName, silentFlagShorthand, false, silentFlagDescription)
	rootCommand.Flags().BoolVar(&options.keepGoing, keepGoingFlagName, false, keepGoingFlagDescription)
	rootCommand.Flags().BoolVar(&options.noVariants, noVariantsFlagName, false, noVariantsFlagDescription)
	rootCommand.Flags().BoolVarP(&options.clipboardEnabled, clipboardFlagName, clipboardFlagShorthand, false, clipboardFlagDescription)
	rootCommand.Flags().StringVar(&options.startDirectory, directoryFlagName, "", directoryFlagDescription)
	rootCommand.Flags().IntVar(&options.maxDepth, depthFlagName, enumerate.UnboundedDepth, depthFlagDescription)
	rootCommand.Flags().StringVar(&options.configurationPath, configurationFlagName, "", configurationFlagDescription)
	rootCommand.MarkFlagsMutuallyExclusive(wordFlagName, almostWordFlagName)
	rootCommand.MarkFlagsMutuallyExclusive(verboseFlagName, silentFlagName)
	return rootCommand
}

// runRename resolves the effective configuration and executes the rewrite
// pipeline.
func runRename(
	command *cobra.Command,
	arguments []string,
	options renameOptions,
	loggerInstance *zap.Logger,
	logLevel zap.AtomicLevel,
) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configurationPath,
	})
	if configurationError != nil {
		return configurationError
	}
	renameDefaults := applicationConfiguration.Rename

	switch {
	case options.verbose:
		logLevel.SetLevel(zapcore.DebugLevel)
	case options.silent:
		logLevel.SetLevel(zapcore.ErrorLevel)
	}

	boundary, boundaryError := resolveBoundary(options, renameDefaults.Boundary)
	if boundaryError != nil {
		return boundaryError
	}

	diffOnly := resolveBoolFlag(command, diffFlagName, options.diffOnly, renameDefaults.Diff)
	textOnly := resolveBoolFlag(command, textOnlyFlagName, options.textOnly, renameDefaults.TextOnly)
	keepGoing := resolveBoolFlag(command, keepGoingFlagName, options.keepGoing, renameDefaults.KeepGoing)
	clipboardEnabled := resolveBoolFlag(command, clipboardFlagName, options.clipboardEnabled, renameDefaults.Clipboard)
	withVariants := !options.noVariants
	if !command.Flags().Changed(noVariantsFlagName) && renameDefaults.Variants != nil {
		withVariants = *renameDefaults.Variants
	}
	startDirectory := resolveStringFlag(command, directoryFlagName, options.startDirectory, renameDefaults.StartDirectory)
	maxDepth := resolveIntFlag(command, depthFlagName, options.maxDepth, renameDefaults.MaxDepth)

	if clipboardEnabled && !diffOnly {
		return errors.New(clipboardRequiresDiffMessage)
	}

	enumerateOptions := enumerate.Options{
		Patterns:       arguments[2:],
		StartDirectory: startDirectory,
		MaxDepth:       maxDepth,
	}
	rewriteOptions := rewrite.Options{
		Source:       arguments[0],
		Destination:  arguments[1],
		Boundary:     boundary,
		DiffOnly:     diffOnly,
		TextOnly:     textOnly,
		WithVariants: withVariants,
		KeepGoing:    keepGoing,
	}
	loggerInstance.Debug("starting rename",
		zap.String("source", rewriteOptions.Source),
		zap.String("destination", rewriteOptions.Destination),
		zap.String("boundary", boundary.String()),
		zap.Strings("patterns", enumerateOptions.Patterns),
	)

	var diffWriter io.Writer = command.OutOrStdout()
	var clipboardBuffer *bytes.Buffer
	if clipboardEnabled {
		clipboardBuffer = &bytes.Buffer{}
		diffWriter = clipboardBuffer
	}

	if runError := rewrite.Run(enumerateOptions, rewriteOptions, loggerInstance, diffWriter); runError != nil {
		return runError
	}
	if clipboardBuffer != nil {
		return clipboard.NewService().Copy(clipboardBuffer.String())
	}
	return nil
}

// resolveBoundary picks the word boundary mode from the flags, falling back
// to the configured default when neither boundary flag is set.
func resolveBoundary(options renameOptions, configuredMode string) (rewrite.WordBoundary, error) {
	switch {
	case options.wholeWord:
		return rewrite.WholeWord, nil
	case options.allowUnderscores:
		return rewrite.AllowUnderscores, nil
	default:
		return rewrite.ParseWordBoundary(configuredMode)
	}
}

// resolveBoolFlag returns the flag value when set on the command line, the
// configured default otherwise.
func resolveBoolFlag(command *cobra.Command, flagName string, flagValue bool, configuredValue *bool) bool {
	if command.Flags().Changed(flagName) || configuredValue == nil {
		return flagValue
	}
	return *configuredValue
}

// resolveStringFlag returns the flag value when set on the command line, the
// configured default otherwise.
func resolveStringFlag(command *cobra.Command, flagName string, flagValue string, configuredValue string) string {
	if command.Flags().Changed(flagName) || configuredValue == "" {
		return flagValue
	}
	return configuredValue
}

// resolveIntFlag returns the flag value when set on the command line, the
// configured default otherwise.
func resolveIntFlag(command *cobra.Command, flagName string, flagValue int, configuredValue *int) int {
	if command.Flags().Changed(flagName) || configuredValue == nil {
		return flagValue
	}
	return *configuredValue
}
