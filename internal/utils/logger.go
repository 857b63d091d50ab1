// Package utils contains helper functionality shared across the caseshift
// tool: logger construction and version retrieval.
package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger configured for human-readable
// console output on stderr, together with the atomic level handle so the
// verbosity can be adjusted once the command line has been parsed. The
// default level is warn.
func NewApplicationLogger() (*zap.Logger, zap.AtomicLevel, error) {
	atomicLevel := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Level = atomicLevel
	loggerConfiguration.Encoding = "console"
	loggerConfiguration.OutputPaths = []string{"stderr"}
	loggerConfiguration.DisableCaller = true
	loggerConfiguration.DisableStacktrace = true
	loggerConfiguration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	loggerConfiguration.EncoderConfig.TimeKey = ""
	loggerConfiguration.EncoderConfig.LevelKey = ""
	loggerConfiguration.EncoderConfig.NameKey = ""
	loggerConfiguration.EncoderConfig.CallerKey = ""
	loggerConfiguration.EncoderConfig.MessageKey = "message"
	loggerConfiguration.EncoderConfig.StacktraceKey = ""
	loggerInstance, buildError := loggerConfiguration.Build()
	return loggerInstance, atomicLevel, buildError
}
