package utils_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/caseshift/caseshift/internal/utils"
)

func TestNewApplicationLoggerDefaultsToWarn(t *testing.T) {
	loggerInstance, logLevel, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		t.Fatalf("constructing logger: %v", loggerError)
	}
	defer loggerInstance.Sync()

	if logLevel.Level() != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", logLevel.Level())
	}
	logLevel.SetLevel(zapcore.DebugLevel)
	if !loggerInstance.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug logging after lowering the level")
	}
}

func TestGetApplicationVersionNeverEmpty(t *testing.T) {
	if version := utils.GetApplicationVersion(); version == "" {
		t.Fatal("expected a non-empty version string")
	}
}
