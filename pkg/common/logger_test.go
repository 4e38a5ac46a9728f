package common

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/guardian-alert-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLoggerWith(LoggerNameGuardianCore, zap.String(LoggerFieldCategory, LoggerCategoryCheckIn))
	logger.Info("Test log message", zap.String("key", "value"))
	logger.Debug("below capture level")

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, `"category":"checkin"`) {
		t.Errorf("expected category field in log output, got: %s", logOutput)
	}
	if strings.Contains(logOutput, "below capture level") {
		t.Errorf("debug line should not be captured at info level")
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("") != zapcore.InfoLevel {
		t.Error("empty level should default to info")
	}
	if parseLevel("warn") != zapcore.WarnLevel {
		t.Error("expected warn level")
	}
	if parseLevel("nonsense") != zapcore.InfoLevel {
		t.Error("unknown level should default to info")
	}
}
