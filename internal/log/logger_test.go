package log

import (
	"bytes"
	"testing"
)

func TestInitialize(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelVerbose, &buf)

	if Verbosity() != LevelVerbose {
		t.Errorf("expected verbosity %d, got %d", LevelVerbose, Verbosity())
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	// Test at debug level so all messages are captured
	Initialize(LevelDebug, &buf)

	// These should not panic
	Info("test info", "key", "value")
	Debug("test debug", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	if buf.Len() == 0 {
		t.Error("expected log output, got none")
	}
}

func TestLogLevelChecks(t *testing.T) {
	var buf bytes.Buffer

	Initialize(LevelDebug, &buf)

	if !IsVerbose() {
		t.Error("expected IsVerbose() to be true at debug level")
	}
	if !IsDebug() {
		t.Error("expected IsDebug() to be true at debug level")
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer

	Initialize(LevelQuiet, &buf)
	Info("should not appear")
	Debug("should not appear either")

	if buf.Len() != 0 {
		t.Errorf("expected no output at quiet level, got %q", buf.String())
	}

	Warn("should appear")
	if buf.Len() == 0 {
		t.Error("expected warning output at quiet level")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelVerbose, &buf)

	// These should not panic
	Progress("Linting %d/%d", 1, 2)
	ProgressDone()

	Progress("Another progress")
	ProgressClear()
}

func TestSetOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	Initialize(LevelVerbose, &buf1)
	Info("message 1")

	SetOutput(&buf2)
	Info("message 2")

	if buf1.Len() == 0 {
		t.Error("expected output in first buffer")
	}
}

func TestVerbosityLevels(t *testing.T) {
	tests := []struct {
		level     int
		isVerbose bool
		isDebug   bool
	}{
		{LevelQuiet, false, false},
		{LevelVerbose, true, false},
		{LevelDebug, true, true},
	}

	var buf bytes.Buffer
	for _, tt := range tests {
		Initialize(tt.level, &buf)

		if IsVerbose() != tt.isVerbose {
			t.Errorf("at level %d: expected IsVerbose()=%v, got %v", tt.level, tt.isVerbose, IsVerbose())
		}
		if IsDebug() != tt.isDebug {
			t.Errorf("at level %d: expected IsDebug()=%v, got %v", tt.level, tt.isDebug, IsDebug())
		}
	}
}
