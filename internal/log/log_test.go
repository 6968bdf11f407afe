package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestTaggedLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, LevelInfo)
	sched := root.With("SCHED")

	sched.Debugf("hidden %d", 1)
	sched.Infof("shown %d", 2)
	if got := buf.String(); got != "INFO: [SCHED] shown 2\n" {
		t.Fatalf("unexpected output %q", got)
	}

	buf.Reset()
	root.SetLevel(LevelError)
	sched.Warnf("dropped")
	if buf.Len() != 0 {
		t.Fatalf("warn should be filtered at error level, got %q", buf.String())
	}
	sched.Errorf("boom")
	if !strings.Contains(buf.String(), "ERROR: [SCHED] boom") {
		t.Fatalf("missing error line: %q", buf.String())
	}
}

func TestLevelFromString(t *testing.T) {
	if LevelFromString("warning") != LevelWarn {
		t.Fatalf("warning should map to LevelWarn")
	}
	if LevelFromString("bogus") != LevelDebug {
		t.Fatalf("unknown levels default to debug")
	}
	if ValidLevel("bogus") || !ValidLevel("info") {
		t.Fatalf("ValidLevel mismatch")
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.With("X").Infof("nothing")
	if l.Enabled(LevelError) {
		t.Fatalf("nil logger should report disabled")
	}
}
