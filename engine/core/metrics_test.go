package core

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 101; i++ {
		m.Update(10*time.Millisecond, i%2)
	}
	if m.FrameTime() != 10 {
		t.Errorf("FrameTime() = %f, want 10", m.FrameTime())
	}
	if m.FPS() != 100 {
		t.Errorf("FPS() = %f, want 100", m.FPS())
	}
	if m.Frames() != 101 {
		t.Errorf("Frames() = %d", m.Frames())
	}
	if last, total := m.Skipped(); last != 0 || total != 50 {
		t.Errorf("Skipped() = %d, %d; want 0, 50", last, total)
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel(" DEBUG ") != DebugLevel {
		t.Error("debug not parsed")
	}
	if ParseLogLevel("nonsense") != InfoLevel {
		t.Error("unknown level should fall back to info")
	}
}
