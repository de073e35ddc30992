package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/prism/engine/core"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want core.KeyCode
	}{
		{glfw.KeyW, core.KEY_W},
		{glfw.KeyA, core.KEY_A},
		{glfw.KeyZ, core.KEY_Z},
		{glfw.Key0, core.KEY_0},
		{glfw.Key9, core.KEY_9},
		{glfw.KeyF12, core.KEY_F12},
		{glfw.KeyEscape, core.KEY_ESCAPE},
		{glfw.KeyRightShift, core.KEY_SHIFT},
		{glfw.KeyKPAdd, core.KEY_UNKNOWN},
	}
	for _, tt := range tests {
		if got := TranslateKey(tt.key); got != tt.want {
			t.Errorf("TranslateKey(%d) = %#x, want %#x", tt.key, got, tt.want)
		}
	}
}

func TestKeyEventCode(t *testing.T) {
	if code, ok := keyEventCode(glfw.Press); !ok || code != core.EVENT_CODE_KEY_PRESSED {
		t.Errorf("Press = %d, %t", code, ok)
	}
	if code, ok := keyEventCode(glfw.Release); !ok || code != core.EVENT_CODE_KEY_RELEASED {
		t.Errorf("Release = %d, %t", code, ok)
	}
	if _, ok := keyEventCode(glfw.Repeat); ok {
		t.Error("Repeat should not produce an event")
	}
	if _, ok := translateButton(glfw.MouseButton4); ok {
		t.Error("extra buttons should be ignored")
	}
}

func TestFramebufferSize(t *testing.T) {
	tests := []struct {
		width, height int
		wantW, wantH  uint32
	}{
		{1280, 720, 1280, 720},
		{0, 0, 0, 0},
		{-1, 10, 0, 10},
	}
	for _, tt := range tests {
		w, h, ok := framebufferSize(tt.width, tt.height)
		if !ok || w != tt.wantW || h != tt.wantH {
			t.Errorf("framebufferSize(%d, %d) = %d, %d, %t; want %d, %d, true", tt.width, tt.height, w, h, ok, tt.wantW, tt.wantH)
		}
	}

	var closed Platform
	if _, _, ok := closed.Size(); ok {
		t.Error("a platform without a window reported a size")
	}
}
