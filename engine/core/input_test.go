package core

import "testing"

func TestInputState(t *testing.T) {
	s := NewInputState()
	s.Process([]EngineEvent{
		{Code: EVENT_CODE_KEY_PRESSED, Key: KEY_W},
		{Code: EVENT_CODE_BUTTON_PRESSED, Button: BUTTON_LEFT},
		{Code: EVENT_CODE_MOUSE_MOVED, X: 10, Y: 20},
	})
	if !s.IsKeyDown(KEY_W) || s.WasKeyDown(KEY_W) {
		t.Error("W should be down now and not before")
	}
	if !s.IsButtonDown(BUTTON_LEFT) || s.IsButtonDown(BUTTON_RIGHT) {
		t.Error("only the left button should be down")
	}

	s.Update()
	s.Process([]EngineEvent{
		{Code: EVENT_CODE_KEY_RELEASED, Key: KEY_W},
		{Code: EVENT_CODE_MOUSE_MOVED, X: 15, Y: 18},
	})
	if s.IsKeyDown(KEY_W) || !s.WasKeyDown(KEY_W) {
		t.Error("W should be released now and down before")
	}
	if dx, dy := s.MouseDelta(); dx != 5 || dy != -2 {
		t.Errorf("MouseDelta() = %f, %f", dx, dy)
	}

	// Out of range codes are ignored.
	s.Process([]EngineEvent{{Code: EVENT_CODE_BUTTON_PRESSED, Button: BUTTON_MAX_BUTTONS}})
	if s.IsButtonDown(BUTTON_MAX_BUTTONS) || s.IsKeyDown(KEYS_MAX_KEYS+1) {
		t.Error("out of range input reported down")
	}
}
