package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Event usage:
	 * key_code = event.Key
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Event usage:
	 * key_code = event.Key
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse button pressed.
	/* Event usage:
	 * button = event.Button
	 */
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released.
	/* Event usage:
	 * button = event.Button
	 */
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Mouse moved.
	/* Event usage:
	 * x = event.X
	 * y = event.Y
	 */
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06

	// Mouse wheel.
	/* Event usage:
	 * z_delta = event.Y
	 */
	EVENT_CODE_MOUSE_WHEEL SystemEventCode = 0x07

	// Resized/resolution changed from the OS.
	/* Event usage:
	 * width = event.Width
	 * height = event.Height
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// Window gained or lost focus.
	/* Event usage:
	 * focused = event.Focused
	 */
	EVENT_CODE_FOCUS_CHANGED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// EngineEvent is the engine level view of a raw window or input event.
// Raw keeps the original platform event for consumers that need it.
type EngineEvent struct {
	Code    SystemEventCode
	Key     KeyCode
	Button  Button
	X       float64
	Y       float64
	Width   uint32
	Height  uint32
	Focused bool
	Raw     interface{}
}

// NewEngineEvent wraps a raw platform event under the given code.
func NewEngineEvent(code SystemEventCode, raw interface{}) EngineEvent {
	return EngineEvent{Code: code, Raw: raw}
}

// Should return true if handled.
type FnOnEvent func(event EngineEvent, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// Dispatcher routes polled engine events to registered listeners. It is
// owned by the frame loop and is not safe for concurrent use.
type Dispatcher struct {
	registered map[SystemEventCode][]*registeredEvent
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func (d *Dispatcher) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range d.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code `%d`", code)
			return false
		}
	}
	d.registered[code] = append(d.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 */
func (d *Dispatcher) Unregister(code SystemEventCode, listener interface{}) bool {
	events := d.registered[code]
	for i, e := range events {
		if e.listener == listener {
			d.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of its code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (d *Dispatcher) Fire(event EngineEvent) bool {
	for _, e := range d.registered[event.Code] {
		if e.callback(event, e.listener) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// FireAll fires every event in order and returns how many were handled.
func (d *Dispatcher) FireAll(events []EngineEvent) int {
	handled := 0
	for _, ev := range events {
		if d.Fire(ev) {
			handled++
		}
	}
	return handled
}
