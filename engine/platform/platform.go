package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/prism/engine/config"
	"github.com/spaghettifunk/prism/engine/containers"
	"github.com/spaghettifunk/prism/engine/core"
)

// Events gathered between two polls. Older events are dropped when a
// frame takes long enough to overflow it.
const eventQueueSize = 1024

var errPresent = errors.New("failed to swap buffers")

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform is a glfw window with an OpenGL 3.3 core context.
type Platform struct {
	window *glfw.Window
	events *containers.RingQueue[core.EngineEvent]
}

// Startup initializes glfw and opens the window described by cfg.
func Startup(cfg config.DisplayConfig) (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Visible, boolHint(cfg.Visibility))
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, int(cfg.Multisampling))
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width, height := 1280, 720
	if cfg.Dimensions != nil {
		width, height = int(cfg.Dimensions.Width), int(cfg.Dimensions.Height)
	}
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil && cfg.Dimensions == nil {
			width, height = mode.Width, mode.Height
		}
	}

	window, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	minW, minH, maxW, maxH := glfw.DontCare, glfw.DontCare, glfw.DontCare, glfw.DontCare
	if cfg.MinDimensions != nil {
		minW, minH = int(cfg.MinDimensions.Width), int(cfg.MinDimensions.Height)
	}
	if cfg.MaxDimensions != nil {
		maxW, maxH = int(cfg.MaxDimensions.Width), int(cfg.MaxDimensions.Height)
	}
	window.SetSizeLimits(minW, minH, maxW, maxH)

	p := &Platform{
		window: window,
		events: containers.NewRingQueue[core.EngineEvent](eventQueueSize),
	}
	p.registerCallbacks()

	core.LogInfo("window '%s' opened (%dx%d, fullscreen: %t)", cfg.Title, width, height, cfg.Fullscreen)
	return p, nil
}

// GLFWWindow exposes the underlying window for context creation.
func (p *Platform) GLFWWindow() *glfw.Window {
	return p.window
}

// Size returns the framebuffer size. A minimized window reports 0x0 with
// ok=true; ok is false only once the window is closed.
func (p *Platform) Size() (uint32, uint32, bool) {
	if p.window == nil {
		return 0, 0, false
	}
	return framebufferSize(p.window.GetFramebufferSize())
}

func framebufferSize(width, height int) (uint32, uint32, bool) {
	return uint32(max(width, 0)), uint32(max(height, 0)), true
}

// PollEvents pumps the glfw event loop and drains what the callbacks
// queued, in arrival order.
func (p *Platform) PollEvents() []core.EngineEvent {
	glfw.PollEvents()
	return p.events.Drain()
}

// Present swaps the buffers. glfw reports failures by panicking; they are
// turned into errors here.
func (p *Platform) Present() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPresent, r)
		}
	}()
	p.window.SwapBuffers()
	return nil
}

func (p *Platform) ShouldClose() bool {
	return p.window.ShouldClose()
}

func (p *Platform) Close() error {
	if p.window == nil {
		return nil
	}
	p.window.Destroy()
	p.window = nil
	glfw.Terminate()
	return nil
}

func (p *Platform) push(ev core.EngineEvent) {
	if err := p.events.Enqueue(ev); err == nil {
		return
	}
	dropped, _ := p.events.Dequeue()
	core.LogWarn("event queue full, dropping event %d", dropped.Code)
	_ = p.events.Enqueue(ev)
}

func (p *Platform) registerCallbacks() {
	p.window.SetKeyCallback(p.keyCallback)
	p.window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.window.SetCursorPosCallback(p.cursorPosCallback)
	p.window.SetScrollCallback(p.scrollCallback)
	p.window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.window.SetFocusCallback(p.focusCallback)
	p.window.SetCloseCallback(p.closeCallback)
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := keyEventCode(action)
	if !ok {
		return
	}
	p.push(core.EngineEvent{Code: code, Key: TranslateKey(key), Raw: key})
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	code := core.EVENT_CODE_BUTTON_RELEASED
	if action == glfw.Press {
		code = core.EVENT_CODE_BUTTON_PRESSED
	}
	p.push(core.EngineEvent{Code: code, Button: b, Raw: button})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.push(core.EngineEvent{Code: core.EVENT_CODE_MOUSE_MOVED, X: xpos, Y: ypos})
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	p.push(core.EngineEvent{Code: core.EVENT_CODE_MOUSE_WHEEL, X: xoff, Y: yoff})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.push(core.EngineEvent{Code: core.EVENT_CODE_RESIZED, Width: uint32(max(width, 0)), Height: uint32(max(height, 0))})
}

func (p *Platform) focusCallback(w *glfw.Window, focused bool) {
	p.push(core.EngineEvent{Code: core.EVENT_CODE_FOCUS_CHANGED, Focused: focused})
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.push(core.NewEngineEvent(core.EVENT_CODE_APPLICATION_QUIT, nil))
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
