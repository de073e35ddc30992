package engine

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/prism/engine/config"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

func newHeadless(t *testing.T, g *Game) *Engine {
	t.Helper()
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = &ApplicationConfig{Name: "test"}
	}
	e, err := New(g, WithDisplayConfig(config.Default()), WithDevice(gfx.NewNull()))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunUntilQuit(t *testing.T) {
	var frames int
	var initialized bool
	g := &Game{}
	g.FnInitialize = func() error {
		initialized = g.World != nil && g.Device != nil && g.Input != nil && g.Events != nil
		return nil
	}
	g.FnUpdate = func(float64) error {
		frames++
		if frames == 3 {
			g.Events.Fire(core.NewEngineEvent(core.EVENT_CODE_APPLICATION_QUIT, nil))
		}
		return nil
	}

	e := newHeadless(t, g)
	if !initialized {
		t.Fatal("game initialized before the engine wired it")
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if frames != 3 || e.Metrics().Frames() != 3 {
		t.Errorf("ran %d updates and %d frames, want 3", frames, e.Metrics().Frames())
	}
	if err := e.Shutdown(); err != nil {
		t.Error(err)
	}
}

func TestRunStopsOnUpdateError(t *testing.T) {
	boom := errors.New("boom")
	e := newHeadless(t, &Game{FnUpdate: func(float64) error { return boom }})
	if err := e.Run(); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want %v", err, boom)
	}
}

func TestRunRequiresInitialize(t *testing.T) {
	e, err := New(&Game{ApplicationConfig: &ApplicationConfig{}}, WithDisplayConfig(config.Default()), WithDevice(gfx.NewNull()))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err == nil {
		t.Error("Run() before Initialize should fail")
	}
}

func TestEscapeQuits(t *testing.T) {
	e := newHeadless(t, &Game{})
	e.dispatcher.Fire(core.EngineEvent{Code: core.EVENT_CODE_KEY_PRESSED, Key: core.KEY_ESCAPE})
	if e.isRunning.Load() {
		t.Error("escape did not stop the engine")
	}
}

func TestResize(t *testing.T) {
	var resized [2]uint32
	g := &Game{FnOnResize: func(w, h uint32) error {
		resized = [2]uint32{w, h}
		return nil
	}}
	e := newHeadless(t, g)

	e.dispatcher.Fire(core.EngineEvent{Code: core.EVENT_CODE_RESIZED, Width: 800, Height: 400})
	if w, h := e.GetFramebufferSize(); w != 800 || h != 400 {
		t.Errorf("framebuffer size = %dx%d", w, h)
	}
	if resized != [2]uint32{800, 400} {
		t.Errorf("game saw resize %v", resized)
	}
	camera, _ := ecs.Resource[renderer.Camera](e.world)
	if camera.Aspect != 2 {
		t.Errorf("camera aspect = %f, want 2", camera.Aspect)
	}

	e.dispatcher.Fire(core.EngineEvent{Code: core.EVENT_CODE_RESIZED})
	if !e.isSuspended {
		t.Error("zero size did not suspend the engine")
	}
	e.dispatcher.Fire(core.EngineEvent{Code: core.EVENT_CODE_RESIZED, Width: 10, Height: 10})
	if e.isSuspended {
		t.Error("restoring the window did not resume the engine")
	}
}

func TestHandleRenderError(t *testing.T) {
	e := newHeadless(t, &Game{})
	present := &gfx.Error{Kind: gfx.ErrPresentationFailure, Backend: gfx.KindHardware, Op: "render_world"}

	for i := 1; i < maxPresentFailures; i++ {
		if err := e.handleRenderError(present); err != nil {
			t.Fatalf("failure %d ended the loop: %v", i, err)
		}
	}
	if err := e.handleRenderError(present); !errors.Is(err, gfx.ErrPresentation) {
		t.Errorf("failure %d = %v, want presentation failure", maxPresentFailures, err)
	}

	if err := e.handleRenderError(nil); err != nil || e.presentFailures != 0 {
		t.Errorf("a presented frame did not reset the failure count")
	}
	other := &gfx.Error{Kind: gfx.ErrUnimplementedBackend}
	if err := e.handleRenderError(other); !errors.Is(err, gfx.ErrUnimplemented) {
		t.Errorf("unimplemented backend should end the loop at once, got %v", err)
	}
}

func TestInitializeLoadsPipeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.toml")
	data := "[[layer]]\ntarget = \"main\"\n[[layer.pass]]\nkind = \"clear\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newHeadless(t, &Game{ApplicationConfig: &ApplicationConfig{PipelinePath: path}})
	if e.watcher == nil {
		t.Fatal("pipeline watcher not started")
	}
	if err := e.Shutdown(); err != nil {
		t.Error(err)
	}

	bad := &Game{ApplicationConfig: &ApplicationConfig{PipelinePath: filepath.Join(dir, "missing.toml")}}
	e, err := New(bad, WithDisplayConfig(config.Default()), WithDevice(gfx.NewNull()))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err == nil {
		t.Error("Initialize with a missing pipeline should fail")
	}
}

type minimizedWindow struct{}

func (minimizedWindow) Size() (uint32, uint32, bool) { return 0, 0, true }
func (minimizedWindow) PollEvents() []core.EngineEvent { return nil }
func (minimizedWindow) Present() error { return nil }
func (minimizedWindow) ShouldClose() bool { return false }
func (minimizedWindow) Close() error { return nil }

type stubContext struct{}

func (stubContext) MakeCurrent() {}
func (stubContext) Describe() string { return "stub" }

type stubFactory struct{}

func (stubFactory) CreateBuffer([]renderer.VertexPosNormal) (gfx.HardwareBuffer, error) {
	return gfx.HardwareBuffer{}, nil
}
func (stubFactory) CreateTexture(*image.RGBA) (gfx.HardwareTexture, error) {
	return gfx.HardwareTexture{}, nil
}
func (stubFactory) Close() error { return nil }

type stubRenderer struct{}

func (stubRenderer) Submit(*renderer.Pipeline, *gfx.HardwareScene, gfx.Context) {}

func TestInitializeMinimizedSuspends(t *testing.T) {
	device := gfx.NewHardware(minimizedWindow{}, stubContext{}, stubFactory{}, stubRenderer{})
	g := &Game{ApplicationConfig: &ApplicationConfig{Name: "test"}}
	e, err := New(g, WithDisplayConfig(config.Default()), WithDevice(device))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if !e.isSuspended {
		t.Error("a 0x0 window did not start the engine suspended")
	}

	e.dispatcher.Fire(core.EngineEvent{Code: core.EVENT_CODE_RESIZED, Width: 640, Height: 480})
	if e.isSuspended {
		t.Error("restoring the window did not resume the engine")
	}
}

func TestNewLogsConfigErrorVerbatim(t *testing.T) {
	var out bytes.Buffer
	core.SetLogOutput(&out)
	t.Cleanup(func() { core.SetLogOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "display-100%d.toml")
	_, err := New(&Game{ApplicationConfig: &ApplicationConfig{DisplayPath: path}})
	if err == nil {
		t.Fatal("New with a missing display file should fail")
	}
	if logged := out.String(); !strings.Contains(logged, "display-100%d.toml") || strings.Contains(logged, "%!") {
		t.Errorf("logged %q, want the path verbatim", logged)
	}
}
