package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/prism/engine/components"
	"github.com/spaghettifunk/prism/engine/config"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/video"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Consecutive presentation failures tolerated before Run gives up.
const maxPresentFailures = 3

// Frames between two metrics log lines.
const metricsLogInterval = 300

type Option func(*Engine)

// WithDevice runs the engine on d instead of the device the display
// config selects.
func WithDevice(d *gfx.GraphicsDevice) Option {
	return func(e *Engine) {
		e.device = d
	}
}

// WithDisplayConfig skips config resolution and uses cfg as is.
func WithDisplayConfig(cfg config.DisplayConfig) Option {
	return func(e *Engine) {
		e.display = cfg
		e.resolved = true
	}
}

type Engine struct {
	currentStage    Stage
	gameInstance    *Game
	isRunning       atomic.Bool
	isSuspended     bool
	presentFailures int

	display  config.DisplayConfig
	kind     gfx.Kind
	resolved bool

	device     *gfx.GraphicsDevice
	world      *ecs.World
	dispatcher *core.Dispatcher
	input      *core.InputState
	watcher    *config.Watcher
	clock      *core.Clock
	metrics    *core.Metrics

	width    uint32
	height   uint32
	lastTime time.Duration
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game and application config are required")
	}
	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		world:        ecs.NewWorld(ecs.WithCapacity(1024)),
		dispatcher:   core.NewDispatcher(),
		input:        core.NewInputState(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if !e.resolved {
		cfg, kind, err := config.Resolve(g.ApplicationConfig.DisplayPath, g.ApplicationConfig.EnvFiles...)
		if err != nil {
			core.LogError("%s", err)
			return nil, err
		}
		if cfg.Title == config.Default().Title && g.ApplicationConfig.Name != "" {
			cfg.Title = g.ApplicationConfig.Name
		}
		e.display, e.kind = cfg, kind
	} else {
		kind, err := e.display.Validate()
		if err != nil {
			return nil, err
		}
		e.kind = kind
	}
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	ecs.Register[gfx.Renderable](e.world, ecs.NewVecStorage[gfx.Renderable]())
	ecs.Register[components.Transform](e.world, ecs.NewVecStorage[components.Transform]())
	ecs.Register[renderer.Light](e.world, ecs.NewMapStorage[renderer.Light]())

	e.dispatcher.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.dispatcher.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.dispatcher.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.device == nil {
		d, err := video.Init(e.display, e.kind)
		if err != nil {
			return err
		}
		e.device = d
	}

	if path := e.gameInstance.ApplicationConfig.PipelinePath; path != "" {
		p, err := config.LoadPipeline(path)
		if err != nil {
			return err
		}
		if err := video.ApplyPipeline(e.device, p); err != nil {
			return err
		}
		if e.watcher, err = config.NewWatcher(path); err != nil {
			core.LogWarn("pipeline hot reload disabled: %s", err)
		}
	}

	camera := renderer.NewCamera()
	if w, h, ok := e.device.Dimensions(); ok {
		e.width, e.height = w, h
		camera.SetAspect(w, h)
		// Started minimized; the first resize event resumes the loop.
		e.isSuspended = w == 0 || h == 0
	} else if d := e.display.Dimensions; d != nil {
		e.width, e.height = d.Width, d.Height
	}
	ecs.SetResource(e.world, camera)

	g := e.gameInstance
	g.World, g.Device, g.Input, g.Events = e.world, e.device, e.input, e.dispatcher
	if g.FnInitialize != nil {
		if err := g.FnInitialize(); err != nil {
			return err
		}
	}
	if g.FnOnResize != nil {
		if err := g.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning.Store(true)
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		events, err := e.device.PollEvents()
		if err != nil {
			return err
		}
		e.input.Process(events)
		e.dispatcher.FireAll(events)
		e.applyPendingPipeline()

		if e.isSuspended {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := (currentTime - e.lastTime).Seconds()
		frameStart := time.Now()

		if fn := e.gameInstance.FnUpdate; fn != nil {
			if err := fn(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				return err
			}
		}

		stats, err := e.device.RenderWorld(e.world)
		if err := e.handleRenderError(err); err != nil {
			return err
		}

		frameElapsed := time.Since(frameStart)
		e.metrics.Update(frameElapsed, len(stats.Skipped))
		if e.metrics.Frames()%metricsLogInterval == 0 {
			last, total := e.metrics.Skipped()
			core.LogDebug("fps: %.1f (%.2fms), skipped entities: %d last frame, %d total", e.metrics.FPS(), e.metrics.FrameTime(), last, total)
		}

		if target := e.gameInstance.ApplicationConfig.TargetFrameTime; target > 0 && frameElapsed < target {
			// Give the remaining time back to the OS.
			time.Sleep(target - frameElapsed)
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		e.input.Update()
		e.lastTime = currentTime
	}
	return nil
}

// handleRenderError decides whether a render failure ends the loop.
// Presentation failures are retried on the next frame a few times.
func (e *Engine) handleRenderError(err error) error {
	if err == nil {
		e.presentFailures = 0
		return nil
	}
	if errors.Is(err, gfx.ErrPresentation) {
		e.presentFailures++
		core.LogWarn("frame not presented (%d in a row): %s", e.presentFailures, err)
		if e.presentFailures < maxPresentFailures {
			return nil
		}
	}
	return err
}

func (e *Engine) applyPendingPipeline() {
	if e.watcher == nil {
		return
	}
	select {
	case p := <-e.watcher.Pending():
		if err := video.ApplyPipeline(e.device, p); err != nil {
			core.LogError("failed to apply reloaded pipeline: %s", err)
		}
	default:
	}
}

// Quit stops the loop after the current frame. Safe to call from any
// goroutine.
func (e *Engine) Quit() {
	e.isRunning.Store(false)
}

// Shutdown releases the game, the watcher and the device. Call it after
// Run returned.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if fn := e.gameInstance.FnShutdown; fn != nil {
		errs = append(errs, fn())
	}
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	if e.device != nil {
		errs = append(errs, e.device.Close())
	}
	return errors.Join(errs...)
}

// Metrics exposes the frame metrics.
func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(event core.EngineEvent, _ interface{}) bool {
	if event.Code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Quit()
		return true
	}
	return false
}

func (e *Engine) onKey(event core.EngineEvent, _ interface{}) bool {
	if event.Key == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.dispatcher.Fire(core.NewEngineEvent(core.EVENT_CODE_APPLICATION_QUIT, nil))
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(event core.EngineEvent, _ interface{}) bool {
	width, height := event.Width, event.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	if camera, ok := ecs.Resource[renderer.Camera](e.world); ok {
		camera.SetAspect(width, height)
		ecs.SetResource(e.world, camera)
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(width, height); err != nil {
			core.LogError("%s", err)
		}
	}
	return false
}
