package engine

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/gfx"
)

// Game is the application driven by the Engine. The engine fills World,
// Device, Input and Events before calling FnInitialize.
type Game struct {
	ApplicationConfig *ApplicationConfig
	World             *ecs.World
	Device            *gfx.GraphicsDevice
	Input             *core.InputState
	Events            *core.Dispatcher
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
