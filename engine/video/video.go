// Package video opens the graphics device selected by the display
// configuration.
package video

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/prism/engine/config"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/gfx/opengl"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// Init creates the device of the given kind. The hardware backend opens
// a window described by cfg; the native backend is only selectable where
// the platform provides it, and fails at construction there.
func Init(cfg config.DisplayConfig, kind gfx.Kind) (*gfx.GraphicsDevice, error) {
	core.LogInfo("initializing video on the %s backend", kind)
	switch kind {
	case gfx.KindHardware:
		return initHardware(cfg)
	case gfx.KindNative:
		if !nativeAvailable {
			return nil, &gfx.Error{
				Kind:    gfx.ErrBackendNotAvailable,
				Backend: kind,
				Op:      "init",
				Err:     errors.New("only available on windows"),
			}
		}
		return gfx.NewNative()
	case gfx.KindNull:
		return gfx.NewNull(), nil
	default:
		return nil, &gfx.Error{Kind: gfx.ErrInvalidConfig, Op: "init", Err: fmt.Errorf("unknown backend kind %d", kind)}
	}
}

func initHardware(cfg config.DisplayConfig) (*gfx.GraphicsDevice, error) {
	window, err := platform.Startup(cfg)
	if err != nil {
		return nil, err
	}
	ctx, err := opengl.NewContext(window.GLFWWindow())
	if err != nil {
		return nil, errors.Join(err, window.Close())
	}
	return gfx.NewHardware(window, ctx, opengl.NewFactory(), opengl.NewRenderer()), nil
}

// ApplyPipeline installs the layers and targets of p on d. Targets d
// already has keep running unless p redefines them.
func ApplyPipeline(d *gfx.GraphicsDevice, p *renderer.Pipeline) error {
	if err := d.SetPipeline(p.Layers); err != nil {
		return err
	}
	for _, name := range p.TargetNames() {
		if err := d.AddTarget(p.Targets[name], name); err != nil {
			return err
		}
	}
	return nil
}
