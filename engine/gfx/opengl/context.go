package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/gfx"
)

var _ gfx.Context = (*Context)(nil)

// Context is the OpenGL context of a glfw window.
type Context struct {
	window   *glfw.Window
	version  string
	renderer string
}

// NewContext makes the window's context current and loads the GL
// function pointers.
func NewContext(window *glfw.Window) (*Context, error) {
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	c := &Context{
		window:   window,
		version:  gl.GoStr(gl.GetString(gl.VERSION)),
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.CULL_FACE)
	core.LogDebug("OpenGL context: %s", c.Describe())
	return c, nil
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Describe() string {
	return fmt.Sprintf("OpenGL %s on %s", c.version, c.renderer)
}

// FramebufferSize is the size of the default framebuffer.
func (c *Context) FramebufferSize() (int32, int32) {
	w, h := c.window.GetFramebufferSize()
	return int32(w), int32(h)
}
