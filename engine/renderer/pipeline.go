package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// MainTarget names the window's default framebuffer.
const MainTarget = "main"

type PassKind uint8

const (
	PassKindClear PassKind = iota
	PassKindDrawFlat
	PassKindDrawShaded
)

func (k PassKind) String() string {
	switch k {
	case PassKindClear:
		return "clear"
	case PassKindDrawFlat:
		return "draw_flat"
	case PassKindDrawShaded:
		return "draw_shaded"
	default:
		return "unknown"
	}
}

// Pass is one step of a Layer. The set of passes is closed.
type Pass interface {
	Kind() PassKind
	isPass()
}

// ClearPass clears the colour and depth attachments of the layer target.
type ClearPass struct {
	Color mgl32.Vec4
	Depth float32
}

// DrawFlatPass draws every fragment with its diffuse texture only.
type DrawFlatPass struct{}

// DrawShadedPass draws every fragment lit by the scene lights.
type DrawShadedPass struct {
	AmbientColor mgl32.Vec4
}

func (ClearPass) Kind() PassKind      { return PassKindClear }
func (DrawFlatPass) Kind() PassKind   { return PassKindDrawFlat }
func (DrawShadedPass) Kind() PassKind { return PassKindDrawShaded }

func (ClearPass) isPass()      {}
func (DrawFlatPass) isPass()   {}
func (DrawShadedPass) isPass() {}

/** @brief A render pass group executed against one named target. */
type Layer struct {
	/** @brief The name of the target this layer renders into. */
	Target string
	/** @brief The passes, executed in order. */
	Passes []Pass
}

func NewLayer(target string, passes ...Pass) Layer {
	return Layer{Target: target, Passes: passes}
}

// Target is an output a Layer can render into.
type Target interface {
	Size() (width, height uint32)
}

/** @brief An offscreen colour + depth target. */
type ColorBuffer struct {
	Width  uint32
	Height uint32
}

func (c *ColorBuffer) Size() (uint32, uint32) { return c.Width, c.Height }

/** @brief A deferred shading target: position, normal, ka, kd and depth. */
type GeometryBuffer struct {
	Width  uint32
	Height uint32
}

func (g *GeometryBuffer) Size() (uint32, uint32) { return g.Width, g.Height }

// Pipeline is the ordered layer sequence plus the named targets a backend
// executes every frame.
type Pipeline struct {
	Layers  []Layer
	Targets map[string]Target
}

func NewPipeline(layers ...Layer) *Pipeline {
	p := &Pipeline{Targets: make(map[string]Target)}
	p.SetLayers(layers)
	return p
}

// Clone copies the layer sequence, every pass list and the target map.
// Targets themselves are shared.
func (p *Pipeline) Clone() *Pipeline {
	if p == nil {
		return nil
	}
	c := &Pipeline{
		Layers:  make([]Layer, len(p.Layers)),
		Targets: make(map[string]Target, len(p.Targets)),
	}
	for i, l := range p.Layers {
		c.Layers[i] = Layer{Target: l.Target, Passes: append([]Pass(nil), l.Passes...)}
	}
	for name, t := range p.Targets {
		c.Targets[name] = t
	}
	return c
}

// SetLayers replaces the layer sequence.
func (p *Pipeline) SetLayers(layers []Layer) {
	p.Layers = append([]Layer(nil), layers...)
}

// AddTarget inserts target under name, overwriting an existing entry.
// It reports whether an entry was replaced.
func (p *Pipeline) AddTarget(name string, target Target) bool {
	if p.Targets == nil {
		p.Targets = make(map[string]Target)
	}
	_, replaced := p.Targets[name]
	p.Targets[name] = target
	return replaced
}

// DeleteTarget removes name and reports whether it existed.
func (p *Pipeline) DeleteTarget(name string) bool {
	if _, ok := p.Targets[name]; !ok {
		return false
	}
	delete(p.Targets, name)
	return true
}

func (p *Pipeline) Target(name string) (Target, bool) {
	t, ok := p.Targets[name]
	return t, ok
}

func (p *Pipeline) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for n := range p.Targets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Forward returns the default single layer pipeline: clear the window
// then draw the scene lit.
func Forward(clearColor mgl32.Vec4) []Layer {
	return []Layer{
		NewLayer(MainTarget,
			ClearPass{Color: clearColor, Depth: 1},
			DrawShadedPass{AmbientColor: mgl32.Vec4{0.1, 0.1, 0.1, 1}},
		),
	}
}
