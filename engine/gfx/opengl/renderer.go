package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

var _ gfx.HardwareRenderer = (*Renderer)(nil)

type program struct {
	id       uint32
	uniforms map[string]int32
}

func (p *program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// framebuffer backs a named pipeline target.
type framebuffer struct {
	fbo         uint32
	depth       uint32
	attachments []uint32
	width       uint32
	height      uint32
	geometry    bool
}

// Renderer executes pipeline layers against the window framebuffer and
// the offscreen targets of the pipeline.
type Renderer struct {
	initialized bool
	broken      bool

	flat     *program
	shaded   *program
	geometry *program

	targets map[string]*framebuffer
	// Targets whose framebuffer could not be built, with the size that
	// failed. They are retried once the target changes.
	failed map[string]targetSpec
	build  func(width, height uint32, geometry bool) (*framebuffer, error)
}

type targetSpec struct {
	width    uint32
	height   uint32
	geometry bool
}

func specOf(t renderer.Target) targetSpec {
	w, h := t.Size()
	_, geometry := t.(*renderer.GeometryBuffer)
	return targetSpec{width: w, height: h, geometry: geometry}
}

func NewRenderer() *Renderer {
	return &Renderer{
		targets: make(map[string]*framebuffer),
		failed:  make(map[string]targetSpec),
		build:   newFramebuffer,
	}
}

type framebufferSizer interface {
	FramebufferSize() (int32, int32)
}

// Submit draws scene through every layer of p. Failures are logged; a
// renderer whose shaders do not build draws nothing.
func (r *Renderer) Submit(p *renderer.Pipeline, scene *gfx.HardwareScene, ctx gfx.Context) {
	if r.broken {
		return
	}
	ctx.MakeCurrent()
	if !r.initialized {
		if err := r.init(); err != nil {
			core.LogError("renderer disabled: %s", err)
			r.broken = true
			return
		}
	}

	var winW, winH int32
	if s, ok := ctx.(framebufferSizer); ok {
		winW, winH = s.FramebufferSize()
	}

	r.syncTargets(p)
	for _, layer := range p.Layers {
		width, height, geometry, ok := r.bindTarget(layer.Target, winW, winH)
		if !ok {
			core.LogDebug("layer target '%s' is not registered, skipping layer", layer.Target)
			continue
		}
		camera := scene.Camera
		camera.SetAspect(uint32(width), uint32(height))
		for _, pass := range layer.Passes {
			r.execute(pass, scene, camera, geometry)
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Renderer) execute(pass renderer.Pass, scene *gfx.HardwareScene, camera renderer.Camera, geometry bool) {
	switch pass := pass.(type) {
	case renderer.ClearPass:
		gl.ClearColor(pass.Color.X(), pass.Color.Y(), pass.Color.Z(), pass.Color.W())
		gl.ClearDepth(float64(pass.Depth))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	case renderer.DrawFlatPass:
		prog := r.flat
		if geometry {
			prog = r.geometry
		}
		r.draw(prog, scene, camera)
	case renderer.DrawShadedPass:
		if geometry {
			r.draw(r.geometry, scene, camera)
			return
		}
		gl.UseProgram(r.shaded.id)
		r.uploadLights(pass, scene.Lights)
		r.draw(r.shaded, scene, camera)
	}
}

func (r *Renderer) draw(prog *program, scene *gfx.HardwareScene, camera renderer.Camera) {
	gl.UseProgram(prog.id)
	view, proj := camera.View(), camera.Projection()
	gl.UniformMatrix4fv(prog.uniform("u_view"), 1, false, &view[0])
	gl.UniformMatrix4fv(prog.uniform("u_proj"), 1, false, &proj[0])
	gl.Uniform1i(prog.uniform("u_ka"), 0)
	gl.Uniform1i(prog.uniform("u_kd"), 1)

	model := prog.uniform("u_model")
	for i := range scene.Fragments {
		frag := &scene.Fragments[i]
		count := frag.Slice.Count()
		if count == 0 {
			continue
		}
		gl.UniformMatrix4fv(model, 1, false, &frag.Transform[0])
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, frag.Ka.Name)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, frag.Kd.Name)
		gl.BindVertexArray(frag.Buffer.VAO)
		gl.DrawArrays(primitiveMode(frag.Slice.Primitive), int32(frag.Slice.BaseVertex+frag.Slice.Start), int32(count))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) uploadLights(pass renderer.DrawShadedPass, lights []renderer.Light) {
	if len(lights) > MaxLights {
		core.LogDebug("%d lights in the scene, only the first %d are used", len(lights), MaxLights)
		lights = lights[:MaxLights]
	}
	var (
		centers      [MaxLights][3]float32
		colors       [MaxLights][4]float32
		radii        [MaxLights]float32
		propagations [MaxLights][3]float32
	)
	for i, l := range lights {
		centers[i] = l.Center
		colors[i] = l.Color
		radii[i] = l.Radius
		propagations[i] = [3]float32{l.PropagationConstant, l.PropagationLinear, l.PropagationRSquare}
	}
	p := r.shaded
	gl.Uniform4f(p.uniform("u_ambient"), pass.AmbientColor.X(), pass.AmbientColor.Y(), pass.AmbientColor.Z(), pass.AmbientColor.W())
	gl.Uniform1i(p.uniform("u_light_count"), int32(len(lights)))
	gl.Uniform3fv(p.uniform("u_light_center[0]"), MaxLights, &centers[0][0])
	gl.Uniform4fv(p.uniform("u_light_color[0]"), MaxLights, &colors[0][0])
	gl.Uniform1fv(p.uniform("u_light_radius[0]"), MaxLights, &radii[0])
	gl.Uniform3fv(p.uniform("u_light_propagation[0]"), MaxLights, &propagations[0][0])
}

// bindTarget binds the framebuffer of name and sets the viewport.
func (r *Renderer) bindTarget(name string, winW, winH int32) (int32, int32, bool, bool) {
	if name == renderer.MainTarget {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, winW, winH)
		return winW, winH, false, true
	}
	fb, ok := r.targets[name]
	if !ok {
		return 0, 0, false, false
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, int32(fb.width), int32(fb.height))
	return int32(fb.width), int32(fb.height), fb.geometry, true
}

// syncTargets creates framebuffers for new or resized targets and
// releases those of deleted ones.
func (r *Renderer) syncTargets(p *renderer.Pipeline) {
	for name, fb := range r.targets {
		if _, ok := p.Targets[name]; !ok {
			fb.release()
			delete(r.targets, name)
		}
	}
	for name, spec := range r.failed {
		if target, ok := p.Targets[name]; !ok || specOf(target) != spec {
			delete(r.failed, name)
		}
	}
	for name, target := range p.Targets {
		spec := specOf(target)
		if fb, ok := r.targets[name]; ok {
			if fb.width == spec.width && fb.height == spec.height && fb.geometry == spec.geometry {
				continue
			}
			fb.release()
			delete(r.targets, name)
		}
		if _, ok := r.failed[name]; ok {
			continue
		}
		fb, err := r.build(spec.width, spec.height, spec.geometry)
		if err != nil {
			core.LogError("failed to create target '%s': %s", name, err)
			r.failed[name] = spec
			continue
		}
		r.targets[name] = fb
	}
}

func newFramebuffer(width, height uint32, geometry bool) (*framebuffer, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("target size %dx%d has no area", width, height)
	}
	fb := &framebuffer{width: width, height: height, geometry: geometry}
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	formats := []int32{gl.RGBA8}
	if geometry {
		// position, normal, ka, kd
		formats = []int32{gl.RGBA32F, gl.RGBA16F, gl.RGBA8, gl.RGBA8}
	}
	buffers := make([]uint32, len(formats))
	for i, format := range formats {
		var tex uint32
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, tex, 0)
		fb.attachments = append(fb.attachments, tex)
		buffers[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
	}
	gl.DrawBuffers(int32(len(buffers)), &buffers[0])

	gl.GenRenderbuffers(1, &fb.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.release()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, nil
}

func (fb *framebuffer) release() {
	if len(fb.attachments) > 0 {
		gl.DeleteTextures(int32(len(fb.attachments)), &fb.attachments[0])
	}
	gl.DeleteRenderbuffers(1, &fb.depth)
	gl.DeleteFramebuffers(1, &fb.fbo)
}

func (r *Renderer) init() error {
	var err error
	if r.flat, err = newProgram(vertexShader, flatFragmentShader); err != nil {
		return fmt.Errorf("flat program: %w", err)
	}
	if r.shaded, err = newProgram(vertexShader, shadedFragmentShader); err != nil {
		return fmt.Errorf("shaded program: %w", err)
	}
	if r.geometry, err = newProgram(vertexShader, geometryFragmentShader); err != nil {
		return fmt.Errorf("geometry program: %w", err)
	}
	r.initialized = true
	return nil
}

// Close releases programs and target framebuffers.
func (r *Renderer) Close() {
	for name, fb := range r.targets {
		fb.release()
		delete(r.targets, name)
	}
	for _, p := range []*program{r.flat, r.shaded, r.geometry} {
		if p != nil {
			gl.DeleteProgram(p.id)
		}
	}
	r.initialized = false
}

func primitiveMode(p renderer.Primitive) uint32 {
	switch p {
	case renderer.PrimitiveLineList:
		return gl.LINES
	case renderer.PrimitivePointList:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func newProgram(vertexSource, fragmentSource string) (*program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link error: %s", log)
	}
	return &program{id: id, uniforms: make(map[string]int32)}, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}
