package opengl

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

var _ gfx.Factory = (*Factory)(nil)

// Factory uploads vertex buffers and textures and keeps track of them
// until Close.
type Factory struct {
	buffers  []gfx.HardwareBuffer
	textures []uint32
	closed   bool
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateBuffer(vertices []renderer.VertexPosNormal) (gfx.HardwareBuffer, error) {
	if f.closed {
		return gfx.HardwareBuffer{}, errors.New("factory is closed")
	}
	var buf gfx.HardwareBuffer
	gl.GenVertexArrays(1, &buf.VAO)
	gl.BindVertexArray(buf.VAO)

	gl.GenBuffers(1, &buf.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*renderer.VertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)

	// position, normal, texcoord
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, renderer.VertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, renderer.VertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, renderer.VertexStride, 6*4)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("create buffer"); err != nil {
		gl.DeleteBuffers(1, &buf.VBO)
		gl.DeleteVertexArrays(1, &buf.VAO)
		return gfx.HardwareBuffer{}, err
	}
	buf.VertexCount = int32(len(vertices))
	f.buffers = append(f.buffers, buf)
	return buf, nil
}

func (f *Factory) CreateTexture(img *image.RGBA) (gfx.HardwareTexture, error) {
	if f.closed {
		return gfx.HardwareTexture{}, errors.New("factory is closed")
	}
	b := img.Bounds()
	tex := gfx.HardwareTexture{Width: int32(b.Dx()), Height: int32(b.Dy())}

	gl.GenTextures(1, &tex.Name)
	gl.BindTexture(gl.TEXTURE_2D, tex.Name)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, tex.Width, tex.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("create texture"); err != nil {
		gl.DeleteTextures(1, &tex.Name)
		return gfx.HardwareTexture{}, err
	}
	f.textures = append(f.textures, tex.Name)
	return tex, nil
}

func (f *Factory) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	for i := range f.buffers {
		gl.DeleteBuffers(1, &f.buffers[i].VBO)
		gl.DeleteVertexArrays(1, &f.buffers[i].VAO)
	}
	if len(f.textures) > 0 {
		gl.DeleteTextures(int32(len(f.textures)), &f.textures[0])
	}
	f.buffers, f.textures = nil, nil
	return glError("release resources")
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: OpenGL error 0x%x", op, code)
	}
	return nil
}
