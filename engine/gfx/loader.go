package gfx

import (
	"fmt"
	"image"
	"os"

	"github.com/spaghettifunk/prism/engine/core"

	// Decoders registered with image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeImageFile reads and decodes a png, jpeg, bmp or tiff file.
func DecodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image '%s': %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image '%s' is empty", path)
	}
	core.LogDebug("decoded %s image '%s' (%dx%d)", format, path, b.Dx(), b.Dy())
	return img, nil
}

// LoadTextureFile decodes path and uploads it through d, naming the
// texture after the file.
func (d *GraphicsDevice) LoadTextureFile(path string) (Texture, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return Texture{}, err
	}
	return d.LoadTexture(path, img)
}
