package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// PipelineFile is the TOML description of a render pipeline:
//
//	[[target]]
//	name = "shadow"
//	kind = "color"
//	width = 1024
//	height = 1024
//
//	[[layer]]
//	target = "main"
//	[[layer.pass]]
//	kind = "clear"
//	color = [0.1, 0.2, 0.3, 1.0]
type PipelineFile struct {
	Targets []TargetEntry `toml:"target"`
	Layers  []LayerEntry  `toml:"layer"`
}

type TargetEntry struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type LayerEntry struct {
	Target string      `toml:"target"`
	Passes []PassEntry `toml:"pass"`
}

type PassEntry struct {
	Kind    string    `toml:"kind"`
	Color   []float32 `toml:"color"`
	Depth   *float32  `toml:"depth"`
	Ambient []float32 `toml:"ambient"`
}

// LoadPipeline reads and builds a pipeline file.
func LoadPipeline(path string) (*renderer.Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline '%s': %w", path, err)
	}
	p, err := ParsePipeline(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pipeline '%s': %w", path, err)
	}
	return p, nil
}

func ParsePipeline(data []byte) (*renderer.Pipeline, error) {
	var file PipelineFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	return file.Build()
}

// Build turns the description into a pipeline.
func (f PipelineFile) Build() (*renderer.Pipeline, error) {
	p := renderer.NewPipeline()
	for _, t := range f.Targets {
		target, err := t.build()
		if err != nil {
			return nil, err
		}
		if p.AddTarget(t.Name, target) {
			return nil, fmt.Errorf("%w: target '%s' declared twice", gfx.ErrConfig, t.Name)
		}
	}

	layers := make([]renderer.Layer, 0, len(f.Layers))
	for i, l := range f.Layers {
		if l.Target == "" {
			return nil, fmt.Errorf("%w: layer %d has no target", gfx.ErrConfig, i)
		}
		passes := make([]renderer.Pass, 0, len(l.Passes))
		for j, pe := range l.Passes {
			pass, err := pe.build()
			if err != nil {
				return nil, fmt.Errorf("layer %d pass %d: %w", i, j, err)
			}
			passes = append(passes, pass)
		}
		layers = append(layers, renderer.NewLayer(l.Target, passes...))
	}
	p.SetLayers(layers)
	return p, nil
}

func (t TargetEntry) build() (renderer.Target, error) {
	if t.Name == "" || t.Name == renderer.MainTarget {
		return nil, fmt.Errorf("%w: invalid target name %q", gfx.ErrConfig, t.Name)
	}
	if t.Width == 0 || t.Height == 0 {
		return nil, fmt.Errorf("%w: target '%s' has a zero size", gfx.ErrConfig, t.Name)
	}
	switch t.Kind {
	case "color", "":
		return &renderer.ColorBuffer{Width: t.Width, Height: t.Height}, nil
	case "geometry":
		return &renderer.GeometryBuffer{Width: t.Width, Height: t.Height}, nil
	default:
		return nil, fmt.Errorf("%w: target '%s' has unknown kind %q", gfx.ErrConfig, t.Name, t.Kind)
	}
}

func (pe PassEntry) build() (renderer.Pass, error) {
	switch pe.Kind {
	case renderer.PassKindClear.String():
		color, err := vec4(pe.Color, mgl32.Vec4{0, 0, 0, 1})
		if err != nil {
			return nil, err
		}
		depth := float32(1)
		if pe.Depth != nil {
			depth = *pe.Depth
		}
		return renderer.ClearPass{Color: color, Depth: depth}, nil
	case renderer.PassKindDrawFlat.String():
		return renderer.DrawFlatPass{}, nil
	case renderer.PassKindDrawShaded.String():
		ambient, err := vec4(pe.Ambient, mgl32.Vec4{0.1, 0.1, 0.1, 1})
		if err != nil {
			return nil, err
		}
		return renderer.DrawShadedPass{AmbientColor: ambient}, nil
	default:
		return nil, fmt.Errorf("%w: unknown pass kind %q", gfx.ErrConfig, pe.Kind)
	}
}

func vec4(v []float32, fallback mgl32.Vec4) (mgl32.Vec4, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 3:
		return mgl32.Vec4{v[0], v[1], v[2], 1}, nil
	case 4:
		return mgl32.Vec4{v[0], v[1], v[2], v[3]}, nil
	default:
		return fallback, fmt.Errorf("%w: colors need 3 or 4 components, got %d", gfx.ErrConfig, len(v))
	}
}
