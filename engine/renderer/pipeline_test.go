package renderer

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPipelineSetLayersCopies(t *testing.T) {
	p := NewPipeline()
	layers := []Layer{NewLayer(MainTarget, ClearPass{Depth: 1})}
	p.SetLayers(layers)
	layers[0] = NewLayer("other")

	if len(p.Layers) != 1 || p.Layers[0].Target != MainTarget {
		t.Errorf("Layers = %+v", p.Layers)
	}
}

func TestPipelineTargets(t *testing.T) {
	var p Pipeline
	if replaced := p.AddTarget("shadow", &ColorBuffer{Width: 1, Height: 1}); replaced {
		t.Error("first AddTarget reported a replacement")
	}
	if replaced := p.AddTarget("shadow", &ColorBuffer{Width: 2, Height: 2}); !replaced {
		t.Error("second AddTarget did not report a replacement")
	}
	p.AddTarget("gbuffer", &GeometryBuffer{Width: 3, Height: 3})

	if got := p.TargetNames(); !slices.Equal(got, []string{"gbuffer", "shadow"}) {
		t.Errorf("TargetNames() = %v", got)
	}
	target, _ := p.Target("shadow")
	if w, h := target.Size(); w != 2 || h != 2 {
		t.Errorf("shadow size = %dx%d", w, h)
	}
	if !p.DeleteTarget("shadow") {
		t.Error("DeleteTarget(shadow) = false")
	}
	if p.DeleteTarget("shadow") {
		t.Error("DeleteTarget of an absent name = true")
	}
}

func TestForward(t *testing.T) {
	clear := mgl32.Vec4{0.2, 0.2, 0.2, 1}
	layers := Forward(clear)
	if len(layers) != 1 || layers[0].Target != MainTarget {
		t.Fatalf("Forward() = %+v", layers)
	}
	passes := layers[0].Passes
	if len(passes) != 2 || passes[0].Kind() != PassKindClear || passes[1].Kind() != PassKindDrawShaded {
		t.Fatalf("passes = %+v", passes)
	}
	if c := passes[0].(ClearPass); c.Color != clear {
		t.Errorf("clear color = %v", c.Color)
	}
}

func TestSliceCount(t *testing.T) {
	if n := (Slice{Start: 3, End: 9}).Count(); n != 6 {
		t.Errorf("Count() = %d", n)
	}
	if n := (Slice{Start: 9, End: 3}).Count(); n != 0 {
		t.Errorf("inverted Count() = %d", n)
	}
}

func TestPipelineClone(t *testing.T) {
	p := NewPipeline(NewLayer(MainTarget, ClearPass{Depth: 1}, DrawShadedPass{}))
	shadow := &ColorBuffer{Width: 32, Height: 32}
	p.AddTarget("shadow", shadow)

	c := p.Clone()
	c.Layers[0].Passes[0] = DrawFlatPass{}
	c.Layers[0].Target = "other"
	c.AddTarget("extra", &ColorBuffer{})

	if p.Layers[0].Target != MainTarget {
		t.Errorf("clone shares layers: %+v", p.Layers)
	}
	if _, ok := p.Layers[0].Passes[0].(ClearPass); !ok {
		t.Errorf("clone shares passes: %T", p.Layers[0].Passes[0])
	}
	if got := p.TargetNames(); !slices.Equal(got, []string{"shadow"}) {
		t.Errorf("clone shares targets: %v", got)
	}
	if target, _ := c.Target("shadow"); target != shadow {
		t.Error("clone dropped the shadow target")
	}

	var nilPipeline *Pipeline
	if nilPipeline.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
