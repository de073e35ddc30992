package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"

	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// unsetEnv clears the PRISM_* variables for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBackend, EnvTitle, EnvVSync, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	envy.Reload()
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Title != "Prism" || !cfg.VSync || cfg.Multisampling != 1 || !cfg.Visibility || cfg.Fullscreen {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.Dimensions != nil || cfg.MinDimensions != nil || cfg.MaxDimensions != nil {
		t.Error("default dimensions should be unset")
	}
	kind, err := cfg.Validate()
	if err != nil || kind != gfx.KindNull {
		t.Errorf("Validate() = %s, %v", kind, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "display.toml", `
title = "Demo"
backend = "OpenGL"
multisampling = 4
dimensions = { width = 1280, height = 720 }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Demo" || cfg.Backend != "OpenGL" || cfg.Multisampling != 4 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Dimensions == nil || *cfg.Dimensions != (Size{Width: 1280, Height: 720}) {
		t.Errorf("Dimensions = %v", cfg.Dimensions)
	}
	// Unset keys keep their defaults.
	if !cfg.VSync || !cfg.Visibility {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if kind, err := cfg.Validate(); err != nil || kind != gfx.KindHardware {
		t.Errorf("Validate() = %s, %v", kind, err)
	}

	bad := writeFile(t, dir, "bad.toml", "titel = \"typo\"\n")
	if _, err := Load(bad); !errors.Is(err, gfx.ErrConfig) {
		t.Errorf("Load(unknown key) error = %v, want invalid config", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *DisplayConfig)
	}{
		{"unknown backend", func(c *DisplayConfig) { c.Backend = "Metal" }},
		{"zero multisampling", func(c *DisplayConfig) { c.Multisampling = 0 }},
		{"odd multisampling", func(c *DisplayConfig) { c.Multisampling = 3 }},
		{"zero dimensions", func(c *DisplayConfig) { c.Dimensions = &Size{Width: 0, Height: 10} }},
		{"min above max", func(c *DisplayConfig) {
			c.MinDimensions = &Size{Width: 800, Height: 600}
			c.MaxDimensions = &Size{Width: 640, Height: 480}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if _, err := cfg.Validate(); !errors.Is(err, gfx.ErrConfig) {
				t.Errorf("Validate() error = %v, want invalid config", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	unsetEnv(t)
	t.Setenv(EnvBackend, "gl")
	t.Setenv(EnvVSync, "false")
	envy.Reload()

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "gl" || cfg.VSync || cfg.Title != "Prism" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}

	t.Setenv(EnvVSync, "maybe")
	envy.Reload()
	if err := cfg.ApplyEnv(); !errors.Is(err, gfx.ErrConfig) {
		t.Errorf("ApplyEnv(bad vsync) error = %v", err)
	}
}

func TestResolve(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	display := writeFile(t, dir, "display.toml", "title = \"From file\"\nbackend = \"null\"\n")
	env := writeFile(t, dir, ".env", "PRISM_TITLE=\"From dotenv\"\nPRISM_LOG_LEVEL=warn\n")

	cfg, kind, err := Resolve(display, env, filepath.Join(dir, "absent.env"))
	if err != nil {
		t.Fatal(err)
	}
	if kind != gfx.KindNull {
		t.Errorf("kind = %s", kind)
	}
	// The environment wins over the file.
	if cfg.Title != "From dotenv" || cfg.LogLevel != "warn" {
		t.Errorf("Resolve() = %+v", cfg)
	}

	t.Setenv(EnvBackend, "vulkan")
	envy.Reload()
	if _, _, err := Resolve(""); !errors.Is(err, gfx.ErrConfig) {
		t.Errorf("Resolve(bad backend) error = %v", err)
	}
}

const forwardPipeline = `
[[target]]
name = "shadow"
kind = "color"
width = 1024
height = 512

[[target]]
name = "gbuffer"
kind = "geometry"
width = 640
height = 480

[[layer]]
target = "shadow"
[[layer.pass]]
kind = "clear"
depth = 0.5
[[layer.pass]]
kind = "draw_flat"

[[layer]]
target = "main"
[[layer.pass]]
kind = "clear"
color = [0.1, 0.2, 0.3]
[[layer.pass]]
kind = "draw_shaded"
ambient = [0.2, 0.2, 0.2, 1.0]
`

func TestParsePipeline(t *testing.T) {
	p, err := ParsePipeline([]byte(forwardPipeline))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Layers) != 2 || p.Layers[0].Target != "shadow" || p.Layers[1].Target != renderer.MainTarget {
		t.Fatalf("layers = %+v", p.Layers)
	}

	shadowClear, ok := p.Layers[0].Passes[0].(renderer.ClearPass)
	if !ok || shadowClear.Depth != 0.5 || shadowClear.Color != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("shadow clear = %+v", p.Layers[0].Passes[0])
	}
	if p.Layers[0].Passes[1].Kind() != renderer.PassKindDrawFlat {
		t.Errorf("shadow draw = %+v", p.Layers[0].Passes[1])
	}
	mainClear := p.Layers[1].Passes[0].(renderer.ClearPass)
	if mainClear.Color != (mgl32.Vec4{0.1, 0.2, 0.3, 1}) || mainClear.Depth != 1 {
		t.Errorf("main clear = %+v", mainClear)
	}
	shaded := p.Layers[1].Passes[1].(renderer.DrawShadedPass)
	if shaded.AmbientColor != (mgl32.Vec4{0.2, 0.2, 0.2, 1}) {
		t.Errorf("ambient = %v", shaded.AmbientColor)
	}

	if _, ok := p.Targets["shadow"].(*renderer.ColorBuffer); !ok {
		t.Errorf("shadow target = %T", p.Targets["shadow"])
	}
	if _, ok := p.Targets["gbuffer"].(*renderer.GeometryBuffer); !ok {
		t.Errorf("gbuffer target = %T", p.Targets["gbuffer"])
	}
}

func TestParsePipelineErrors(t *testing.T) {
	tests := map[string]string{
		"unknown pass":     "[[layer]]\ntarget = \"main\"\n[[layer.pass]]\nkind = \"bloom\"\n",
		"layer no target":  "[[layer]]\n[[layer.pass]]\nkind = \"draw_flat\"\n",
		"short color":      "[[layer]]\ntarget = \"main\"\n[[layer.pass]]\nkind = \"clear\"\ncolor = [1.0]\n",
		"zero target":      "[[target]]\nname = \"shadow\"\n",
		"main target":      "[[target]]\nname = \"main\"\nwidth = 1\nheight = 1\n",
		"unknown kind":     "[[target]]\nname = \"t\"\nkind = \"cube\"\nwidth = 1\nheight = 1\n",
		"duplicate target": "[[target]]\nname = \"t\"\nwidth = 1\nheight = 1\n[[target]]\nname = \"t\"\nwidth = 2\nheight = 2\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePipeline([]byte(data)); !errors.Is(err, gfx.ErrConfig) {
				t.Errorf("ParsePipeline() error = %v, want invalid config", err)
			}
		})
	}

	if _, err := ParsePipeline([]byte("[[layer]\n")); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestWatcherReloadsPipeline(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pipeline.toml", "[[layer]]\ntarget = \"main\"\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, dir, "unrelated.toml", "x = 1\n")
	writeFile(t, dir, "pipeline.toml", forwardPipeline)

	// A rewrite can surface as several events; wait for the final content.
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case p := <-w.Pending():
			reloaded = len(p.Layers) == 2
		case <-timeout:
			t.Fatal("no pipeline reloaded")
		}
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
