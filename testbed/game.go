package testbed

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/components"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/gfx"
	"github.com/spaghettifunk/prism/engine/renderer"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	cubes []ecs.Entity
}

var tempMoveSpeed float32 = 50.0

func NewTestGame(cfg *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)

	camera, _ := ecs.Resource[renderer.Camera](g.World)
	camera.Position = mgl32.Vec3{10.5, 5.0, 9.5}
	camera.Yaw(mgl32.DegToRad(45))
	camera.Pitch(mgl32.DegToRad(-15))
	ecs.SetResource(g.World, camera)

	ka, err := g.Device.LoadTexture("ambient", solidTexture(color.RGBA{R: 40, G: 40, B: 48, A: 255}))
	if err != nil {
		return err
	}
	kd, err := g.Device.LoadTexture("checker", checkerTexture(256, 32))
	if err != nil {
		return err
	}

	// Three nested cubes, each parented to the previous one.
	sizes := []float32{10, 5, 2}
	offsets := []mgl32.Vec3{{0, 0, 0}, {10, 0, 1}, {5, 0, 1}}
	for i, size := range sizes {
		mesh, err := g.Device.LoadMesh("test_cube", GenerateCube(size, size, size, 1, 1), renderer.Slice{})
		if err != nil {
			return err
		}
		transform := components.TransformFromPosition(offsets[i])
		if i > 0 {
			transform.SetParent(state.cubes[i-1])
		}
		e := g.World.CreateEntity()
		if err := ecs.Insert(g.World, e, gfx.Renderable{Mesh: mesh, Ka: ka, Kd: kd}); err != nil {
			return err
		}
		if err := ecs.Insert(g.World, e, transform); err != nil {
			return err
		}
		state.cubes = append(state.cubes, e)
	}

	lights := []renderer.Light{
		renderer.NewPointLight(mgl32.Vec3{0, 12, 0}, mgl32.Vec4{1, 0.9, 0.8, 1}, 40),
		renderer.NewPointLight(mgl32.Vec3{15, 4, 6}, mgl32.Vec4{0.3, 0.4, 1, 1}, 25),
	}
	for _, l := range lights {
		e := g.World.CreateEntity()
		if err := ecs.Insert(g.World, e, l); err != nil {
			return err
		}
	}

	g.Events.Register(core.EVENT_CODE_KEY_PRESSED, g, g.gameOnKey)
	g.Events.Register(core.EVENT_CODE_KEY_RELEASED, g, g.gameOnKey)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	dt := float32(deltaTime)

	camera, ok := ecs.Resource[renderer.Camera](g.World)
	if ok {
		// HACK: temp hack to move camera around.
		if g.Input.IsKeyDown(core.KEY_A) || g.Input.IsKeyDown(core.KEY_LEFT) {
			camera.Yaw(1.0 * dt)
		}
		if g.Input.IsKeyDown(core.KEY_D) || g.Input.IsKeyDown(core.KEY_RIGHT) {
			camera.Yaw(-1.0 * dt)
		}
		if g.Input.IsKeyDown(core.KEY_UP) {
			camera.Pitch(1.0 * dt)
		}
		if g.Input.IsKeyDown(core.KEY_DOWN) {
			camera.Pitch(-1.0 * dt)
		}
		if g.Input.IsKeyDown(core.KEY_W) {
			camera.MoveForward(tempMoveSpeed * dt)
		}
		if g.Input.IsKeyDown(core.KEY_S) {
			camera.MoveBackward(tempMoveSpeed * dt)
		}
		if g.Input.IsKeyDown(core.KEY_Q) {
			camera.MoveLeft(tempMoveSpeed * dt)
		}
		if g.Input.IsKeyDown(core.KEY_E) {
			camera.MoveRight(tempMoveSpeed * dt)
		}
		if g.Input.IsKeyDown(core.KEY_SPACE) {
			camera.MoveUp(tempMoveSpeed * dt)
		}
		if g.Input.IsKeyDown(core.KEY_Z) {
			camera.MoveDown(tempMoveSpeed * dt)
		}
		ecs.SetResource(g.World, camera)
	}

	// Perform a small rotation on every cube.
	rotation := mgl32.QuatRotate(0.5*dt, mgl32.Vec3{0, 1, 0})
	for _, e := range state.cubes {
		if t, ok := ecs.Get[components.Transform](g.World, e); ok {
			t.Rotate(rotation)
		}
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn....")
	return nil
}

func (g *TestGame) gameOnKey(event core.EngineEvent, _ interface{}) bool {
	if event.Code == core.EVENT_CODE_KEY_RELEASED && event.Key == core.KEY_A {
		// Example on checking for a key
		core.LogDebug("Explicit - A key released!")
	}
	return false
}

func solidTexture(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func checkerTexture(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 220, G: 220, B: 220, A: 255}
	dark := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
