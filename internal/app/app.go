// Package app implements the viewer's main loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/assets"
	"github.com/Faultbox/windturbine/internal/config"
	"github.com/Faultbox/windturbine/internal/engine/camera"
	"github.com/Faultbox/windturbine/internal/engine/debug"
	"github.com/Faultbox/windturbine/internal/engine/input"
	"github.com/Faultbox/windturbine/internal/engine/lighting"
	"github.com/Faultbox/windturbine/internal/engine/model"
	"github.com/Faultbox/windturbine/internal/engine/renderer"
	"github.com/Faultbox/windturbine/internal/engine/window"
	"github.com/Faultbox/windturbine/internal/logger"
	"github.com/Faultbox/windturbine/internal/scene"
	"github.com/Faultbox/windturbine/internal/turbine"
)

// Title is the window title.
const Title = "Wind Turbine"

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	inputLog *zap.Logger
	running  bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	bindings *input.Bindings
	camera   *camera.OrbitCamera
	loader   *assets.Loader
	shots    *debug.ScreenshotCapture

	// Set by the screenshot key, served after the next render
	captureFrame bool

	assembly   *Assembly
	controller *turbine.Controller
}

// New creates the window, GL renderer and turbine, and starts loading meshes.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		log:      logger.Named(logger.ComponentApp),
		inputLog: logger.Named(logger.ComponentInput),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	bindings, err := input.NewBindings(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to bind keys: %w", err)
	}
	a.bindings = bindings
	a.inputLog.Debug("keys bound",
		zap.String("toggle_rotation", cfg.Input.ToggleRotation),
		zap.String("toggle_engagement", cfg.Input.ToggleEngagement),
	)

	// Window first, since it creates the OpenGL context
	a.window, err = window.New(Title, cfg.Graphics, logger.Named(logger.ComponentRenderer))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(cfg.Graphics, w, h, logger.Named(logger.ComponentRenderer))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.camera = camera.NewOrbitCamera(cfg.Camera)

	a.shots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "turbine")

	a.assembly = NewAssembly(cfg.Turbine.Blades, uploadMesh, a.log)
	a.assembly.Scene.LightDir, a.assembly.Scene.Ambient = lighting.FromConfig(cfg.Graphics.Light)
	a.controller, err = turbine.NewController(cfg.Turbine, a.assembly.Hub, logger.Named(logger.ComponentTurbine))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create turbine: %w", err)
	}

	a.loader = assets.NewLoader(assets.Options{Fallback: cfg.Assets.FallbackMeshes}, logger.Named(logger.ComponentAssets))
	a.assembly.Request(a.loader, cfg)

	a.log.Info("viewer initialized")
	return a, nil
}

func uploadMesh(m *model.Mesh) (scene.Drawable, error) {
	gm, err := renderer.Upload(m)
	if err != nil {
		return nil, err
	}
	return gm, nil
}

// Run starts the main loop. It returns when the window is closed or ESC is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	loading := true

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents(a.input.Events())

		// 2. Finished asset loads
		if loading && a.assembly.Poll(a.controller) == 0 {
			loading = false
			a.log.Info("all assets resolved", zap.Bool("turbine_ready", a.controller.Ready()))
		}

		// 3. Animation, then camera
		a.controller.Tick()
		a.camera.Update()

		// 4. Render and present
		a.renderer.Render(a.assembly.Scene, a.camera)
		if a.captureFrame {
			a.captureFrame = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("draw_calls", a.renderer.DrawCalls()),
				zap.Stringer("mode", a.controller.Mode()),
			)
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d FPS", Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents(events []input.Event) {
	_, height := a.window.Size()
	h := float32(height)

	for _, event := range events {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			switch {
			case a.bindings.IsQuit(event.Key):
				a.running = false
			case a.bindings.IsScreenshot(event.Key) && !event.Repeat:
				a.captureFrame = true
			}
		case input.EventMouseMove:
			switch {
			case event.Dragging(sdl.BUTTON_RIGHT):
				a.camera.Rotate(float32(event.DX), float32(event.DY), h)
			case event.Dragging(sdl.BUTTON_MIDDLE):
				a.camera.Pan(float32(event.DX), float32(event.DY), h)
			}
		case input.EventMouseWheel:
			a.camera.Zoom(event.WheelY)
		}
	}

	for _, cmd := range a.bindings.Commands(events) {
		a.inputLog.Debug("command queued", zap.Stringer("command", cmd))
		a.controller.Push(cmd)
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.loader != nil {
		a.loader.Close()
	}
	if a.assembly != nil {
		for _, d := range a.assembly.Drawables() {
			if m, ok := d.(*renderer.Mesh); ok {
				m.Delete()
			}
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
