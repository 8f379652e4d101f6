// Package viewer implements the interactive OBJ model viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/assets"
	"github.com/Faultbox/wfobj/internal/config"
	"github.com/Faultbox/wfobj/internal/engine/camera"
	"github.com/Faultbox/wfobj/internal/engine/debug"
	"github.com/Faultbox/wfobj/internal/engine/gpu"
	"github.com/Faultbox/wfobj/internal/engine/input"
	"github.com/Faultbox/wfobj/internal/engine/model"
	"github.com/Faultbox/wfobj/internal/engine/renderer"
	"github.com/Faultbox/wfobj/internal/engine/window"
	"github.com/Faultbox/wfobj/internal/logger"
	"github.com/Faultbox/wfobj/internal/watch"
	"github.com/Faultbox/wfobj/pkg/formats"
)

// Viewer displays one model and optionally reloads it on change.
type Viewer struct {
	cfg  *config.Config
	path string // on disk, watched for changes
	name string // asset name the model is loaded by
	log  *zap.Logger

	assets   *assets.Manager
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	device   gpu.Device
	watcher  *watch.Watcher
	shots    *debug.ScreenshotCapture

	model      *formats.Model
	running    bool
	showBounds bool
}

// New opens a window and loads the model file at path. The directory of
// path is added to mgr so materials and textures next to the model resolve.
func New(cfg *config.Config, mgr *assets.Manager, path string) (*Viewer, error) {
	if err := mgr.AddDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:    cfg,
		path:   path,
		name:   filepath.Base(path),
		log:    logger.Named("viewer"),
		assets: mgr,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshotCapture("screenshots", "wfobj"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "wfobj - " + v.name,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// renderer after window: the GL context must exist
	w, h := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.device = renderer.NewDevice()

	if err := v.load(); err != nil {
		v.Close()
		return nil, err
	}
	v.camera.FitToBounds(v.model.Min, v.model.Max)

	if cfg.Viewer.Watch {
		v.watcher, err = watch.New(v.log, path)
		if err != nil {
			v.log.Warn("hot reload disabled", zap.Error(err))
		}
	}

	return v, nil
}

// load prepares and uploads the model, replacing the current one only on
// success.
func (v *Viewer) load() error {
	m := v.cfg.Model.NewModel("")
	if err := model.Prepare(v.name, m, v.assets, model.WithMaxElements(v.cfg.Model.MaxElements)); err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	model.Upload(m, v.device)

	v.release()
	v.model = m
	v.window.SetTitle(fmt.Sprintf("wfobj - %s (%d shapes)", v.name, len(m.Shapes)))
	return nil
}

func (v *Viewer) reload(changed string) {
	v.log.Info("reloading model", zap.String("changed", changed))
	v.assets.Cache().Clear()
	if err := v.load(); err != nil {
		v.log.Error("reload failed, keeping previous model", zap.Error(err))
	}
}

func (v *Viewer) release() {
	if v.model == nil {
		return
	}
	v.renderer.Forget(v.model)
	model.Erase(v.model, v.device)
	v.model = nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			break
		}
		v.handleEvents()

		if v.watcher != nil {
			select {
			case changed := <-v.watcher.Changes():
				v.reload(changed)
			default:
			}
		}

		v.renderer.Begin()
		viewProj := v.camera.ProjectionMatrix(v.renderer.Aspect()).Mul4(v.camera.ViewMatrix())
		v.renderer.DrawModel(v.model, viewProj)
		if v.showBounds && v.model.Min.X() <= v.model.Max.X() {
			v.renderer.DrawBounds(v.model.Min, v.model.Max, viewProj)
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.Size())
		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.DeltaY))
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_W:
				v.camera.HandleMovement(1, 0, 0)
			case sdl.SCANCODE_S:
				v.camera.HandleMovement(-1, 0, 0)
			case sdl.SCANCODE_A:
				v.camera.HandleMovement(0, -1, 0)
			case sdl.SCANCODE_D:
				v.camera.HandleMovement(0, 1, 0)
			case sdl.SCANCODE_F:
				v.camera.FitToBounds(v.model.Min, v.model.Max)
			case sdl.SCANCODE_R:
				v.reload("manual")
			case sdl.SCANCODE_B:
				v.showBounds = !v.showBounds
			}
		}
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the model, window and watcher.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.release()
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
