// Package viewer implements the interactive batch viewer: it loads the
// scene, runs one batching pass, uploads the results, and renders them
// with an orbit camera.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/draycott/meshbatch/internal/config"
	"github.com/draycott/meshbatch/internal/engine/batch"
	"github.com/draycott/meshbatch/internal/engine/camera"
	"github.com/draycott/meshbatch/internal/engine/debug"
	"github.com/draycott/meshbatch/internal/engine/input"
	"github.com/draycott/meshbatch/internal/engine/material"
	"github.com/draycott/meshbatch/internal/engine/mesh"
	"github.com/draycott/meshbatch/internal/engine/scene"
	"github.com/draycott/meshbatch/internal/engine/shader"
	"github.com/draycott/meshbatch/internal/engine/upload"
	"github.com/draycott/meshbatch/internal/engine/window"
	"github.com/draycott/meshbatch/internal/logger"
	"github.com/draycott/meshbatch/pkg/math"
)

// Viewer owns the window, the uploaded batches, and the render loop.
type Viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	camera *camera.Orbit

	program   *shader.Program
	uViewProj int32
	uColor    int32

	uploaded []*upload.BatchBuffers

	width, height int
	dragging      bool
}

// New creates the window and GL context, batches the configured scene,
// and uploads every batch.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		input:  input.New(),
		camera: camera.NewOrbit(),
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "meshbatch viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)

	flat := material.Flat{}
	v.program, err = shader.New(flat.VertexShader(), flat.FragmentShader())
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to build flat shader: %w", err)
	}
	v.uViewProj = v.program.Uniform("uViewProj")
	v.uColor = v.program.Uniform("uColor")

	if err := v.loadScene(); err != nil {
		v.Close()
		return nil, err
	}

	return v, nil
}

// loadScene runs one batching pass over the configured scene and
// uploads the resulting batches.
func (v *Viewer) loadScene() error {
	sc, err := scene.Load(v.cfg.Scene)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}

	batches := batch.NewBatches[material.Flat]()
	if err := batch.Prepare(sc.Meshes, sc.Refs, nil, batches); err != nil {
		return fmt.Errorf("batching failed: %w", err)
	}

	counts := sc.InstanceCounts()
	layout := mesh.StandardLayout()

	var uploadErr error
	batches.ForEach(func(key mesh.Key, b *batch.Batch) bool {
		bb, err := upload.Upload(layout, key, b, sc.TransformsFor(b), counts)
		if err != nil {
			uploadErr = fmt.Errorf("failed to upload batch %s: %w", key, err)
			return false
		}
		v.uploaded = append(v.uploaded, bb)
		return true
	})
	if uploadErr != nil {
		return uploadErr
	}

	logger.Info("scene batched",
		zap.Int("meshes", sc.Meshes.Len()),
		zap.Int("instances", len(sc.Refs)),
		zap.Int("batches", len(v.uploaded)),
	)
	return nil
}

// Run starts the render loop and blocks until the viewer quits.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("frame_ms", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width, v.height = e.Width, e.Height
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F12:
				v.screenshot()
			}
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}
		case input.EventMouseMove:
			if v.dragging {
				v.camera.Rotate(float32(e.RelX)*0.008, float32(e.RelY)*0.008)
			}
		case input.EventMouseWheel:
			v.camera.Zoom(e.WheelY)
		}
	}
}

func (v *Viewer) screenshot() {
	pixels := make([]byte, v.width*v.height*4)
	gl.ReadPixels(0, 0, int32(v.width), int32(v.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := debug.SaveScreenshot(pixels, v.width, v.height, "screenshots")
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) render() {
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.program.Use()

	aspect := float32(v.width) / float32(v.height)
	proj := math.Perspective(float32(gomath.Pi/4), aspect, 0.1, 500.0)
	viewProj := proj.Mul(v.camera.ViewMatrix())
	gl.UniformMatrix4fv(v.uViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(v.uColor, 0.75, 0.78, 0.85)

	for _, bb := range v.uploaded {
		bb.Draw()
	}
}

// Close releases the GL resources and the window.
func (v *Viewer) Close() {
	for _, bb := range v.uploaded {
		bb.Delete()
	}
	v.uploaded = nil

	if v.program != nil {
		v.program.Delete()
	}
	if v.window != nil {
		v.window.Close()
	}
}
