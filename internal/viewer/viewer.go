// Package viewer runs the interactive window: it feeds command keys to the
// session and redraws only when the session reports a change.
package viewer

import (
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/engine/camera"
	"github.com/Faultbox/offview/internal/engine/input"
	"github.com/Faultbox/offview/internal/engine/renderer"
	"github.com/Faultbox/offview/internal/engine/window"
	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/session"
)

// Config holds viewer configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	FOVDegrees float32
}

// Viewer is the main viewer instance.
type Viewer struct {
	config   Config
	running  bool
	dragging bool
	log      *zap.Logger

	session  *session.Session
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
}

// New opens the window and builds the renderer for the session's shading model.
func New(cfg Config, s *session.Session) (*Viewer, error) {
	v := &Viewer{
		config:  cfg,
		session: s,
		log:     logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Stringer("shading", s.Shading()),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create window")
	}

	// Renderer comes AFTER the window, since the OpenGL context must exist.
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:   width,
		Height:  height,
		Shading: s.Shading(),
	})
	if err != nil {
		v.window.Close()
		return nil, errors.Wrap(err, "failed to create renderer")
	}

	v.input = input.New()

	b := s.Mesh().Bounds()
	v.camera = camera.NewOrbitCamera(cfg.FOVDegrees)
	v.camera.FitToBounds(b.Min, b.Max)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run processes events until the window closes or ESC is pressed.
// It blocks between events; frames are drawn only when something changed.
func (v *Viewer) Run() error {
	v.running = true
	v.log.Info("starting event loop")

	for v.running {
		if v.input.Wait() {
			break
		}

		for _, event := range v.input.Events() {
			v.handle(event)
		}

		if v.running && v.session.NeedsRedraw() {
			v.draw()
		}
	}

	v.log.Info("event loop stopped", zap.Int("stack_depth", v.session.Stack().Depth()))
	return nil
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		width, height := v.window.GetSize()
		v.renderer.Resize(width, height)
		v.session.Invalidate()

	case input.EventWindowExposed:
		v.session.Invalidate()

	case input.EventKeyDown:
		if event.Key == sdl.SCANCODE_ESCAPE {
			v.running = false
			return
		}
		if event.Char == 0 {
			return
		}
		// Blocks on the console until the command's parameters are read.
		if err := v.session.HandleKey(event.Char); err != nil {
			v.log.Warn("command not applied", zap.Error(err))
		}

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = true
		}

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = false
		}

	case input.EventMouseMove:
		if v.dragging {
			v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			v.session.Invalidate()
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(event.Wheel)
		v.session.Invalidate()
	}
}

func (v *Viewer) draw() {
	frame := v.session.Frame()
	v.renderer.Draw(frame, v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()))
	v.window.SwapBuffers()
	v.session.MarkDrawn()
	v.log.Debug("frame drawn", zap.Int("stack_depth", v.session.Stack().Depth()))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
