// Package renderer draws the session's mesh with the selected shading program.
package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/engine/shader"
	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/mesh"
	"github.com/Faultbox/offview/internal/session"
	"github.com/Faultbox/offview/internal/shading"
	"github.com/Faultbox/offview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width   int
	Height  int
	Shading shading.Model
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program uint32

	locModelView    int32
	locProjection   int32
	locNormalMatrix int32
	locLightPos     int32

	vao, vbo, ebo uint32
	indexCount    int32
	uploaded      bool
}

// New creates a new renderer and builds the shading program.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL")
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1)

	vert, frag := cfg.Shading.Sources()
	program, err := shader.CompileProgram(vert, frag)
	if err != nil {
		r.log.Error("shader program failed", zap.Stringer("model", cfg.Shading), zap.Error(err))
		return nil, errors.Wrapf(err, "building %s program", cfg.Shading)
	}
	r.program = program

	r.locModelView = shader.GetUniform(program, "uModelView")
	r.locProjection = shader.GetUniform(program, "uProjection")
	r.locNormalMatrix = shader.GetUniform(program, "uNormalMatrix")
	r.locLightPos = shader.GetUniform(program, "uLightPos")
	if r.locLightPos < 0 {
		r.log.Warn("light position uniform not active", zap.Stringer("model", cfg.Shading))
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	r.log.Debug("shader program created", zap.Uint32("program", program), zap.Stringer("model", cfg.Shading))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport's width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// upload copies the mesh buffers to the GPU. Topology never changes, so
// this happens once.
func (r *Renderer) upload(f session.Frame) {
	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(f.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(f.Vertices)*4, unsafe.Pointer(&f.Vertices[0]), gl.STATIC_DRAW)
	}

	stride := int32(mesh.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(f.Triangles) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(f.Triangles)*4, unsafe.Pointer(&f.Triangles[0]), gl.STATIC_DRAW)
	}
	r.indexCount = int32(len(f.Triangles))

	gl.BindVertexArray(0)
	r.uploaded = true

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(f.Vertices)/mesh.FloatsPerVertex),
		zap.Int("indices", len(f.Indices)),
		zap.Int("triangle_indices", len(f.Triangles)),
	)
}

// Draw clears the frame and draws the mesh with f.Model placed in the
// camera's view.
func (r *Renderer) Draw(f session.Frame, view, projection math.Mat4) {
	if !r.uploaded {
		r.upload(f)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)

	modelView := view.Mul(f.Model)
	normalMatrix := modelView.NormalMatrix()
	light := f.Light

	gl.UniformMatrix4fv(r.locModelView, 1, false, modelView.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix3fv(r.locNormalMatrix, 1, false, normalMatrix.Ptr())
	gl.Uniform4fv(r.locLightPos, 1, &light[0])

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}
