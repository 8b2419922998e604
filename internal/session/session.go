// Package session owns the state of one viewing session: the mesh, the
// transform stack, and the shading choice. It turns console command keys
// into transform commands.
package session

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/mesh"
	"github.com/Faultbox/offview/internal/shading"
	"github.com/Faultbox/offview/internal/xform"
	"github.com/Faultbox/offview/pkg/math"
)

// Mode is the interaction state.
type Mode int

const (
	// Idle accepts command keys and may redraw.
	Idle Mode = iota
	// AwaitingInput is blocked on parameters for a command. No redraw happens.
	AwaitingInput
)

func (m Mode) String() string {
	if m == AwaitingInput {
		return "awaiting-input"
	}
	return "idle"
}

// Command keys.
const (
	KeyTranslate = 't'
	KeyScale     = 's'
	KeyShearX    = 'q'
	KeyShearY    = 'w'
	KeyShearZ    = 'e'
	KeyRotate    = 'r'
	KeyReflect   = 'u'
	KeyUndo      = 'a'
)

// Console prompts, one per parameter group.
const (
	PromptTranslate = "Enter translation values (tx ty tz): "
	PromptScale     = "Enter scaling factors (sx sy sz): "
	PromptShearX    = "Enter shearing factors (shY shZ) for shearing in X-Direction: "
	PromptShearY    = "Enter shearing factors (shX shZ) for shearing in Y-Direction: "
	PromptShearZ    = "Enter shearing factors (shX shY) for shearing in Z-Direction: "
	PromptAxis      = "Enter coordinates of two points (x1 y1 z1 x2 y2 z2) defining the axis: "
	PromptAngle     = "Enter rotation angle: "
	PromptPlane     = "Enter coordinates of a point and a normal (x1 y1 z1 nx ny nz) defining the plane: "
)

// Frame is everything the pipeline needs to draw once.
type Frame struct {
	Model     math.Mat4
	Vertices  []float32 // interleaved position and normal, mesh.FloatsPerVertex per vertex
	Indices   []uint32  // flattened face lists
	Triangles []uint32  // fan-triangulated faces
	Light     mgl32.Vec4
	Shading   shading.Model
}

// Session is the single owner of the mesh and its transform history.
type Session struct {
	mesh    *mesh.Mesh
	stack   *xform.Stack
	model   shading.Model
	light   mgl32.Vec4
	prompts *Prompter

	vertices  []float32
	indices   []uint32
	triangles []uint32

	mode  Mode
	dirty bool
	log   *zap.Logger
}

// New starts a session on a mesh whose normals are already computed.
// The first frame is pending.
func New(m *mesh.Mesh, model shading.Model, light mgl32.Vec4, prompts *Prompter) *Session {
	return &Session{
		mesh:      m,
		stack:     xform.NewStack(),
		model:     model,
		light:     light,
		prompts:   prompts,
		vertices:  m.VertexData(),
		indices:   m.Indices(),
		triangles: m.TriangleIndices(),
		dirty:     true,
		log:       logger.Named("session"),
	}
}

// PromptShading asks for the shading model once. Unreadable or invalid
// input selects the banded model.
func PromptShading(p *Prompter) shading.Model {
	choice, err := p.Word(shading.Prompt)
	if err != nil {
		logger.Named("session").Warn("no shading choice read", zap.Error(err))
	}
	return shading.Select(choice)
}

// Mesh returns the session's mesh.
func (s *Session) Mesh() *mesh.Mesh { return s.mesh }

// Stack returns the transform stack.
func (s *Session) Stack() *xform.Stack { return s.stack }

// Shading returns the model chosen for the session.
func (s *Session) Shading() shading.Model { return s.model }

// Mode returns the current interaction state.
func (s *Session) Mode() Mode { return s.mode }

// NeedsRedraw reports whether state changed since the last drawn frame.
func (s *Session) NeedsRedraw() bool {
	return s.dirty && s.mode == Idle
}

// Invalidate requests a redraw without a state change, e.g. after a resize.
func (s *Session) Invalidate() {
	s.dirty = true
}

// Frame returns the data for the next draw.
func (s *Session) Frame() Frame {
	return Frame{
		Model:     s.stack.Current(),
		Vertices:  s.vertices,
		Indices:   s.indices,
		Triangles: s.triangles,
		Light:     s.light,
		Shading:   s.model,
	}
}

// MarkDrawn clears the pending redraw.
func (s *Session) MarkDrawn() {
	s.dirty = false
}

// HandleKey runs the command bound to key, prompting for its parameters.
// Unbound keys are ignored. On any error the transform stack is unchanged.
func (s *Session) HandleKey(key rune) error {
	if key == KeyUndo {
		s.Undo()
		return nil
	}

	s.mode = AwaitingInput
	cmd, err := s.readCommand(key)
	s.mode = Idle
	if err != nil {
		s.log.Warn("command input rejected", zap.String("key", string(key)), zap.Error(err))
		return err
	}
	if cmd == nil {
		return nil
	}

	return s.Apply(cmd)
}

// Apply pushes cmd directly, bypassing the prompts.
func (s *Session) Apply(cmd xform.Command) error {
	if err := s.stack.PushAndApply(cmd); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Undo pops the last command, if any.
func (s *Session) Undo() bool {
	if !s.stack.Undo() {
		return false
	}
	s.dirty = true
	return true
}

// Run reads command keys and their parameters from the session's prompter
// until input ends. Lines starting with '#' are skipped. The first error stops it;
// a read failure other than end of input is returned.
func (s *Session) Run() error {
	for {
		key, err := s.prompts.NextCommand()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading command")
		}
		if err := s.HandleKey(key); err != nil {
			return errors.Wrapf(err, "command %q", key)
		}
	}
}

func (s *Session) readCommand(key rune) (xform.Command, error) {
	p := s.prompts
	switch key {
	case KeyTranslate:
		v, err := p.Floats(PromptTranslate, 3)
		if err != nil {
			return nil, err
		}
		return xform.Translation{Offset: vec3(v)}, nil

	case KeyScale:
		v, err := p.Floats(PromptScale, 3)
		if err != nil {
			return nil, err
		}
		return xform.Scaling{Factors: vec3(v)}, nil

	case KeyShearX, KeyShearY, KeyShearZ:
		axis, prompt := xform.AxisX, PromptShearX
		if key == KeyShearY {
			axis, prompt = xform.AxisY, PromptShearY
		} else if key == KeyShearZ {
			axis, prompt = xform.AxisZ, PromptShearZ
		}
		v, err := p.Floats(prompt, 2)
		if err != nil {
			return nil, err
		}
		return xform.Shear{Axis: axis, F1: v[0], F2: v[1]}, nil

	case KeyRotate:
		pts, err := p.Floats(PromptAxis, 6)
		if err != nil {
			return nil, err
		}
		angle, err := p.Floats(PromptAngle, 1)
		if err != nil {
			return nil, err
		}
		return xform.LineRotation{P1: vec3(pts[:3]), P2: vec3(pts[3:]), Angle: angle[0]}, nil

	case KeyReflect:
		v, err := p.Floats(PromptPlane, 6)
		if err != nil {
			return nil, err
		}
		return xform.PlaneReflection{Point: vec3(v[:3]), Normal: vec3(v[3:])}, nil

	default:
		return nil, nil
	}
}

func vec3(v []float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
