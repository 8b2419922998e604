// Package shading selects one of three lighting models for the session and
// provides its GLSL program sources and a CPU evaluation of the same model.
package shading

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/shading/shaders"
)

// Model is a lighting model. The numeric values are the startup menu choices.
type Model int

const (
	Banded            Model = 1 // "toon"
	ToneBased         Model = 2 // "gooch"
	LocalIllumination Model = 3 // "phong"
)

// Prompt asks for the model on the console at startup.
const Prompt = "Which shader do you want to use? (1: Toon Shader, 2: Gooch Shader, 3: Phong Shader):"

// DefaultLight is the light position in eye coordinates.
// W scales every term of the local-illumination model.
var DefaultLight = mgl32.Vec4{-3, -3, -3, 1}

func (m Model) String() string {
	switch m {
	case Banded:
		return "toon"
	case ToneBased:
		return "gooch"
	case LocalIllumination:
		return "phong"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Valid reports whether m is one of the three models.
func (m Model) Valid() bool {
	return m >= Banded && m <= LocalIllumination
}

// ParseModel accepts a menu number or a model name, case-insensitively.
func ParseModel(s string) (Model, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "toon", "banded":
		return Banded, true
	case "2", "gooch", "tone":
		return ToneBased, true
	case "3", "phong", "local":
		return LocalIllumination, true
	default:
		return 0, false
	}
}

// Select parses a startup choice. Anything unrecognized falls back to Banded.
func Select(choice string) Model {
	m, ok := ParseModel(choice)
	if !ok {
		logger.Named("shading").Warn("Invalid shader choice. Using Toon shader.", zap.String("choice", choice))
		return Banded
	}
	logger.Named("shading").Info("shading model selected", zap.Stringer("model", m))
	return m
}

// Sources returns the vertex and fragment shader sources for m.
// Invalid models get the banded program.
func (m Model) Sources() (vertex, fragment string) {
	switch m {
	case ToneBased:
		return shaders.ToneVertexShader, shaders.ToneFragmentShader
	case LocalIllumination:
		return shaders.CommonVertexShader, shaders.PhongFragmentShader
	default:
		return shaders.CommonVertexShader, shaders.BandedFragmentShader
	}
}
