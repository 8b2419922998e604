// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CommonVertexShader passes eye-space position and normal to the banded and
// local-illumination fragment shaders.
//
//go:embed common.vert
var CommonVertexShader string

// BandedFragmentShader quantizes diffuse intensity into four colors.
//
//go:embed banded.frag
var BandedFragmentShader string

// ToneVertexShader computes the per-vertex terms of the warm/cool model.
//
//go:embed tone.vert
var ToneVertexShader string

// ToneFragmentShader blends the warm and cool colors.
//
//go:embed tone.frag
var ToneFragmentShader string

// PhongFragmentShader is ambient + diffuse + specular.
//
//go:embed phong.frag
var PhongFragmentShader string
