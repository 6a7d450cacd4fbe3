// Package config holds the batch renderer's options, populated from the
// CLI surface in cmd/softrender.
package config

import "github.com/taigrr/softrender/pkg/math3d"

// PixelShaderKind selects an alternate pixel shader beyond the default
// ambient+diffuse shading.
type PixelShaderKind int

const (
	ShaderDefault PixelShaderKind = iota
	ShaderZ                       // depth-darken
	ShaderFog
)

// RenderOptions is the full set of knobs accepted by the batch renderer,
// independent of whether they arrived via flags, a config file, or were
// set programmatically in tests.
type RenderOptions struct {
	Width, Height int

	ModelPath string

	CameraPosition     math3d.Vec3
	CameraTheta        float64 // degrees
	CameraPhi          float64 // degrees
	CameraAngleOfView  float64 // degrees, vertical FOV
	CameraZNear        float64
	CameraZFar         float64

	DisableDepth bool

	ResultPath      string
	DepthExportPath string

	RaytracingDepth int
	AccumulationNum int
	UseRaytracer    bool

	Shader   PixelShaderKind
	LPSBias  float64
	LPSFade  float64
}

// Default returns the option set the CLI falls back to when a flag is
// left unset.
func Default() RenderOptions {
	return RenderOptions{
		Width:  800,
		Height: 600,

		CameraPosition:    math3d.V3(0, 0, 5),
		CameraAngleOfView: 60,
		CameraZNear:       0.1,
		CameraZFar:        100,

		ResultPath: "result.png",

		RaytracingDepth: 4,
		AccumulationNum: 16,

		LPSBias: 0.5,
		LPSFade: 10,
	}
}
