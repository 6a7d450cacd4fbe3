package scene

import (
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
)

const degToRad = 3.14159265358979323846 / 180

// Camera holds position, yaw/pitch orientation, and the projection
// parameters shared by the rasterizer and the ray tracer. Angles are set
// in degrees and stored internally in radians.
//
// Theta is yaw: 0 looks down -Z. Phi is pitch: +pi/2 looks straight up.
type Camera struct {
	Position math3d.Vec3
	theta    float64 // radians
	phi      float64 // radians
	fov      float64 // radians, vertical
	width    float64
	height   float64
	zNear    float64
	zFar     float64

	viewDirty bool
	projDirty bool
	view      math3d.Mat4
	proj      math3d.Mat4
}

// NewCamera returns a camera matching the reference defaults: 1920x1080,
// ~60 degree vertical FOV, near 0.001, far 100.
func NewCamera() *Camera {
	c := &Camera{
		width:  1920,
		height: 1080,
		fov:    60 * degToRad,
		zNear:  0.001,
		zFar:   100,
	}
	c.viewDirty = true
	c.projDirty = true
	return c
}

func (c *Camera) SetPosition(p math3d.Vec3) { c.Position = p; c.viewDirty = true }

// SetTheta sets the yaw angle in degrees.
func (c *Camera) SetTheta(degrees float64) { c.theta = degrees * degToRad; c.viewDirty = true }

// SetPhi sets the pitch angle in degrees.
func (c *Camera) SetPhi(degrees float64) { c.phi = degrees * degToRad; c.viewDirty = true }

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(degrees float64) { c.fov = degrees * degToRad; c.projDirty = true }

func (c *Camera) SetZNear(v float64) { c.zNear = v; c.projDirty = true }
func (c *Camera) SetZFar(v float64)  { c.zFar = v; c.projDirty = true }

// SetViewport sets pixel dimensions and recomputes aspect ratio, matching
// the reference camera's width/height setters.
func (c *Camera) SetViewport(width, height int) {
	c.width = float64(width)
	c.height = float64(height)
	c.projDirty = true
}

func (c *Camera) Theta() float64       { return c.theta }
func (c *Camera) Phi() float64         { return c.phi }
func (c *Camera) FOV() float64         { return c.fov }
func (c *Camera) ZNear() float64       { return c.zNear }
func (c *Camera) ZFar() float64        { return c.zFar }
func (c *Camera) Width() int           { return int(c.width) }
func (c *Camera) Height() int          { return int(c.height) }
func (c *Camera) AspectRatio() float64 { return c.width / c.height }

// Forward returns the unit forward direction derived from yaw/pitch.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		math.Sin(c.theta)*math.Cos(c.phi),
		math.Sin(c.phi),
		-math.Cos(c.theta)*math.Cos(c.phi),
	)
}

// Right returns the unit right direction, forward crossed with world up.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(math3d.V3(0, 1, 0)).Normalize()
}

// Up returns the unit up direction, right crossed with forward.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the cached right-handed look-at-style view matrix
// built from the camera's basis vectors and position.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.view = math3d.ViewFromBasis(c.Right(), c.Up(), c.Forward(), c.Position)
		c.viewDirty = false
	}
	return c.view
}

// ProjectionMatrix returns the cached perspective projection matrix with
// NDC Z in [0, 1].
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.proj = math3d.PerspectiveZeroOne(c.fov, c.AspectRatio(), c.zNear, c.zFar)
		c.projDirty = false
	}
	return c.proj
}

// ViewProjectionMatrix composes projection * view, so that
// ViewProjectionMatrix().MulVec4(pos) transforms a world-space point
// straight to clip space (view applied first, then projection).
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
