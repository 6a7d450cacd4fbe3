package scene

import (
	"math"
	"testing"

	"github.com/taigrr/softrender/pkg/math3d"
)

func approxVec3(a, b math3d.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestForwardAtZeroAnglesLooksDownNegZ(t *testing.T) {
	c := NewCamera()
	c.SetTheta(0)
	c.SetPhi(0)

	got := c.Forward()
	want := math3d.V3(0, 0, -1)

	if !approxVec3(got, want, 1e-9) {
		t.Errorf("Forward() = %v, want %v", got, want)
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	c := NewCamera()
	c.SetTheta(37)
	c.SetPhi(-12)

	f, r, u := c.Forward(), c.Right(), c.Up()

	for _, v := range []math3d.Vec3{f, r, u} {
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Errorf("basis vector %v not unit length", v)
		}
	}
	if math.Abs(f.Dot(r)) > 1e-9 || math.Abs(f.Dot(u)) > 1e-9 || math.Abs(r.Dot(u)) > 1e-9 {
		t.Error("basis vectors are not mutually orthogonal")
	}
}

func TestDegreesConvertedToRadians(t *testing.T) {
	c := NewCamera()
	c.SetTheta(180)

	if math.Abs(c.Theta()-math.Pi) > 1e-9 {
		t.Errorf("Theta() = %v, want pi", c.Theta())
	}
}

func TestProjectionMatrixZeroOneRange(t *testing.T) {
	c := NewCamera()
	c.SetZNear(1)
	c.SetZFar(10)
	p := c.ProjectionMatrix()

	// Row 2 (z), column 2: z_far / (z_near - z_far)
	want := 10.0 / (1 - 10)
	if math.Abs(p.Get(2, 2)-want) > 1e-9 {
		t.Errorf("P[2][2] = %v, want %v", p.Get(2, 2), want)
	}
	if math.Abs(p.Get(3, 2)-(-1)) > 1e-9 {
		t.Errorf("P[3][2] = %v, want -1", p.Get(3, 2))
	}
}
