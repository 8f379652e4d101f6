package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	pos := c.Position()
	want := mgl32.Vec3{1, 2, 13}
	if !pos.ApproxEqual(want) {
		t.Errorf("Position() = %v, want %v", pos, want)
	}

	c.RotationX = math32.Pi / 2
	pos = c.Position()
	if !pos.ApproxEqualThreshold(mgl32.Vec3{1, 12, 3}, 1e-4) {
		t.Errorf("Position() from above = %v", pos)
	}
}

func TestOrbitCamera_Clamps(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.MaxPitch, c.RotationX)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.MinPitch, c.RotationX)
	}

	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped to %v, got %v", c.MinDistance, c.Distance)
	}
}

func TestOrbitCamera_FitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})

	if !c.Center.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected center at box middle, got %v", c.Center)
	}
	radius := mgl32.Vec3{2, 2, 2}.Len() / 2
	if c.Distance <= radius {
		t.Errorf("expected camera outside the bounding sphere, distance %v radius %v", c.Distance, radius)
	}
	if c.Near <= 0 || c.Near >= c.Distance || c.Far <= c.Distance {
		t.Errorf("unexpected clip planes near %v far %v distance %v", c.Near, c.Far, c.Distance)
	}
}

func TestOrbitCamera_FitToUnsetBounds(t *testing.T) {
	c := NewOrbitCamera()
	before := *c

	inf := math32.Inf(1)
	c.FitToBounds(mgl32.Vec3{inf, inf, inf}, mgl32.Vec3{})

	if c.Center != before.Center || c.Distance != before.Distance {
		t.Error("expected camera unchanged for an unset bounding box")
	}
}
