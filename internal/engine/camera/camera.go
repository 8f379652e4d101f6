// Package camera provides the orbit camera used by the model viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.5,
		MinDistance:     0.01,
		MaxDistance:     10000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            45.0,
		Near:            0.01,
		Far:             1000.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)

	offset := mgl32.Vec3{cosX * sinY, sinX, cosX * cosY}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sinY, cosY := math32.Sincos(c.RotationY)
	dir := mgl32.Vec3{-sinY * forward, 0, -cosY * forward}
	side := mgl32.Vec3{cosY * right, 0, -sinY * right}

	c.Center = c.Center.Add(dir.Add(side).Add(mgl32.Vec3{0, up, 0}).Mul(speed))
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it. An empty or inverted box leaves the camera unchanged.
func (c *OrbitCamera) FitToBounds(min, max mgl32.Vec3) {
	size := max.Sub(min)
	if size.X() < 0 || size.Y() < 0 || size.Z() < 0 || math32.IsInf(size.X(), 0) {
		return
	}

	c.Center = min.Add(max).Mul(0.5)

	radius := size.Len() / 2
	if radius == 0 {
		radius = 1
	}
	halfFov := mgl32.DegToRad(c.FovY) / 2
	c.Distance = mgl32.Clamp(radius/math32.Sin(halfFov)*1.1, c.MinDistance, c.MaxDistance)
	c.Far = math32.Max(c.Far, c.Distance+radius*4)
	c.Near = math32.Max(c.Distance-radius*2, c.Distance*0.001)
	if c.Near > c.Distance*0.5 {
		c.Near = c.Distance * 0.01
	}

	c.RotationX = 0.4
	c.RotationY = 0.6
}
