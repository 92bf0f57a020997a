// Package camera provides the orbit camera used by the batch viewer.
package camera

import (
	gomath "math"

	"github.com/draycott/meshbatch/pkg/math"
)

// Orbit circles a target point at a fixed distance.
type Orbit struct {
	Target math.Vec3

	Distance float32
	Yaw      float32 // horizontal angle, radians
	Pitch    float32 // vertical angle, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32
}

// NewOrbit creates an orbit camera with viewer defaults.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:    12.0,
		Pitch:       0.5,
		MinDistance: 1.0,
		MaxDistance: 200.0,
		MinPitch:    -1.4,
		MaxPitch:    1.4,
	}
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{X: 0, Y: 1, Z: 0})
}

// Rotate adjusts yaw and pitch by the given deltas (radians), clamping
// pitch to avoid flipping over the poles.
func (c *Orbit) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw -= deltaYaw
	c.Pitch += deltaPitch

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// Zoom scales the orbit distance by the scroll delta.
func (c *Orbit) Zoom(delta float32) {
	c.Distance -= delta * c.Distance * 0.1
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
