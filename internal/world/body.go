package world

import (
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Shape of a body collider.
type Shape int32

const (
	ShapeSphere Shape = iota
	ShapeBox
)

// Body is a tagged collider registered in Space.
// Spheres move; boxes are static geometry.
type Body struct {
	objectID uint32
	tag      model.Tag
	shape    Shape
	position geom.Vec3
	radius   float64
	box      geom.Box
	enabled  bool

	// Data points back to the owning game object (e.g. *spawn.Zombie).
	Data any
}

// ObjectID returns unique body ID.
func (b *Body) ObjectID() uint32 {
	return b.objectID
}

// Tag returns body tag.
func (b *Body) Tag() model.Tag {
	return b.tag
}

// Shape returns collider shape.
func (b *Body) Shape() Shape {
	return b.shape
}

// Position returns body position (box center for boxes).
func (b *Body) Position() geom.Vec3 {
	return b.position
}

// SetPosition moves sphere body. Boxes are translated as a whole.
func (b *Body) SetPosition(p geom.Vec3) {
	if b.shape == ShapeBox {
		delta := p.Sub(b.position)
		b.box = geom.Box{Min: b.box.Min.Add(delta), Max: b.box.Max.Add(delta)}
	}
	b.position = p
}

// Radius returns sphere radius (0 for boxes).
func (b *Body) Radius() float64 {
	return b.radius
}

// Box returns box extents (zero for spheres).
func (b *Body) Box() geom.Box {
	return b.box
}

// Enabled reports whether collider takes part in queries.
func (b *Body) Enabled() bool {
	return b.enabled
}

// SetEnabled toggles collider.
func (b *Body) SetEnabled(enabled bool) {
	b.enabled = enabled
}
