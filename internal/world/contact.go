package world

import (
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Touches reports whether two enabled bodies overlap. Box pairs never touch.
func Touches(a, b *Body) bool {
	if !a.enabled || !b.enabled {
		return false
	}

	switch {
	case a.shape == ShapeSphere && b.shape == ShapeSphere:
		r := a.radius + b.radius
		return a.position.DistanceSquared(b.position) <= r*r
	case a.shape == ShapeSphere && b.shape == ShapeBox:
		return sphereBox(a, b)
	case a.shape == ShapeBox && b.shape == ShapeSphere:
		return sphereBox(b, a)
	}
	return false
}

func sphereBox(sphere, box *Body) bool {
	closest := box.box.ClosestPoint(sphere.position)
	return closest.DistanceSquared(sphere.position) <= sphere.radius*sphere.radius
}

// Contacts returns enabled bodies with tag touching b, in registration order.
func (s *Space) Contacts(b *Body, tag model.Tag) []*Body {
	var out []*Body
	for _, id := range s.order {
		other := s.bodies[id]
		if other == b || other.tag != tag {
			continue
		}
		if Touches(b, other) {
			out = append(out, other)
		}
	}
	return out
}

// AddWalls encloses the square floor [-halfExtent, halfExtent] on X and Z
// with four wall boxes resting on y=0.
func (s *Space) AddWalls(halfExtent, thickness, height float64) []*Body {
	span := 2*halfExtent + 2*thickness
	off := halfExtent + thickness/2
	y := height / 2

	return []*Body{
		s.AddBox(model.TagWall, geom.BoxAround(geom.V(0, y, off), geom.V(span, height, thickness)), nil),
		s.AddBox(model.TagWall, geom.BoxAround(geom.V(0, y, -off), geom.V(span, height, thickness)), nil),
		s.AddBox(model.TagWall, geom.BoxAround(geom.V(off, y, 0), geom.V(thickness, height, span)), nil),
		s.AddBox(model.TagWall, geom.BoxAround(geom.V(-off, y, 0), geom.V(thickness, height, span)), nil),
	}
}
