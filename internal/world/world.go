package world

import (
	"math"
	"slices"

	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Hit describes the first collider struck by a ray.
type Hit struct {
	Body     *Body
	Point    geom.Vec3
	Normal   geom.Vec3
	Distance float64
}

// Space is the registry of all bodies in one arena.
// It answers tag lookups, ray casts and overlap queries.
// Single-goroutine, owned by the simulation loop.
type Space struct {
	ids    *ObjectIDGenerator
	bodies map[uint32]*Body
	order  []uint32 // insertion order for deterministic queries
	agents []*NavAgent
}

// NewSpace creates empty space.
func NewSpace() *Space {
	return &Space{
		ids:    NewObjectIDGenerator(),
		bodies: make(map[uint32]*Body),
	}
}

// AddSphere registers moving sphere body.
func (s *Space) AddSphere(tag model.Tag, pos geom.Vec3, radius float64, data any) *Body {
	b := &Body{
		objectID: s.ids.NextDynamicID(),
		tag:      tag,
		shape:    ShapeSphere,
		position: pos,
		radius:   radius,
		enabled:  true,
		Data:     data,
	}
	s.add(b)
	return b
}

// AddBox registers static box body.
func (s *Space) AddBox(tag model.Tag, box geom.Box, data any) *Body {
	b := &Body{
		objectID: s.ids.NextStaticID(),
		tag:      tag,
		shape:    ShapeBox,
		position: box.Center(),
		box:      box,
		enabled:  true,
		Data:     data,
	}
	s.add(b)
	return b
}

func (s *Space) add(b *Body) {
	s.bodies[b.objectID] = b
	s.order = append(s.order, b.objectID)
}

// Remove unregisters body and its navigation agent. Unknown IDs are ignored.
func (s *Space) Remove(objectID uint32) {
	if _, ok := s.bodies[objectID]; !ok {
		return
	}
	delete(s.bodies, objectID)
	s.order = slices.DeleteFunc(s.order, func(id uint32) bool { return id == objectID })
	s.agents = slices.DeleteFunc(s.agents, func(a *NavAgent) bool { return a.body.objectID == objectID })
}

// Get returns body by ID.
func (s *Space) Get(objectID uint32) (*Body, bool) {
	b, ok := s.bodies[objectID]
	return b, ok
}

// Count returns number of registered bodies.
func (s *Space) Count() int {
	return len(s.bodies)
}

// FindTagged returns position of the first enabled body with tag.
// This is the explicit replacement for scene-wide tag lookups.
func (s *Space) FindTagged(tag model.Tag) (geom.Vec3, bool) {
	b := s.FindBody(tag)
	if b == nil {
		return geom.Vec3{}, false
	}
	return b.position, true
}

// FindBody returns first enabled body with tag or nil.
func (s *Space) FindBody(tag model.Tag) *Body {
	for _, id := range s.order {
		b := s.bodies[id]
		if b.enabled && b.tag == tag {
			return b
		}
	}
	return nil
}

// Raycast returns the closest enabled body hit by the ray within maxDist.
// Direction does not need to be normalized.
func (s *Space) Raycast(origin, dir geom.Vec3, maxDist float64) (Hit, bool) {
	dir = dir.Normalize()
	if dir == (geom.Vec3{}) {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1)}
	found := false

	for _, id := range s.order {
		b := s.bodies[id]
		if !b.enabled {
			continue
		}

		switch b.shape {
		case ShapeSphere:
			t, ok := geom.RaySphere(origin, dir, b.position, b.radius, maxDist)
			if !ok || t >= best.Distance {
				continue
			}
			p := origin.Add(dir.Scale(t))
			best = Hit{Body: b, Point: p, Normal: p.Sub(b.position).Normalize(), Distance: t}
			found = true
		case ShapeBox:
			t, n, ok := geom.RayBox(origin, dir, b.box, maxDist)
			if !ok || t >= best.Distance {
				continue
			}
			best = Hit{Body: b, Point: origin.Add(dir.Scale(t)), Normal: n, Distance: t}
			found = true
		}
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}

// Overlap returns enabled bodies with tag whose position lies within radius
// of center, in registration order.
func (s *Space) Overlap(center geom.Vec3, radius float64, tag model.Tag) []*Body {
	var out []*Body
	r2 := radius * radius
	for _, id := range s.order {
		b := s.bodies[id]
		if !b.enabled || b.tag != tag {
			continue
		}
		if b.position.DistanceSquared(center) <= r2 {
			out = append(out, b)
		}
	}
	return out
}
