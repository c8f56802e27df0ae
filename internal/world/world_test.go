package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

func TestSpace_FindTagged(t *testing.T) {
	s := NewSpace()

	_, ok := s.FindTagged(model.TagAgent)
	assert.False(t, ok, "empty space has no agent")

	agent := s.AddSphere(model.TagAgent, geom.V(1, 0.5, 2), 0.5, nil)
	pos, ok := s.FindTagged(model.TagAgent)
	require.True(t, ok)
	assert.Equal(t, geom.V(1, 0.5, 2), pos)

	agent.SetPosition(geom.V(3, 0.5, 3))
	pos, _ = s.FindTagged(model.TagAgent)
	assert.Equal(t, geom.V(3, 0.5, 3), pos, "lookup must see current position")

	agent.SetEnabled(false)
	_, ok = s.FindTagged(model.TagAgent)
	assert.False(t, ok, "disabled body is invisible to lookups")
}

func TestSpace_RaycastClosestWins(t *testing.T) {
	s := NewSpace()
	far := s.AddSphere(model.TagZombie, geom.V(0, 0, 20), 1, "far")
	near := s.AddSphere(model.TagZombie, geom.V(0, 0, 10), 1, "near")
	s.AddBox(model.TagWall, geom.BoxAround(geom.V(0, 0, 30), geom.V(10, 10, 1)), nil)

	hit, ok := s.Raycast(geom.Zero(), geom.V(0, 0, 1), 100)
	require.True(t, ok)
	assert.Same(t, near, hit.Body)
	assert.InDelta(t, 9.0, hit.Distance, 1e-9)
	assert.InDelta(t, -1.0, hit.Normal.Z, 1e-9)

	near.SetEnabled(false)
	hit, ok = s.Raycast(geom.Zero(), geom.V(0, 0, 1), 100)
	require.True(t, ok)
	assert.Same(t, far, hit.Body)

	far.SetEnabled(false)
	hit, ok = s.Raycast(geom.Zero(), geom.V(0, 0, 1), 100)
	require.True(t, ok)
	assert.Equal(t, model.TagWall, hit.Body.Tag())
	assert.InDelta(t, 29.5, hit.Distance, 1e-9)
	assert.Equal(t, geom.V(0, 0, -1), hit.Normal)
}

func TestSpace_RaycastRespectsMaxDistance(t *testing.T) {
	s := NewSpace()
	s.AddSphere(model.TagZombie, geom.V(0, 0, 50), 1, nil)

	_, ok := s.Raycast(geom.Zero(), geom.V(0, 0, 1), 10)
	assert.False(t, ok)

	_, ok = s.Raycast(geom.Zero(), geom.V(0, 0, -1), 100)
	assert.False(t, ok, "body behind the ray")

	_, ok = s.Raycast(geom.Zero(), geom.Zero(), 100)
	assert.False(t, ok, "zero direction")
}

func TestSpace_RemoveAndOverlap(t *testing.T) {
	s := NewSpace()
	a := s.AddSphere(model.TagZombie, geom.V(1, 0, 0), 0.5, nil)
	b := s.AddSphere(model.TagZombie, geom.V(5, 0, 0), 0.5, nil)
	s.AddSphere(model.TagPellet, geom.V(1, 0, 0), 0.5, nil)

	got := s.Overlap(geom.Zero(), 2, model.TagZombie)
	require.Len(t, got, 1)
	assert.Same(t, a, got[0])

	assert.Len(t, s.Overlap(geom.Zero(), 10, model.TagZombie), 2)

	s.Remove(a.ObjectID())
	s.Remove(a.ObjectID())
	_, ok := s.Get(a.ObjectID())
	assert.False(t, ok)
	assert.Equal(t, 2, s.Count())

	got = s.Overlap(geom.Zero(), 10, model.TagZombie)
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
}

func TestNavAgent_Step(t *testing.T) {
	s := NewSpace()
	body := s.AddSphere(model.TagZombie, geom.V(0, 1.5, 0), 0.5, nil)
	nav := s.AddNavAgent(body, 5)

	s.Step(1)
	assert.Equal(t, geom.V(0, 1.5, 0), body.Position(), "no destination yet")

	nav.SetDestination(geom.V(0, 0.5, 20))
	s.Step(1)
	assert.InDelta(t, 5.0, body.Position().Z, 1e-9)
	assert.Equal(t, 1.5, body.Position().Y, "height kept")

	nav.SetStopped(true)
	s.Step(1)
	assert.InDelta(t, 5.0, body.Position().Z, 1e-9)

	nav.SetStopped(false)
	for range 10 {
		s.Step(1)
	}
	assert.InDelta(t, 20.0, body.Position().Z, 1e-9, "no overshoot")

	nav.Disable()
	assert.False(t, nav.IsActiveAndEnabled())
	nav.SetDestination(geom.V(100, 0, 0))
	_, has := nav.Destination()
	assert.False(t, has)
}

func TestSpace_RemoveDropsNavAgent(t *testing.T) {
	s := NewSpace()
	body := s.AddSphere(model.TagZombie, geom.Zero(), 0.5, nil)
	nav := s.AddNavAgent(body, 1)
	nav.SetDestination(geom.V(10, 0, 0))

	s.Remove(body.ObjectID())
	s.Step(1)
	assert.Equal(t, geom.Zero(), body.Position())
}
