package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/scheduler"
)

type fakeOwner struct {
	id     uint32
	active bool
}

func (o *fakeOwner) ObjectID() uint32 { return o.id }
func (o *fakeOwner) IsActive() bool   { return o.active }

type fakeNav struct {
	enabled      bool
	destinations []geom.Vec3
}

func (n *fakeNav) SetDestination(p geom.Vec3) { n.destinations = append(n.destinations, p) }
func (n *fakeNav) IsActiveAndEnabled() bool   { return n.enabled }

type fakeLocator struct {
	pos     geom.Vec3
	present bool
	lookups int
}

func (l *fakeLocator) FindTagged(tag model.Tag) (geom.Vec3, bool) {
	l.lookups++
	if tag != model.TagAgent {
		return geom.Vec3{}, false
	}
	return l.pos, l.present
}

func newPursuit(t *testing.T) (*PursuitAI, *fakeOwner, *fakeNav, *fakeLocator, *scheduler.Scheduler) {
	t.Helper()
	owner := &fakeOwner{id: 100001, active: true}
	nav := &fakeNav{enabled: true}
	loc := &fakeLocator{pos: geom.V(1, 0.5, 1), present: true}
	sched := scheduler.New()
	return NewPursuitAI(owner, nav, loc, sched, 100*time.Millisecond), owner, nav, loc, sched
}

func TestPursuitAI_RetargetsEveryInterval(t *testing.T) {
	ai, _, nav, loc, sched := newPursuit(t)

	ai.Start()
	assert.Equal(t, model.IntentionFollow, ai.CurrentIntention())
	require.Len(t, nav.destinations, 1, "first retarget runs on start")

	loc.pos = geom.V(5, 0.5, 5)
	for range 5 {
		sched.Advance(20 * time.Millisecond)
	}
	require.Len(t, nav.destinations, 2)
	assert.Equal(t, geom.V(5, 0.5, 5), nav.destinations[1], "target re-resolved, not cached")
	assert.Equal(t, 2, loc.lookups)
	assert.Equal(t, 2, ai.Ticks())
}

func TestPursuitAI_MissingTargetSkipsTickButKeepsLooping(t *testing.T) {
	ai, _, nav, loc, sched := newPursuit(t)
	loc.present = false

	ai.Start()
	sched.Advance(100 * time.Millisecond)
	sched.Advance(100 * time.Millisecond)

	assert.Empty(t, nav.destinations)
	assert.Equal(t, 3, ai.Misses())
	assert.Equal(t, model.IntentionFollow, ai.CurrentIntention())

	loc.present = true
	sched.Advance(100 * time.Millisecond)
	assert.Len(t, nav.destinations, 1, "loop survived missing target")
}

func TestPursuitAI_DeactivatedOwnerEndsLoop(t *testing.T) {
	ai, owner, nav, _, sched := newPursuit(t)

	ai.Start()
	owner.active = false
	sched.Advance(100 * time.Millisecond)

	assert.Equal(t, model.IntentionIdle, ai.CurrentIntention())
	assert.Len(t, nav.destinations, 1)
	assert.Equal(t, 0, sched.Live())

	sched.Advance(time.Second)
	assert.Len(t, nav.destinations, 1)
}

func TestPursuitAI_DisabledNavigatorIsNotCommanded(t *testing.T) {
	ai, _, nav, _, _ := newPursuit(t)
	nav.enabled = false

	ai.Start()
	assert.Empty(t, nav.destinations)
	assert.Equal(t, 0, ai.Ticks())
}

func TestPursuitAI_StopIsIdempotent(t *testing.T) {
	ai, _, nav, _, sched := newPursuit(t)

	ai.Start()
	ai.Stop()
	ai.Stop()
	sched.Advance(time.Second)

	assert.Len(t, nav.destinations, 1)
	assert.Equal(t, 0, sched.Live())

	ai.Tick()
	assert.Len(t, nav.destinations, 1, "tick after stop does nothing")
}

func TestPursuitAI_RestartReplacesLoop(t *testing.T) {
	ai, _, _, _, sched := newPursuit(t)

	ai.Start()
	ai.Start()
	assert.Equal(t, 1, sched.Live())
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	reg := NewRegistry()
	ai, _, _, _, sched := newPursuit(t)

	reg.Register(100001, ai)
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, 1, sched.Live())

	c, err := reg.GetController(100001)
	require.NoError(t, err)
	assert.Equal(t, model.IntentionFollow, c.CurrentIntention())

	reg.Unregister(100001)
	reg.Unregister(100001)
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 0, sched.Live())
	assert.Equal(t, model.IntentionIdle, ai.CurrentIntention())

	_, err = reg.GetController(100001)
	assert.Error(t, err)
}

func TestRegistry_ReRegisterStopsPrevious(t *testing.T) {
	reg := NewRegistry()
	first, _, _, _, _ := newPursuit(t)
	second, _, _, _, _ := newPursuit(t)

	reg.Register(1, first)
	reg.Register(1, second)

	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, model.IntentionIdle, first.CurrentIntention())
	assert.Equal(t, model.IntentionFollow, second.CurrentIntention())
}

func TestDebugLoggingToggle(t *testing.T) {
	EnableDebugLogging(true)
	assert.True(t, IsDebugEnabled())
	EnableDebugLogging(false)
	assert.False(t, IsDebugEnabled())
}
