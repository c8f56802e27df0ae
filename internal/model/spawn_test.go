package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/hordesim/internal/geom"
)

func TestSpawnPoint_SampleInsideBounds(t *testing.T) {
	sp := NewSpawnPoint("north", geom.V(10, 0, -20), 8, 4)
	rng := rand.New(rand.NewPCG(1, 2))
	b := sp.Bounds()

	for range 1000 {
		p := sp.Sample(rng)
		assert.True(t, b.Contains(p), "sample %v outside %v", p, b)
		assert.Equal(t, DefaultSpawnHeight, p.Y)
	}

	assert.Equal(t, geom.V(6, DefaultSpawnHeight, -22), b.Min)
	assert.Equal(t, geom.V(14, DefaultSpawnHeight, -18), b.Max)
}
