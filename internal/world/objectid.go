package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for world bodies.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0000FFFF: Reserved (0 = invalid)
//	0x00010000 - 0x0001869F: Static geometry (walls)
//	0x000186A0 - ...:        Dynamic bodies (agents, zombies, pellets), start at 100000
type ObjectIDGenerator struct {
	nextStaticID  atomic.Uint32
	nextDynamicID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextStaticID.Store(0x00010000)
	gen.nextDynamicID.Store(100000)
	return gen
}

// NextStaticID generates next ID for static geometry.
func (g *ObjectIDGenerator) NextStaticID() uint32 {
	return g.nextStaticID.Add(1)
}

// NextDynamicID generates next ID for moving bodies.
func (g *ObjectIDGenerator) NextDynamicID() uint32 {
	return g.nextDynamicID.Add(1)
}
