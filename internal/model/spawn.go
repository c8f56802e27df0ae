package model

import (
	"math/rand/v2"

	"github.com/udisondev/hordesim/internal/geom"
)

// DefaultSpawnHeight is Y coordinate for spawned zombies.
const DefaultSpawnHeight = 1.5

// SpawnPoint is a rectangular area on the XZ plane zombies appear in.
type SpawnPoint struct {
	Name    string    `yaml:"name"`
	Center  geom.Vec3 `yaml:"center"`
	ExtentX float64   `yaml:"extent_x"` // full width along X
	ExtentZ float64   `yaml:"extent_z"` // full depth along Z
}

// NewSpawnPoint creates spawn point.
func NewSpawnPoint(name string, center geom.Vec3, extentX, extentZ float64) SpawnPoint {
	return SpawnPoint{Name: name, Center: center, ExtentX: extentX, ExtentZ: extentZ}
}

// Bounds returns sampling box at spawn height (zero thickness on Y).
func (s SpawnPoint) Bounds() geom.Box {
	return geom.Box{
		Min: geom.V(s.Center.X-s.ExtentX/2, DefaultSpawnHeight, s.Center.Z-s.ExtentZ/2),
		Max: geom.V(s.Center.X+s.ExtentX/2, DefaultSpawnHeight, s.Center.Z+s.ExtentZ/2),
	}
}

// Sample returns uniformly distributed position inside the area.
func (s SpawnPoint) Sample(rng *rand.Rand) geom.Vec3 {
	b := s.Bounds()
	return geom.V(
		b.Min.X+rng.Float64()*(b.Max.X-b.Min.X),
		DefaultSpawnHeight,
		b.Min.Z+rng.Float64()*(b.Max.Z-b.Min.Z),
	)
}
