package model

// Tag classifies bodies in the world for lookups and hit resolution.
type Tag string

const (
	TagAgent  Tag = "Agent"
	TagZombie Tag = "Zombie"
	TagWall   Tag = "Wall"
	TagPellet Tag = "Pellet"
	TagHunter Tag = "Hunter"
)
