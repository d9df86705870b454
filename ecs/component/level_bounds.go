package component

import "github.com/jakecoffman/cp"

// LevelBounds stores the stage extents. Actors falling below KillY are
// destroyed, or respawned at Spawn if they are the player.
type LevelBounds struct {
	Width  float64
	Height float64
	KillY  float64
	Spawn  cp.Vector
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
