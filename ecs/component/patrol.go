package component

// Patrol drives a badnik back and forth, turning at walls and ledges.
// Script names an optional tengo program that replaces the default rule.
type Patrol struct {
	Speed      float64
	Script     string
	LedgeReach float64

	WallAhead  bool
	LedgeAhead bool
}

var PatrolComponent = NewComponent[Patrol]()
