package common

const (
	// TickRate is the fixed physics rate every tick-counted timer is expressed in.
	TickRate = 60

	// AnglePrecision is the number of decimals contact angles are rounded to.
	AnglePrecision = 3

	// BoundsPrecision is the number of decimals side tests round edges to.
	BoundsPrecision = 2
)

// Collision categories used for cp shape filters.
const (
	CategoryTerrain uint = 1 << iota
	CategoryPlatform
	CategoryBreakable
)

const CategoryAll = CategoryTerrain | CategoryPlatform | CategoryBreakable
