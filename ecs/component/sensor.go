package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// GroundMode is the cardinal direction a body's "down" points toward.
type GroundMode int

const (
	GroundFloor GroundMode = iota
	GroundRightWall
	GroundCeiling
	GroundLeftWall
	GroundNone
)

func (m GroundMode) String() string {
	switch m {
	case GroundFloor:
		return "floor"
	case GroundRightWall:
		return "right_wall"
	case GroundCeiling:
		return "ceiling"
	case GroundLeftWall:
		return "left_wall"
	}
	return "none"
}

// GroundModeFromAngle maps a normalized angle to its 90 degree quadrant.
func GroundModeFromAngle(angleDeg float64) GroundMode {
	q := int(math.Floor(angleDeg/90)) % 4
	if q < 0 {
		q += 4
	}
	return GroundMode(q)
}

// HitSide records which of a sensor pair found geometry.
type HitSide int

const (
	HitNone HitSide = iota
	HitLeft
	HitRight
	HitBoth
)

func (s HitSide) String() string {
	switch s {
	case HitLeft:
		return "left"
	case HitRight:
		return "right"
	case HitBoth:
		return "both"
	}
	return "none"
}

// SensorSpec is the immutable configuration of one ray. OriginOffset and
// CastAngleDeg are relative to the body's current ground angle.
type SensorSpec struct {
	OriginOffset cp.Vector
	CastAngleDeg float64
	CastLength   float64
}

// SensorHit is the result of a single cast. Entity is the owner of the hit
// shape, zero for level terrain.
type SensorHit struct {
	Hit      bool
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
	Entity   uint64
}

// CollisionInfo is the resolved ground contact of a sensor pair.
type CollisionInfo struct {
	AngleDeg   float64
	GroundMode GroundMode
	HitSide    HitSide
	Hit        SensorHit
	Left       SensorHit
	Right      SensorHit
}

// InContact reports whether either sensor found ground.
func (c CollisionInfo) InContact() bool {
	return c.HitSide != HitNone
}

// SensorRig is the full set of rays a moving body casts every tick.
type SensorRig struct {
	FloorLeft    SensorSpec
	FloorRight   SensorSpec
	CeilingLeft  SensorSpec
	CeilingRight SensorSpec
	WallLeft     SensorSpec
	WallRight    SensorSpec
	// GroundSnap extends floor rays while grounded so bodies follow slopes
	// and small steps down instead of popping airborne.
	GroundSnap float64
}

// NewSensorRig lays rays out symmetrically around a body of the given size.
// Floor and ceiling rays start one unit inside the sides so a body pressed
// flush against a wall never casts from the wall's face.
func NewSensorRig(width, height float64) SensorRig {
	hw, hh := width/2, height/2
	fx := hw - 1
	if fx < 0 {
		fx = 0
	}
	return SensorRig{
		FloorLeft:    SensorSpec{OriginOffset: cp.Vector{X: -fx}, CastAngleDeg: 270, CastLength: hh},
		FloorRight:   SensorSpec{OriginOffset: cp.Vector{X: fx}, CastAngleDeg: 270, CastLength: hh},
		CeilingLeft:  SensorSpec{OriginOffset: cp.Vector{X: -fx}, CastAngleDeg: 90, CastLength: hh},
		CeilingRight: SensorSpec{OriginOffset: cp.Vector{X: fx}, CastAngleDeg: 90, CastLength: hh},
		WallLeft:     SensorSpec{CastAngleDeg: 180, CastLength: hw + 1},
		WallRight:    SensorSpec{CastAngleDeg: 0, CastLength: hw + 1},
		GroundSnap:   hh / 2,
	}
}
