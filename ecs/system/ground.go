package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
	"github.com/milk9111/sensorstage/ecs/component"
)

// ResolveGround combines a floor sensor pair into one CollisionInfo.
// When neither sensor hits the body is airborne and the previous angle is
// kept so that landing starts from the last known slope.
func ResolveGround(left, right component.SensorHit, previous component.CollisionInfo) component.CollisionInfo {
	info := component.CollisionInfo{Left: left, Right: right}

	switch {
	case left.Hit && right.Hit:
		info.HitSide = component.HitBoth
		info.AngleDeg = SlopeAngle(left.Point, right.Point)
		info.Hit = left
		if right.Distance < left.Distance {
			info.Hit = right
		}
	case left.Hit:
		info.HitSide = component.HitLeft
		info.AngleDeg = NormalAngle(left.Normal)
		info.Hit = left
	case right.Hit:
		info.HitSide = component.HitRight
		info.AngleDeg = NormalAngle(right.Normal)
		info.Hit = right
	default:
		info.HitSide = component.HitNone
		info.GroundMode = component.GroundNone
		info.AngleDeg = QuantizeAngle(previous.AngleDeg)
		return info
	}

	info.GroundMode = component.GroundModeFromAngle(info.AngleDeg)
	return info
}

// SlopeAngle is the direction from a to b in degrees, in [0,360).
func SlopeAngle(a, b cp.Vector) float64 {
	d := b.Sub(a)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return QuantizeAngle(common.Rad2Deg(math.Atan2(d.Y, d.X)))
}

// NormalAngle is the surface angle implied by a normal: a floor normal
// pointing straight up is 0.
func NormalAngle(n cp.Vector) float64 {
	if (n.X == 0 && n.Y == 0) || !finite(n) {
		return 0
	}
	return QuantizeAngle(common.Rad2Deg(math.Atan2(n.Y, n.X)) - 90)
}

// QuantizeAngle normalizes to [0,360) and rounds so repeated snapshots of
// the same contact compare equal.
func QuantizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	a := common.RoundTo(common.NormalizeDegrees(deg), common.AnglePrecision)
	if a >= 360 {
		a = 0
	}
	return a
}
