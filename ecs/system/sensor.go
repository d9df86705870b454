package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
	"github.com/milk9111/sensorstage/ecs/component"
)

// SensorCast returns the nearest hit along origin + dir*length. A miss is a
// normal result; degenerate input always misses.
func SensorCast(space *cp.Space, origin, dir cp.Vector, length float64, filter cp.ShapeFilter) component.SensorHit {
	if space == nil || length <= 0 {
		return component.SensorHit{}
	}
	n := dir.Length()
	if n == 0 {
		return component.SensorHit{}
	}
	dir = dir.Mult(1 / n)
	end := origin.Add(dir.Mult(length))

	info := space.SegmentQueryFirst(origin, end, 0, filter)
	// A ray starting on or inside a shape reports alpha 0 and no usable
	// normal; that is not ground.
	if info.Shape == nil || info.Alpha <= 0 || !finite(info.Normal) {
		return component.SensorHit{}
	}
	hit := component.SensorHit{
		Hit:      true,
		Point:    info.Point,
		Normal:   info.Normal,
		Distance: info.Alpha * length,
	}
	if id, ok := info.Shape.UserData.(uint64); ok {
		hit.Entity = id
	}
	return hit
}

// CastSensor casts spec from a body at pos rotated by bodyAngleDeg. extra
// lengthens the ray, for ground snapping.
func CastSensor(space *cp.Space, spec component.SensorSpec, pos cp.Vector, bodyAngleDeg, extra float64, filter cp.ShapeFilter) component.SensorHit {
	origin, dir := SensorRay(spec, pos, bodyAngleDeg)
	return SensorCast(space, origin, dir, spec.CastLength+extra, filter)
}

// SensorRay is the world-space origin and unit direction of spec.
func SensorRay(spec component.SensorSpec, pos cp.Vector, bodyAngleDeg float64) (cp.Vector, cp.Vector) {
	rot := cp.ForAngle(common.Deg2Rad(bodyAngleDeg))
	origin := pos.Add(spec.OriginOffset.Rotate(rot))
	dir := cp.ForAngle(common.Deg2Rad(bodyAngleDeg + spec.CastAngleDeg))
	return origin, dir
}

func finite(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
