package gimmick

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
)

// Side is one of the eight faces of a gimmick box.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
	SideTopLeft
	SideTopRight
	SideBottomLeft
	SideBottomRight
)

var sideNames = []string{"top", "bottom", "left", "right", "top_left", "top_right", "bottom_left", "bottom_right"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "unknown"
}

func ParseSide(v string) (Side, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return SideTop, nil
	}
	for i, name := range sideNames {
		if name == v {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("gimmick: unknown side %q", v)
}

// Direction is the outward axis of the side with unit components.
func (s Side) Direction() cp.Vector {
	switch s {
	case SideBottom:
		return cp.Vector{Y: -1}
	case SideLeft:
		return cp.Vector{X: -1}
	case SideRight:
		return cp.Vector{X: 1}
	case SideTopLeft:
		return cp.Vector{X: -1, Y: 1}
	case SideTopRight:
		return cp.Vector{X: 1, Y: 1}
	case SideBottomLeft:
		return cp.Vector{X: -1, Y: -1}
	case SideBottomRight:
		return cp.Vector{X: 1, Y: -1}
	}
	return cp.Vector{Y: 1}
}

func (s Side) Diagonal() bool {
	return s >= SideTopLeft
}

// Faces reports whether target's centre is on side s of b.
func (s Side) Faces(b, target component.Bounds) bool {
	switch s {
	case SideTop:
		return b.TargetIsToTheTop(target) && b.TargetIsWithinHorizontalBounds(target)
	case SideBottom:
		return b.TargetIsToTheBottom(target) && b.TargetIsWithinHorizontalBounds(target)
	case SideLeft:
		return b.TargetIsToTheLeft(target) && b.TargetIsWithinVerticalBounds(target)
	case SideRight:
		return b.TargetIsToTheRight(target) && b.TargetIsWithinVerticalBounds(target)
	}
	d := s.Direction()
	rel := target.Center().Sub(b.Center())
	return rel.Dot(d) > 0
}
