package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
)

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// BoundsAround builds a box of size w x h centred at c.
func BoundsAround(c cp.Vector, w, h float64) Bounds {
	return Bounds{MinX: c.X - w/2, MinY: c.Y - h/2, MaxX: c.X + w/2, MaxY: c.Y + h/2}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Center() cp.Vector {
	return cp.Vector{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

func (b Bounds) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Overlaps reports strict overlap; touching edges do not count.
func (b Bounds) Overlaps(o Bounds) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Expand grows the box by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

func (b Bounds) Translate(v cp.Vector) Bounds {
	return Bounds{MinX: b.MinX + v.X, MinY: b.MinY + v.Y, MaxX: b.MaxX + v.X, MaxY: b.MaxY + v.Y}
}

func round(v float64) float64 {
	return common.RoundTo(v, common.BoundsPrecision)
}

// TargetIsWithinHorizontalBounds reports whether the target's centre lies
// between b's left and right edges.
func (b Bounds) TargetIsWithinHorizontalBounds(target Bounds) bool {
	x := round(target.Center().X)
	return x >= round(b.MinX) && x <= round(b.MaxX)
}

func (b Bounds) TargetIsWithinVerticalBounds(target Bounds) bool {
	y := round(target.Center().Y)
	return y >= round(b.MinY) && y <= round(b.MaxY)
}

func (b Bounds) TargetIsToTheTop(target Bounds) bool {
	return round(target.Center().Y) > round(b.MaxY)
}

func (b Bounds) TargetIsToTheBottom(target Bounds) bool {
	return round(target.Center().Y) < round(b.MinY)
}

func (b Bounds) TargetIsToTheLeft(target Bounds) bool {
	return round(target.Center().X) < round(b.MinX)
}

func (b Bounds) TargetIsToTheRight(target Bounds) bool {
	return round(target.Center().X) > round(b.MaxX)
}
