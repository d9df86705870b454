package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/common"
)

// SolidPart is one body and its shape. Static parts share the space's
// static body.
type SolidPart struct {
	Body  *cp.Body
	Shape *cp.Shape
}

// Solid is geometry an entity contributes to the cp space for sensors to hit.
type Solid struct {
	Parts     []SolidPart
	Kinematic bool
	Removed   bool
	Space     *cp.Space
}

// MovePart places a kinematic part and refreshes its shape for queries.
func (s *Solid) MovePart(i int, pos cp.Vector, angleDeg float64) {
	if s == nil || s.Removed || i < 0 || i >= len(s.Parts) {
		return
	}
	p := s.Parts[i]
	if p.Body == nil || p.Body.GetType() != cp.BODY_KINEMATIC {
		return
	}
	p.Body.SetPosition(pos)
	p.Body.SetAngle(common.Deg2Rad(angleDeg))
	refreshShape(s.Space, p.Shape)
}

// refreshShape re-adds a shape so the space recomputes its cached geometry
// and index entry from the body's current transform.
func refreshShape(space *cp.Space, shape *cp.Shape) {
	if space == nil || shape == nil || !space.ContainsShape(shape) {
		return
	}
	space.RemoveShape(shape)
	space.AddShape(shape)
}

// Translate moves every kinematic part by d.
func (s *Solid) Translate(d cp.Vector) {
	if s == nil {
		return
	}
	for i, p := range s.Parts {
		if p.Body == nil {
			continue
		}
		s.MovePart(i, p.Body.Position().Add(d), common.Rad2Deg(p.Body.Angle()))
	}
}

// Remove takes every shape out of the space. It is safe to call twice.
func (s *Solid) Remove() {
	if s == nil || s.Removed {
		return
	}
	s.Removed = true
	if s.Space == nil {
		return
	}
	for _, p := range s.Parts {
		if p.Shape != nil && s.Space.ContainsShape(p.Shape) {
			s.Space.RemoveShape(p.Shape)
		}
		if p.Body != nil && p.Body != s.Space.StaticBody && s.Space.ContainsBody(p.Body) {
			s.Space.RemoveBody(p.Body)
		}
	}
}

// Bounds is the union of the parts' bounding boxes.
func (s *Solid) Bounds() Bounds {
	if s == nil || len(s.Parts) == 0 {
		return Bounds{}
	}
	out := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range s.Parts {
		if p.Shape == nil {
			continue
		}
		bb := p.Shape.BB()
		out.MinX = math.Min(out.MinX, bb.L)
		out.MinY = math.Min(out.MinY, bb.B)
		out.MaxX = math.Max(out.MaxX, bb.R)
		out.MaxY = math.Max(out.MaxY, bb.T)
	}
	if math.IsInf(out.MinX, 1) {
		return Bounds{}
	}
	return out
}

var SolidComponent = NewComponent[Solid]()
