package system

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
)

var (
	ErrDegeneratePolygon = errors.New("system: degenerate polygon")
	ErrNilSpace          = errors.New("system: space is nil")
)

// NewSpace returns an empty collision space. Actors integrate themselves, so
// the space is only ever queried, never stepped.
func NewSpace() *cp.Space {
	return cp.NewSpace()
}

func solidFilter(category uint) cp.ShapeFilter {
	if category == 0 {
		category = 1
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES)
}

// AddTerrainPolygon adds a static convex polygon. Vertices may be given in
// either winding.
func AddTerrainPolygon(space *cp.Space, verts []cp.Vector, category uint) (*cp.Shape, error) {
	if space == nil {
		return nil, ErrNilSpace
	}
	if len(verts) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegeneratePolygon, len(verts))
	}
	area := signedArea(verts)
	if area == 0 {
		return nil, fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	ccw := make([]cp.Vector, len(verts))
	copy(ccw, verts)
	if area < 0 {
		for i, j := 0, len(ccw)-1; i < j; i, j = i+1, j-1 {
			ccw[i], ccw[j] = ccw[j], ccw[i]
		}
	}
	shape := cp.NewPolyShapeRaw(space.StaticBody, len(ccw), ccw, 0)
	shape.SetFilter(solidFilter(category))
	shape.UserData = uint64(0)
	space.AddShape(shape)
	return shape, nil
}

// AddTerrainSegment adds a static segment, useful for thin ledges and curves.
func AddTerrainSegment(space *cp.Space, a, b cp.Vector, radius float64, category uint) (*cp.Shape, error) {
	if space == nil {
		return nil, ErrNilSpace
	}
	if a.Equal(b) {
		return nil, fmt.Errorf("%w: zero length segment", ErrDegeneratePolygon)
	}
	shape := cp.NewSegment(space.StaticBody, a, b, radius)
	shape.SetFilter(solidFilter(category))
	shape.UserData = uint64(0)
	space.AddShape(shape)
	return shape, nil
}

func signedArea(verts []cp.Vector) float64 {
	var sum float64
	for i := range verts {
		j := (i + 1) % len(verts)
		sum += verts[i].Cross(verts[j])
	}
	return sum / 2
}

// NewBoxSolid adds a box owned by an entity. Kinematic boxes can be moved
// with Solid.MovePart.
func NewBoxSolid(space *cp.Space, owner uint64, center cp.Vector, w, h float64, category uint, kinematic bool) (*component.Solid, error) {
	return NewBoxesSolid(space, owner, []cp.Vector{center}, w, h, category, kinematic)
}

// NewBoxesSolid adds one box per centre, all owned by the same entity.
func NewBoxesSolid(space *cp.Space, owner uint64, centers []cp.Vector, w, h float64, category uint, kinematic bool) (*component.Solid, error) {
	if space == nil {
		return nil, ErrNilSpace
	}
	if w <= 0 || h <= 0 || len(centers) == 0 {
		return nil, fmt.Errorf("%w: box %vx%v", ErrDegeneratePolygon, w, h)
	}
	solid := &component.Solid{Kinematic: kinematic, Space: space}
	for _, c := range centers {
		var part component.SolidPart
		if kinematic {
			body := space.AddBody(cp.NewKinematicBody())
			body.SetPosition(c)
			part.Body = body
			part.Shape = cp.NewBox(body, w, h, 0)
		} else {
			part.Body = space.StaticBody
			part.Shape = cp.NewBox2(space.StaticBody, cp.BB{L: c.X - w/2, B: c.Y - h/2, R: c.X + w/2, T: c.Y + h/2}, 0)
		}
		part.Shape.SetFilter(solidFilter(category))
		part.Shape.UserData = owner
		space.AddShape(part.Shape)
		solid.Parts = append(solid.Parts, part)
	}
	return solid, nil
}
