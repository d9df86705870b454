package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/system"
	"github.com/milk9111/sensorstage/levels"
	"github.com/milk9111/sensorstage/sim"
)

// view maps Y-up world coordinates onto the screen around the camera.
type view struct {
	camX, camY float64
	w, h       float64
}

func (v view) point(x, y float64) (float32, float32) {
	return float32(x - v.camX + v.w/2), float32(v.h/2 - (y - v.camY))
}

func (v view) line(dst *ebiten.Image, a, b cp.Vector, width float32, clr color.Color) {
	x0, y0 := v.point(a.X, a.Y)
	x1, y1 := v.point(b.X, b.Y)
	vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
}

func (v view) rect(dst *ebiten.Image, b component.Bounds, width float32, clr color.Color) {
	x, y := v.point(b.MinX, b.MaxY)
	vector.StrokeRect(dst, x, y, float32(b.Width()), float32(b.Height()), width, clr, false)
}

func (v view) drawTerrain(dst *ebiten.Image, stage *levels.Stage) {
	if stage == nil {
		return
	}
	for _, t := range stage.Terrain {
		switch {
		case len(t.Polygon) > 0:
			for i := range t.Polygon {
				a := t.Polygon[i]
				b := t.Polygon[(i+1)%len(t.Polygon)]
				v.line(dst, cp.Vector{X: a[0], Y: a[1]}, cp.Vector{X: b[0], Y: b[1]}, 2, colornames.Forestgreen)
			}
		case t.Box != nil:
			v.rect(dst, component.Bounds{MinX: t.Box.X, MinY: t.Box.Y, MaxX: t.Box.X + t.Box.W, MaxY: t.Box.Y + t.Box.H}, 2, colornames.Forestgreen)
		case t.Segment != nil:
			v.line(dst, cp.Vector{X: t.Segment.A.X, Y: t.Segment.A.Y}, cp.Vector{X: t.Segment.B.X, Y: t.Segment.B.Y}, float32(2+t.Segment.Radius), colornames.Forestgreen)
		}
	}
}

func (v view) drawSolids(dst *ebiten.Image, s *sim.Sim) {
	ecs.ForEach(s.World(), component.SolidComponent.Kind(), func(_ ecs.Entity, solid *component.Solid) {
		if solid.Removed {
			return
		}
		for _, p := range solid.Parts {
			bb := p.Shape.BB()
			v.rect(dst, component.Bounds{MinX: bb.L, MinY: bb.B, MaxX: bb.R, MaxY: bb.T}, 1, colornames.Sandybrown)
		}
	})
}

func stateColor(state component.ContactState, active bool) color.Color {
	if !active {
		return colornames.Dimgray
	}
	switch state {
	case component.ContactEnter:
		return colornames.Yellow
	case component.ContactStay:
		return colornames.Limegreen
	case component.ContactExit:
		return colornames.Orangered
	}
	return colornames.Lightslategray
}

func (v view) drawGimmicks(dst *ebiten.Image, gimmicks []sim.GimmickSnapshot) {
	for _, g := range gimmicks {
		if g.Source == component.ContactGround {
			continue
		}
		v.rect(dst, g.Bounds, 1, stateColor(g.State, g.Active))
	}
}

func actorColor(kind component.ActorKind) color.Color {
	switch kind {
	case component.ActorBadnik:
		return colornames.Crimson
	case component.ActorRing:
		return colornames.Gold
	}
	return colornames.Dodgerblue
}

func (v view) drawActors(dst *ebiten.Image, s *sim.Sim, sensors bool) {
	w := s.World()
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Actor, t *component.Transform) {
		v.rect(dst, a.Bounds(t), 2, actorColor(a.Kind))
		if !sensors || a.Kind == component.ActorRing {
			return
		}
		angle := 0.0
		if a.Grounded {
			angle = a.Collision.AngleDeg
		}
		pos := t.Position()
		for _, spec := range []component.SensorSpec{a.Rig.FloorLeft, a.Rig.FloorRight, a.Rig.WallLeft, a.Rig.WallRight} {
			origin, dir := system.SensorRay(spec, pos, angle)
			v.line(dst, origin, origin.Add(dir.Mult(spec.CastLength)), 1, colornames.Lightpink)
		}
		for _, hit := range []component.SensorHit{a.Collision.Left, a.Collision.Right} {
			if !hit.Hit {
				continue
			}
			x, y := v.point(hit.Point.X, hit.Point.Y)
			vector.StrokeRect(dst, x-2, y-2, 4, 4, 1, colornames.White, false)
		}
	})
}
