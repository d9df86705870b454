package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

const defaultLedgeReach = 8.0

// PatrolSystem turns patrolling badniks at walls and ledges and feeds their
// Input. Badniks with a script delegate the decision to it.
type PatrolSystem struct {
	ctx     *SimulationContext
	scripts map[ecs.Entity]*patrolScript
	failed  map[string]bool
}

func NewPatrolSystem(ctx *SimulationContext) *PatrolSystem {
	return &PatrolSystem{
		ctx:     ctx,
		scripts: map[ecs.Entity]*patrolScript{},
		failed:  map[string]bool{},
	}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	player, hasPlayer := s.playerPosition(w)

	ecs.ForEach3(w, component.PatrolComponent.Kind(), component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Patrol, a *component.Actor, t *component.Transform) {
		if a.Destroy {
			return
		}
		p.WallAhead = facingWall(a)
		p.LedgeAhead = a.Grounded && s.ledgeAhead(w, e, a, t, p)

		speed := p.Speed
		if p.Script != "" && !s.failed[p.Script] {
			rt, err := s.script(e, p.Script)
			if err != nil {
				s.failed[p.Script] = true
				s.ctx.warn("patrol script disabled", "entity", e, "script", p.Script, "err", err)
			} else {
				view := patrolView{tick: s.ctx.Tick, facing: a.Facing, wall: p.WallAhead, ledge: p.LedgeAhead, speed: speed}
				if hasPlayer {
					view.playerDX = player.X - t.X
					view.hasPlayer = true
				}
				cmd, err := rt.run(view)
				if err != nil {
					s.ctx.warn("patrol script error", "entity", e, "err", err)
				}
				if cmd.turn {
					a.Facing = -a.Facing
				}
				if cmd.speed != nil {
					speed = math.Max(*cmd.speed, 0)
				}
				s.drive(w, e, a, speed)
				return
			}
		}

		if p.WallAhead || p.LedgeAhead {
			a.Facing = -a.Facing
		}
		s.drive(w, e, a, speed)
	})
}

func (s *PatrolSystem) drive(w *ecs.World, e ecs.Entity, a *component.Actor, speed float64) {
	a.Physics.TopSpeed = speed
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	in.MoveX = 0
	if speed > 0 {
		in.MoveX = a.Facing
	}
}

func facingWall(a *component.Actor) bool {
	switch a.Wall {
	case component.HitBoth:
		return true
	case component.HitRight:
		return a.Facing > 0
	case component.HitLeft:
		return a.Facing < 0
	}
	return false
}

// ledgeAhead casts straight down just past the leading edge.
func (s *PatrolSystem) ledgeAhead(w *ecs.World, e ecs.Entity, a *component.Actor, t *component.Transform, p *component.Patrol) bool {
	reach := p.LedgeReach
	if reach <= 0 {
		reach = defaultLedgeReach
	}
	filter := defaultSensorFilter
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		filter = layer.ShapeFilter()
	}
	spec := component.SensorSpec{
		OriginOffset: cp.Vector{X: a.Facing * (a.Width/2 + 2)},
		CastAngleDeg: 270,
		CastLength:   a.Height/2 + reach,
	}
	return !CastSensor(s.ctx.Space, spec, t.Position(), a.Collision.AngleDeg, 0, filter).Hit
}

func (s *PatrolSystem) playerPosition(w *ecs.World) (cp.Vector, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position(), true
}

func (s *PatrolSystem) script(e ecs.Entity, path string) (*patrolScript, error) {
	if rt, ok := s.scripts[e]; ok && rt.path == path {
		return rt, nil
	}
	rt, err := loadPatrolScript(path)
	if err != nil {
		return nil, err
	}
	s.scripts[e] = rt
	return rt, nil
}

// Forget drops cached script state, for example after a hot reload.
func (s *PatrolSystem) Forget() {
	s.scripts = map[ecs.Entity]*patrolScript{}
	s.failed = map[string]bool{}
}
