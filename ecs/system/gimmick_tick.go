package system

import (
	"fmt"

	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// GimmickTickSystem binds newly spawned gimmicks and runs per-tick gimmick
// updates such as bridge settling and platform motion.
type GimmickTickSystem struct {
	ctx *SimulationContext
}

func NewGimmickTickSystem(ctx *SimulationContext) *GimmickTickSystem {
	return &GimmickTickSystem{ctx: ctx}
}

func (s *GimmickTickSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	BindGimmicks(w, s.ctx)
	ecs.ForEach(w, component.GimmickHostComponent.Kind(), func(_ ecs.Entity, host *component.GimmickHost) {
		if !host.Active() {
			return
		}
		if t, ok := host.Impl.(component.Ticker); ok {
			t.Tick(s.ctx.Tick)
		}
	})
}

// BindGimmicks resolves every unbound gimmick. A gimmick that cannot find
// its references is disabled and logged, never fatal.
func BindGimmicks(w *ecs.World, ctx *SimulationContext) int {
	bound := 0
	ecs.ForEach(w, component.GimmickHostComponent.Kind(), func(e ecs.Entity, host *component.GimmickHost) {
		if host.Bound || host.Disabled {
			return
		}
		if err := bindGimmick(w, ctx, e, host); err != nil {
			host.Deactivate()
			ctx.warn("gimmick disabled", "entity", e, "kind", host.Kind, "err", err)
			return
		}
		host.Bound = true
		bound++
	})
	return bound
}

func bindGimmick(w *ecs.World, ctx *SimulationContext, e ecs.Entity, host *component.GimmickHost) error {
	if host.Impl == nil {
		return fmt.Errorf("system: bind %s: no implementation", host.Kind)
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return component.ErrGimmickUnbound
	}
	host.Attach(t)

	env := component.GimmickEnv{Entity: uint64(e), Host: host, Transform: t}
	if ctx != nil {
		env.Hooks = ctx.Hooks
	}
	if solid, ok := ecs.Get(w, e, component.SolidComponent.Kind()); ok {
		env.Solid = solid
	}
	if actor, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok {
		env.Actor = actor
	}

	if host.Width <= 0 || host.Height <= 0 {
		switch {
		case env.Solid != nil && !env.Solid.Bounds().Empty():
			b := env.Solid.Bounds()
			c := b.Center().Sub(t.Position())
			host.Width, host.Height = b.Width(), b.Height()
			host.OffsetX, host.OffsetY = c.X, c.Y
		case env.Actor != nil:
			host.Width, host.Height = env.Actor.Width, env.Actor.Height
		}
	}

	if b, ok := host.Impl.(component.Binder); ok {
		if err := b.Bind(env); err != nil {
			return fmt.Errorf("system: bind %s: %w", host.Kind, err)
		}
	}
	if host.Source == component.ContactTrigger && (host.Width <= 0 || host.Height <= 0) {
		return fmt.Errorf("system: bind %s: trigger has no bounds", host.Kind)
	}
	return nil
}
