package system

import (
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// ContactSystem dispatches Enter, Stay and Exit between every actor and
// every gimmick in spawn order, then advances pending contact downgrades.
type ContactSystem struct {
	ctx *SimulationContext
}

func NewContactSystem(ctx *SimulationContext) *ContactSystem {
	return &ContactSystem{ctx: ctx}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	s.ctx.RefreshActors(w)
	gimmicks := w.Query(component.GimmickHostComponent.Kind())

	for _, ge := range gimmicks {
		host, _ := ecs.Get(w, ge, component.GimmickHostComponent.Kind())
		if !host.Active() {
			continue
		}
		for _, ae := range s.ctx.Actors() {
			if ae == ge {
				continue
			}
			ref, ok := s.ctx.Ref(w, ae)
			if !ok || ref.Actor.Kind == component.ActorRing {
				continue
			}
			s.dispatch(ge, host, ref)
			if !host.Active() {
				break
			}
		}
		for _, id := range host.Record.Actors() {
			if !w.IsAlive(ecs.Entity(id)) {
				host.Record.Forget(id)
			}
		}
	}

	for _, ge := range gimmicks {
		if host, ok := ecs.Get(w, ge, component.GimmickHostComponent.Kind()); ok {
			host.Record.Advance(s.ctx.Tick)
		}
	}
}

func (s *ContactSystem) dispatch(ge ecs.Entity, host *component.GimmickHost, ref *component.ActorRef) {
	bounds := ref.Bounds()
	gone := ref.Actor.Destroy || ref.Actor.Dead
	valid := !gone && Overlapping(host, uint64(ge), ref) && host.Impl.IsCollisionValid(ref, bounds)
	state := host.Record.StateFor(ref.ID)

	switch {
	case valid && !state.Touching():
		if host.Record.Contact(ref.ID).Begin(s.ctx.Tick) {
			s.notify(ge, host, ref, component.ContactEnter)
			host.Impl.OnEnter(ref)
		}
	case valid:
		if host.Record.Contact(ref.ID).Continue() {
			s.notify(ge, host, ref, component.ContactStay)
			host.Impl.OnStay(ref)
		}
	case state.Touching():
		if host.Record.Contact(ref.ID).End(s.ctx.Tick) {
			s.notify(ge, host, ref, component.ContactExit)
			host.Impl.OnExit(ref)
		}
	}
}

func (s *ContactSystem) notify(ge ecs.Entity, host *component.GimmickHost, ref *component.ActorRef, state component.ContactState) {
	s.ctx.Hooks.ContactChanged(s.ctx.Tick, uint64(ge), host.Kind, ref.ID, state)
	s.ctx.debug("contact", "tick", s.ctx.Tick, "gimmick", ge, "kind", host.Kind, "actor", ref.ID, "state", state)
}

// Overlapping reports whether ref touches the gimmick this tick according to
// its contact source.
func Overlapping(host *component.GimmickHost, gimmick uint64, ref *component.ActorRef) bool {
	if host == nil || ref == nil || ref.Actor == nil {
		return false
	}
	switch host.Source {
	case component.ContactGround:
		c := ref.Actor.Collision
		if !ref.Actor.Grounded {
			return false
		}
		return (c.Left.Hit && c.Left.Entity == gimmick) || (c.Right.Hit && c.Right.Entity == gimmick)
	default:
		return host.Bounds().Overlaps(ref.Bounds())
	}
}
