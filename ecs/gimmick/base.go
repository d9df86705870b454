// Package gimmick holds the interactive stage objects that plug into the
// contact lifecycle: springs, conveyors, bridges, breakable walls, slides,
// badniks, rings, spikes and moving platforms.
package gimmick

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
)

var (
	ErrNoSolid = errors.New("gimmick: missing solid")
	ErrNoActor = errors.New("gimmick: missing actor")
)

// Base carries the references a gimmick discovers when it is bound.
type Base struct {
	Entity    uint64
	Host      *component.GimmickHost
	Transform *component.Transform
	Solid     *component.Solid
	Actor     *component.Actor
	Hooks     *component.Hooks
}

func (b *Base) Bind(env component.GimmickEnv) error {
	if env.Transform == nil || env.Host == nil {
		return component.ErrGimmickUnbound
	}
	b.Entity = env.Entity
	b.Host = env.Host
	b.Transform = env.Transform
	b.Solid = env.Solid
	b.Actor = env.Actor
	b.Hooks = env.Hooks
	return nil
}

func (b *Base) bindSolid(env component.GimmickEnv) error {
	if err := b.Bind(env); err != nil {
		return err
	}
	if b.Solid == nil || len(b.Solid.Parts) == 0 {
		return ErrNoSolid
	}
	return nil
}

func (b *Base) Bounds() component.Bounds {
	if b.Host == nil {
		return component.Bounds{}
	}
	return b.Host.Bounds()
}

func (b *Base) Position() cp.Vector {
	return b.Transform.Position()
}

func (b *Base) OnEnter(*component.ActorRef) {}
func (b *Base) OnStay(*component.ActorRef)  {}
func (b *Base) OnExit(*component.ActorRef)  {}
