package gimmick

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
)

// Platform ping-pongs between its start position and start+Travel over
// Period ticks each way. Riders inherit its per-tick displacement.
type Platform struct {
	Base
	Travel cp.Vector
	Period int

	delta cp.Vector
}

func NewPlatform(travel cp.Vector, period int) *Platform {
	if period <= 0 {
		period = 1
	}
	return &Platform{Travel: travel, Period: period}
}

func (p *Platform) Bind(env component.GimmickEnv) error {
	if err := p.bindSolid(env); err != nil {
		return err
	}
	if !p.Solid.Kinematic {
		return ErrNoSolid
	}
	return nil
}

// Offset is the platform's displacement from its start on tick.
func (p *Platform) Offset(tick uint64) cp.Vector {
	span := uint64(2 * p.Period)
	phase := float64(tick%span) / float64(p.Period)
	if phase > 1 {
		phase = 2 - phase
	}
	return p.Travel.Mult(phase)
}

func (p *Platform) Delta() cp.Vector {
	return p.delta
}

func (p *Platform) Tick(tick uint64) {
	target := p.Host.Record.StartPosition.Add(p.Offset(tick))
	p.delta = target.Sub(p.Transform.Position())
	p.Transform.SetPosition(target)
	p.Solid.Translate(p.delta)
}

func (p *Platform) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	return actor.Grounded()
}

func (p *Platform) OnEnter(actor *component.ActorRef) { actor.AddPlatformVelocity(p.delta) }
func (p *Platform) OnStay(actor *component.ActorRef)  { actor.AddPlatformVelocity(p.delta) }
