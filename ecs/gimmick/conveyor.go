package gimmick

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
)

// Conveyor nudges actors standing on it by a constant horizontal speed.
type Conveyor struct {
	Base
	Speed float64
}

func NewConveyor(speed float64) *Conveyor {
	return &Conveyor{Speed: speed}
}

func (c *Conveyor) Bind(env component.GimmickEnv) error {
	return c.bindSolid(env)
}

func (c *Conveyor) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	return actor.Grounded()
}

func (c *Conveyor) OnEnter(actor *component.ActorRef) { c.push(actor) }
func (c *Conveyor) OnStay(actor *component.ActorRef)  { c.push(actor) }

func (c *Conveyor) push(actor *component.ActorRef) {
	actor.AddPlatformVelocity(cp.Vector{X: c.Speed})
}
