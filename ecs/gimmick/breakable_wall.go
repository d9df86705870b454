package gimmick

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/sensorstage/ecs/component"
)

// BreakFrom selects which faces of a breakable wall give way.
type BreakFrom int

const (
	BreakBoth BreakFrom = iota
	BreakFromLeft
	BreakFromRight
)

func ParseBreakFrom(v string) (BreakFrom, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "both":
		return BreakBoth, nil
	case "left":
		return BreakFromLeft, nil
	case "right":
		return BreakFromRight, nil
	}
	return 0, fmt.Errorf("gimmick: unknown break side %q", v)
}

// BreakableWall is a solid that shatters when an attacking actor hits one
// of its breakable faces fast enough. Its trigger is wider than the solid so
// contact is seen before the wall stops the actor.
type BreakableWall struct {
	Base
	From     BreakFrom
	MinSpeed float64
	Rebound  bool
	Score    int

	broken bool
}

func NewBreakableWall(from BreakFrom, minSpeed float64) *BreakableWall {
	return &BreakableWall{From: from, MinSpeed: minSpeed, Score: 10}
}

func (b *BreakableWall) Bind(env component.GimmickEnv) error {
	return b.bindSolid(env)
}

func (b *BreakableWall) Broken() bool {
	return b.broken
}

// speed is the horizontal speed the actor hit the wall with.
func speed(actor *component.ActorRef) float64 {
	if vx := actor.Impact().X; vx != 0 {
		return vx
	}
	return actor.Velocity().X
}

func (b *BreakableWall) IsCollisionValid(actor *component.ActorRef, actorBounds component.Bounds) bool {
	if b.broken || !actor.Action().Attacking() {
		return false
	}
	wall := b.Solid.Bounds()
	vx := speed(actor)
	if math.Abs(vx) < b.MinSpeed {
		return false
	}
	fromLeft := wall.TargetIsToTheLeft(actorBounds) && vx > 0
	fromRight := wall.TargetIsToTheRight(actorBounds) && vx < 0
	switch b.From {
	case BreakFromLeft:
		return fromLeft
	case BreakFromRight:
		return fromRight
	}
	return fromLeft || fromRight
}

func (b *BreakableWall) OnEnter(actor *component.ActorRef) {
	b.broken = true
	vx := speed(actor)
	at := b.Solid.Bounds().Center()
	b.Solid.Remove()
	b.Host.Deactivate()
	b.Host.Destroy = true

	v := actor.Velocity()
	if b.Rebound {
		v.X = -vx / 2
	} else {
		v.X = vx
	}
	actor.SetVelocity(v)

	b.Hooks.AddScore(b.Score)
	b.Hooks.SpawnEffect("break", at)
	b.Hooks.PlaySound("break")
}

var _ component.Gimmick = (*BreakableWall)(nil)
