package gimmick

import "github.com/milk9111/sensorstage/ecs/component"

// Badnik is an enemy actor that is also a gimmick. On contact either the
// player destroys it or it hurts the player, decided at Enter time.
type Badnik struct {
	Base
	Score int
	// Armored badniks cannot be destroyed by attacks.
	Armored bool
}

func NewBadnik(score int) *Badnik {
	return &Badnik{Score: score}
}

func (b *Badnik) Bind(env component.GimmickEnv) error {
	if err := b.Base.Bind(env); err != nil {
		return err
	}
	if b.Actor == nil {
		return ErrNoActor
	}
	return nil
}

func (b *Badnik) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	return actor.Kind() == component.ActorPlayer && !b.Actor.Destroy
}

func (b *Badnik) OnEnter(actor *component.ActorRef) {
	if actor.Action().Attacking() && !b.Armored {
		b.Actor.Destroy = true
		b.Host.Deactivate()
		actor.Rebound()
		b.Hooks.AddScore(b.Score)
		b.Hooks.SpawnEffect("explosion", b.Position())
		b.Hooks.PlaySound("pop")
		return
	}
	actor.Hurt(b.Position())
}
