package component

import "github.com/jakecoffman/cp"

// Hooks are fire-and-forget notifications to surrounding systems. Every
// field is optional.
type Hooks struct {
	Sound   func(name string)
	Score   func(points int)
	Effect  func(name string, at cp.Vector)
	Contact func(tick uint64, gimmick uint64, kind GimmickKind, actor uint64, state ContactState)
}

func (h *Hooks) PlaySound(name string) {
	if h != nil && h.Sound != nil {
		h.Sound(name)
	}
}

func (h *Hooks) AddScore(points int) {
	if h != nil && h.Score != nil {
		h.Score(points)
	}
}

func (h *Hooks) SpawnEffect(name string, at cp.Vector) {
	if h != nil && h.Effect != nil {
		h.Effect(name, at)
	}
}

func (h *Hooks) ContactChanged(tick, gimmick uint64, kind GimmickKind, actor uint64, state ContactState) {
	if h != nil && h.Contact != nil {
		h.Contact(tick, gimmick, kind, actor, state)
	}
}
