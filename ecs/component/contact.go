package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// ContactState is the lifecycle of one actor touching one gimmick.
type ContactState int

const (
	ContactInactive ContactState = iota
	ContactEnter
	ContactStay
	ContactExit
)

func (s ContactState) String() string {
	switch s {
	case ContactEnter:
		return "enter"
	case ContactStay:
		return "stay"
	case ContactExit:
		return "exit"
	}
	return "inactive"
}

func ParseContactState(v string) (ContactState, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "inactive":
		return ContactInactive, nil
	case "enter":
		return ContactEnter, nil
	case "stay":
		return ContactStay, nil
	case "exit":
		return ContactExit, nil
	}
	return 0, fmt.Errorf("component: unknown contact state %q", v)
}

// Touching reports Enter or Stay.
func (s ContactState) Touching() bool {
	return s == ContactEnter || s == ContactStay
}

// TickTimer is a pending state downgrade counted in physics ticks. A timer
// armed on tick t is not decremented until tick t+1.
type TickTimer struct {
	Armed     bool
	Remaining int
	ArmedAt   uint64
	Target    ContactState
}

func (t *TickTimer) Arm(tick uint64, ticks int, target ContactState) {
	t.Armed = true
	t.Remaining = ticks
	t.ArmedAt = tick
	t.Target = target
}

func (t *TickTimer) Cancel() {
	*t = TickTimer{}
}

// Advance counts the timer down and reports whether it fired this tick.
func (t *TickTimer) Advance(tick uint64) bool {
	if !t.Armed || tick <= t.ArmedAt {
		return false
	}
	t.Remaining--
	if t.Remaining > 0 {
		return false
	}
	t.Armed = false
	return true
}

// DowngradeTicks is how long Enter and Exit last before settling.
const DowngradeTicks = 1

// ContactEvent drives Inactive -> Enter -> Stay -> Exit -> Inactive for a
// single (gimmick, actor) pair.
type ContactEvent struct {
	State   ContactState
	Pending TickTimer
}

// Begin moves an Inactive or Exit contact to Enter. It returns false, and
// changes nothing, when the contact is already Enter or Stay.
func (c *ContactEvent) Begin(tick uint64) bool {
	if c.State.Touching() {
		return false
	}
	c.State = ContactEnter
	c.Pending.Arm(tick, DowngradeTicks, ContactStay)
	return true
}

// Continue reports whether a Stay callback is due.
func (c *ContactEvent) Continue() bool {
	return c.State.Touching()
}

// End moves an Enter or Stay contact to Exit. Ending an Inactive or Exit
// contact is a no-op.
func (c *ContactEvent) End(tick uint64) bool {
	if !c.State.Touching() {
		return false
	}
	c.State = ContactExit
	c.Pending.Arm(tick, DowngradeTicks, ContactInactive)
	return true
}

// Advance applies the pending downgrade when it is due.
func (c *ContactEvent) Advance(tick uint64) {
	if !c.Pending.Advance(tick) {
		return
	}
	switch {
	case c.State == ContactEnter && c.Pending.Target == ContactStay:
		c.State = ContactStay
	case c.State == ContactExit && c.Pending.Target == ContactInactive:
		c.State = ContactInactive
	}
}

func (c *ContactEvent) Reset() {
	c.State = ContactInactive
	c.Pending.Cancel()
}

// GimmickRecord is the per-gimmick contact bookkeeping, keyed by actor.
type GimmickRecord struct {
	StartPosition cp.Vector

	contacts map[uint64]*ContactEvent
	order    []uint64
}

// Contact returns the event for actor, creating an Inactive one if needed.
func (r *GimmickRecord) Contact(actor uint64) *ContactEvent {
	if r.contacts == nil {
		r.contacts = make(map[uint64]*ContactEvent)
	}
	c, ok := r.contacts[actor]
	if !ok {
		c = &ContactEvent{}
		r.contacts[actor] = c
		r.order = append(r.order, actor)
	}
	return c
}

// StateFor returns the contact state with actor without allocating.
func (r *GimmickRecord) StateFor(actor uint64) ContactState {
	if c, ok := r.contacts[actor]; ok {
		return c.State
	}
	return ContactInactive
}

// State is the most significant state over all actors, preferring
// Enter, then Stay, then Exit.
func (r *GimmickRecord) State() ContactState {
	best := ContactInactive
	rank := func(s ContactState) int {
		switch s {
		case ContactEnter:
			return 3
		case ContactStay:
			return 2
		case ContactExit:
			return 1
		}
		return 0
	}
	for _, id := range r.order {
		if s := r.contacts[id].State; rank(s) > rank(best) {
			best = s
		}
	}
	return best
}

// Actors returns actor ids with a tracked contact, in first-contact order.
func (r *GimmickRecord) Actors() []uint64 {
	return append([]uint64(nil), r.order...)
}

// Advance runs pending downgrades and forgets contacts that went Inactive.
func (r *GimmickRecord) Advance(tick uint64) {
	kept := r.order[:0]
	for _, id := range r.order {
		c := r.contacts[id]
		c.Advance(tick)
		if c.State == ContactInactive && !c.Pending.Armed {
			delete(r.contacts, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}

// Forget drops the contact with a single actor.
func (r *GimmickRecord) Forget(actor uint64) {
	if _, ok := r.contacts[actor]; !ok {
		return
	}
	delete(r.contacts, actor)
	for i, id := range r.order {
		if id == actor {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reset drops every contact and cancels their timers.
func (r *GimmickRecord) Reset() {
	r.contacts = nil
	r.order = nil
}
