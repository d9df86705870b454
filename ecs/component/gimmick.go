package component

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

var (
	ErrUnknownGimmickKind = errors.New("gimmick: unknown kind")
	ErrGimmickUnbound     = errors.New("gimmick: missing transform")
)

// Gimmick is the contract every interactive object implements. OnEnter and
// OnStay only run while IsCollisionValid holds; OnExit runs once when the
// contact ends, valid or not.
type Gimmick interface {
	IsCollisionValid(actor *ActorRef, actorBounds Bounds) bool
	OnEnter(actor *ActorRef)
	OnStay(actor *ActorRef)
	OnExit(actor *ActorRef)
}

// GimmickEnv is what a gimmick can discover about its own entity.
type GimmickEnv struct {
	Entity    uint64
	Host      *GimmickHost
	Transform *Transform
	Solid     *Solid
	Actor     *Actor
	Hooks     *Hooks
}

// Binder gimmicks resolve their references once at setup. A Bind error
// disables the gimmick.
type Binder interface {
	Bind(env GimmickEnv) error
}

// Ticker gimmicks update themselves once per tick before contacts are
// dispatched.
type Ticker interface {
	Tick(tick uint64)
}

type GimmickKind int

const (
	GimmickSpring GimmickKind = iota
	GimmickConveyor
	GimmickBridge
	GimmickBreakableWall
	GimmickSlide
	GimmickBadnik
	GimmickRing
	GimmickSpike
	GimmickPlatform
)

var gimmickKindNames = map[GimmickKind]string{
	GimmickSpring:        "spring",
	GimmickConveyor:      "conveyor",
	GimmickBridge:        "bridge",
	GimmickBreakableWall: "breakable_wall",
	GimmickSlide:         "slide",
	GimmickBadnik:        "badnik",
	GimmickRing:          "ring",
	GimmickSpike:         "spike",
	GimmickPlatform:      "platform",
}

func (k GimmickKind) String() string {
	if s, ok := gimmickKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("gimmick(%d)", int(k))
}

func ParseGimmickKind(s string) (GimmickKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range gimmickKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGimmickKind, s)
}

// ContactSource selects how overlap with an actor is detected.
type ContactSource int

const (
	// ContactTrigger overlaps the actor's hit box with the gimmick box.
	ContactTrigger ContactSource = iota
	// ContactGround requires the actor to be standing on the gimmick's solid.
	ContactGround
)

func (s ContactSource) String() string {
	if s == ContactGround {
		return "ground"
	}
	return "trigger"
}

// GimmickHost attaches a Gimmick to an entity together with its trigger box
// and contact bookkeeping.
type GimmickHost struct {
	Kind   GimmickKind
	Source ContactSource
	Impl   Gimmick

	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	Record   GimmickRecord
	Disabled bool
	Bound    bool
	// Destroy asks cleanup to remove the entity at the end of the tick.
	Destroy bool

	transform *Transform
}

func (h *GimmickHost) Attach(t *Transform) {
	h.transform = t
	if t != nil {
		h.Record.StartPosition = t.Position()
	}
}

func (h *GimmickHost) Transform() *Transform {
	return h.transform
}

// Bounds is the trigger box in world space.
func (h *GimmickHost) Bounds() Bounds {
	if h == nil || h.transform == nil {
		return Bounds{}
	}
	c := h.transform.Position().Add(cp.Vector{X: h.OffsetX, Y: h.OffsetY})
	return BoundsAround(c, h.Width, h.Height)
}

func (h *GimmickHost) Active() bool {
	return h != nil && h.Impl != nil && h.Bound && !h.Disabled
}

// Deactivate stops dispatch and clears every contact without callbacks.
func (h *GimmickHost) Deactivate() {
	if h == nil {
		return
	}
	h.Disabled = true
	h.Record.Reset()
}

var GimmickHostComponent = NewComponent[GimmickHost]()
