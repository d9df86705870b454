package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

type ActorKind int

const (
	ActorPlayer ActorKind = iota
	ActorBadnik
	ActorRing
)

func (k ActorKind) String() string {
	switch k {
	case ActorBadnik:
		return "badnik"
	case ActorRing:
		return "ring"
	}
	return "player"
}

func ParseActorKind(s string) (ActorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "player":
		return ActorPlayer, nil
	case "badnik":
		return ActorBadnik, nil
	case "ring":
		return ActorRing, nil
	}
	return 0, fmt.Errorf("component: unknown actor kind %q", s)
}

// Action is the ability state gimmicks gate on.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionRoll
	ActionHomingAttack
	ActionHurt
)

func (a Action) String() string {
	switch a {
	case ActionJump:
		return "jump"
	case ActionRoll:
		return "roll"
	case ActionHomingAttack:
		return "homing_attack"
	case ActionHurt:
		return "hurt"
	}
	return "none"
}

// Attacking reports whether the action destroys badniks and breakable walls.
func (a Action) Attacking() bool {
	return a == ActionJump || a == ActionRoll || a == ActionHomingAttack
}

// ActorPhysics is a movement profile. Speeds are pixels per tick and
// accelerations pixels per tick squared.
type ActorPhysics struct {
	Accel        float64 `yaml:"accel"`
	Decel        float64 `yaml:"decel"`
	Friction     float64 `yaml:"friction"`
	TopSpeed     float64 `yaml:"top_speed"`
	SlopeFactor  float64 `yaml:"slope_factor"`
	RollFriction float64 `yaml:"roll_friction"`
	RollDecel    float64 `yaml:"roll_decel"`
	RollMinSpeed float64 `yaml:"roll_min_speed"`
	SlopeRollUp  float64 `yaml:"slope_roll_up"`
	SlopeRollDn  float64 `yaml:"slope_roll_down"`
	AirAccel     float64 `yaml:"air_accel"`
	Gravity      float64 `yaml:"gravity"`
	MaxFall      float64 `yaml:"max_fall"`
	JumpForce    float64 `yaml:"jump_force"`
	JumpRelease  float64 `yaml:"jump_release"`
	SlipSpeed    float64 `yaml:"slip_speed"`
	SlipAngle    float64 `yaml:"slip_angle"`
	ControlLock  int     `yaml:"control_lock"`
	HomingSpeed  float64 `yaml:"homing_speed"`
	HomingRange  float64 `yaml:"homing_range"`
	HurtPushX    float64 `yaml:"hurt_push_x"`
	HurtPushY    float64 `yaml:"hurt_push_y"`
	Invulnerable int     `yaml:"invulnerable"`
	Bounce       float64 `yaml:"bounce"`
}

// DefaultActorPhysics is the classic player feel at 60 ticks per second.
func DefaultActorPhysics() ActorPhysics {
	return ActorPhysics{
		Accel:        0.046875,
		Decel:        0.5,
		Friction:     0.046875,
		TopSpeed:     6,
		SlopeFactor:  0.125,
		RollFriction: 0.0234375,
		RollDecel:    0.125,
		RollMinSpeed: 0.5,
		SlopeRollUp:  0.078125,
		SlopeRollDn:  0.3125,
		AirAccel:     0.09375,
		Gravity:      0.21875,
		MaxFall:      16,
		JumpForce:    6.5,
		JumpRelease:  4,
		SlipSpeed:    2.5,
		SlipAngle:    46,
		ControlLock:  30,
		HomingSpeed:  8,
		HomingRange:  96,
		HurtPushX:    2,
		HurtPushY:    4,
		Invulnerable: 120,
	}
}

// Actor is a moving body driven by sensors.
type Actor struct {
	Kind   ActorKind
	Width  float64
	Height float64

	Velocity    cp.Vector
	GroundSpeed float64
	Grounded    bool
	Facing      float64
	Action      Action

	Collision CollisionInfo
	Wall      HitSide
	// Impact is the velocity removed by wall pushes this tick.
	Impact  cp.Vector
	Rig     SensorRig
	Physics ActorPhysics

	// GimmickMode is a tag a gimmick sets to restrict the actor while it
	// owns it, for example "spring" or "slide".
	GimmickMode  string
	GimmickOwner uint64

	// PlatformVelocity is added to the next tick's displacement, then cleared.
	PlatformVelocity cp.Vector

	InputLockTicks    int
	ControlLockTicks  int
	InvulnerableTicks int

	HomingTarget uint64
	Rings        int
	SpillRings   int
	CollectDelay int

	Destroy bool
	Dead    bool
}

// NewActor builds an actor of the given size with a matching sensor rig.
func NewActor(kind ActorKind, width, height float64, physics ActorPhysics) *Actor {
	return &Actor{
		Kind:      kind,
		Width:     width,
		Height:    height,
		Facing:    1,
		Rig:       NewSensorRig(width, height),
		Physics:   physics,
		Collision: CollisionInfo{GroundMode: GroundNone},
	}
}

// Bounds is the actor's hit box around its centre.
func (a *Actor) Bounds(t *Transform) Bounds {
	return BoundsAround(t.Position(), a.Width, a.Height)
}

func (a *Actor) Invulnerable() bool {
	return a.InvulnerableTicks > 0 || a.Action == ActionHurt
}

var ActorComponent = NewComponent[Actor]()
