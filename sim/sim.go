// Package sim assembles a stage into a world, a collision space and the
// fixed system order, and steps it one tick at a time.
package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/entity"
	"github.com/milk9111/sensorstage/ecs/system"
	"github.com/milk9111/sensorstage/levels"
)

var ErrNilStage = errors.New("sim: stage is nil")

type Options struct {
	Logger    *log.Logger
	Hooks     *component.Hooks
	TimeScale float64
	// ManualInput drops the stage's scripted timeline so SetInput drives
	// the player.
	ManualInput bool
}

// Contact is one state change reported during a step.
type Contact struct {
	Tick    uint64
	Gimmick ecs.Entity
	Kind    component.GimmickKind
	Actor   ecs.Entity
	State   component.ContactState
}

type Sim struct {
	opts  Options
	stage *levels.Stage

	world    *ecs.World
	space    *cp.Space
	ctx      *system.SimulationContext
	sched    *ecs.Scheduler
	loaded   *entity.LoadedStage
	contacts []Contact
}

// Load reads a stage by name and builds it.
func Load(name string, opts Options) (*Sim, error) {
	stage, err := levels.LoadStage(name)
	if err != nil {
		return nil, err
	}
	return New(stage, opts)
}

func New(stage *levels.Stage, opts Options) (*Sim, error) {
	s := &Sim{opts: opts}
	if err := s.build(stage); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sim) build(stage *levels.Stage) error {
	if stage == nil {
		return ErrNilStage
	}
	world := ecs.NewWorld()
	space := system.NewSpace()

	hooks := &component.Hooks{}
	if s.opts.Hooks != nil {
		*hooks = *s.opts.Hooks
	}
	userContact := hooks.Contact
	hooks.Contact = func(tick, gimmick uint64, kind component.GimmickKind, actor uint64, state component.ContactState) {
		s.contacts = append(s.contacts, Contact{
			Tick:    tick,
			Gimmick: ecs.Entity(gimmick),
			Kind:    kind,
			Actor:   ecs.Entity(actor),
			State:   state,
		})
		if userContact != nil {
			userContact(tick, gimmick, kind, actor, state)
		}
	}

	ctx := system.NewSimulationContext(space, hooks, s.opts.Logger)
	if s.opts.TimeScale > 0 {
		ctx.TimeScale = s.opts.TimeScale
	}
	ctx.SpawnRing = func(w *ecs.World, pos, vel cp.Vector) (ecs.Entity, error) {
		return entity.SpawnSpilledRing(w, space, pos, vel)
	}

	loaded, err := entity.LoadStageToWorld(world, space, stage)
	if err != nil {
		return fmt.Errorf("sim: build %s: %w", stage.Name, err)
	}
	if s.opts.ManualInput && loaded.Player.Valid() {
		ecs.Remove(world, loaded.Player, component.InputScriptComponent.Kind())
	}
	system.BindGimmicks(world, ctx)
	ctx.RefreshActors(world)

	s.stage = stage
	s.world = world
	s.space = space
	s.ctx = ctx
	s.loaded = loaded
	s.contacts = nil
	s.sched = ecs.NewScheduler(
		system.NewScriptedInputSystem(ctx),
		system.NewPatrolSystem(ctx),
		system.NewMovementSystem(ctx),
		system.NewGimmickTickSystem(ctx),
		system.NewContactSystem(ctx),
		system.NewCleanupSystem(ctx),
	)
	if s.opts.Logger != nil {
		s.opts.Logger.Debug("stage built", "stage", stage.Name, "entities", world.Count(), "terrain", len(loaded.Terrain))
	}
	return nil
}

// Reload rebuilds from a stage, starting over at tick 0. On error the
// current stage keeps running.
func (s *Sim) Reload(stage *levels.Stage) error {
	return s.build(stage)
}

// Step advances one tick and returns the events it raised. Contacts from
// the same tick are available from Contacts.
func (s *Sim) Step() []ecs.Event {
	s.contacts = s.contacts[:0]
	s.ctx.Tick++
	s.sched.Update(s.world)
	return s.world.Events().Drain()
}

// Run steps n ticks, calling fn after each one when it is not nil.
func (s *Sim) Run(n int, fn func(tick uint64, events []ecs.Event, contacts []Contact)) {
	for i := 0; i < n; i++ {
		events := s.Step()
		if fn != nil {
			fn(s.ctx.Tick, events, s.contacts)
		}
	}
}

func (s *Sim) Contacts() []Contact {
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *Sim) Tick() uint64                       { return s.ctx.Tick }
func (s *Sim) World() *ecs.World                  { return s.world }
func (s *Sim) Space() *cp.Space                   { return s.space }
func (s *Sim) Stage() *levels.Stage               { return s.stage }
func (s *Sim) Context() *system.SimulationContext { return s.ctx }
func (s *Sim) Player() ecs.Entity                 { return s.loaded.Player }

// Named looks up an entity by its placement name.
func (s *Sim) Named(name string) (ecs.Entity, bool) {
	e, ok := s.loaded.Named[name]
	if !ok || !s.world.IsAlive(e) {
		return 0, false
	}
	return e, true
}

// NameOf is the reverse of Named, falling back to the Name component.
func (s *Sim) NameOf(e ecs.Entity) string {
	if n, ok := ecs.Get(s.world, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	for name, named := range s.loaded.Named {
		if named == e {
			return name
		}
	}
	return ""
}

// SetInput overrides the player's input for the next step. A scripted
// timeline wins unless the sim was built with ManualInput.
func (s *Sim) SetInput(in component.Input) {
	if !s.loaded.Player.Valid() {
		return
	}
	if cur, ok := ecs.Get(s.world, s.loaded.Player, component.InputComponent.Kind()); ok {
		*cur = in
	}
}
