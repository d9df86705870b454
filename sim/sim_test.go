package sim

import (
	"errors"
	"testing"

	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/levels"
)

func TestSpringZoneExpectations(t *testing.T) {
	var sounds []string
	s, err := Load("spring_zone", Options{Hooks: &component.Hooks{
		Sound: func(name string) { sounds = append(sounds, name) },
	}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, err := NewExpectations(s)
	if err != nil {
		t.Fatalf("NewExpectations: %v", err)
	}

	var launchVY float64
	launched := false
	s.Run(120, func(tick uint64, _ []ecs.Event, contacts []Contact) {
		x.Observe(contacts)
		for _, c := range contacts {
			if c.Kind == component.GimmickSpring && c.State == component.ContactEnter && !launched {
				launched = true
				snap, ok := s.Actor(c.Actor)
				if !ok {
					t.Fatalf("tick %d: launched actor should have a snapshot", tick)
				}
				launchVY = snap.VY
			}
		}
	})

	if x.Failed() != 0 {
		t.Fatalf("unmet expectations: %v", x.Results())
	}
	if launchVY != 16 {
		t.Fatalf("spring should launch at 16, got %v", launchVY)
	}
	if len(sounds) == 0 || sounds[0] != "spring" {
		t.Fatalf("user hooks should still fire, got %v", sounds)
	}
	if s.Tick() != 120 {
		t.Fatalf("expected tick 120, got %d", s.Tick())
	}
}

func TestContactsFollowLifecycle(t *testing.T) {
	s, err := Load("spring_zone", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	type pair struct{ g, a ecs.Entity }
	last := map[pair]component.ContactState{}
	s.Run(240, func(tick uint64, _ []ecs.Event, contacts []Contact) {
		for _, c := range contacts {
			if c.Tick != tick {
				t.Fatalf("contact reported for tick %d during tick %d", c.Tick, tick)
			}
			k := pair{c.Gimmick, c.Actor}
			prev := last[k]
			switch c.State {
			case component.ContactEnter:
				if prev.Touching() {
					t.Fatalf("tick %d: enter after %s", tick, prev)
				}
			case component.ContactStay, component.ContactExit:
				if !prev.Touching() {
					t.Fatalf("tick %d: %s after %s", tick, c.State, prev)
				}
			}
			last[k] = c.State
		}
	})
	if len(last) == 0 {
		t.Fatalf("expected at least one contact")
	}
}

func TestBridgeZoneRiderPressesBridge(t *testing.T) {
	s, err := Load("bridge_zone", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bridge, ok := s.Named("bridge")
	if !ok {
		t.Fatalf("bridge should be named")
	}
	entered := false
	s.Run(400, func(_ uint64, _ []ecs.Event, contacts []Contact) {
		for _, c := range contacts {
			if c.Gimmick == bridge && c.Actor == s.Player() && c.State == component.ContactEnter {
				entered = true
			}
		}
	})
	if !entered {
		t.Fatalf("player should ride onto the bridge")
	}
	if s.NameOf(bridge) != "bridge" {
		t.Fatalf("NameOf should resolve the placement name")
	}
}

func TestManualInputAndReload(t *testing.T) {
	s, err := Load("bridge_zone", Options{ManualInput: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ecs.Has(s.World(), s.Player(), component.InputScriptComponent.Kind()) {
		t.Fatalf("manual input should drop the scripted timeline")
	}

	start, ok := s.Actor(s.Player())
	if !ok {
		t.Fatalf("player snapshot missing")
	}
	for i := 0; i < 60; i++ {
		s.SetInput(component.Input{MoveX: 1})
		s.Step()
	}
	moved, _ := s.Actor(s.Player())
	if moved.X <= start.X {
		t.Fatalf("manual input should move the player, x %v -> %v", start.X, moved.X)
	}

	oldWorld := s.World()
	if err := s.Reload(s.Stage()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Tick() != 0 || s.World() == oldWorld {
		t.Fatalf("reload should start a fresh world at tick 0")
	}
	back, _ := s.Actor(s.Player())
	if back.X != start.X {
		t.Fatalf("reload should respawn the player at %v, got %v", start.X, back.X)
	}

	if err := s.Reload(nil); !errors.Is(err, ErrNilStage) {
		t.Fatalf("expected ErrNilStage, got %v", err)
	}
	if s.World() == nil || s.Tick() != 0 {
		t.Fatalf("failed reload should keep the current stage")
	}
}

func TestSnapshots(t *testing.T) {
	s, err := Load("green_hill", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Step()
	actors := s.Snapshot()
	if len(actors) == 0 || actors[0].Kind != component.ActorPlayer || actors[0].Name != "player" {
		t.Fatalf("first snapshot should be the player, got %+v", actors)
	}
	kinds := map[component.GimmickKind]bool{}
	for _, g := range s.Gimmicks() {
		kinds[g.Kind] = true
		if !g.Active {
			t.Fatalf("%s %d should be bound and active", g.Kind, g.Entity)
		}
	}
	for _, k := range []component.GimmickKind{component.GimmickSpring, component.GimmickBridge, component.GimmickBreakableWall, component.GimmickConveyor, component.GimmickSlide, component.GimmickBadnik, component.GimmickRing} {
		if !kinds[k] {
			t.Fatalf("green_hill should host a %s", k)
		}
	}
	if _, ok := s.Actor(ecs.Entity(1 << 40)); ok {
		t.Fatalf("unknown entity should have no snapshot")
	}
}

func TestNewRejectsBadStages(t *testing.T) {
	if _, err := New(nil, Options{}); !errors.Is(err, ErrNilStage) {
		t.Fatalf("expected ErrNilStage, got %v", err)
	}
	stage := &levels.Stage{
		Name:     "broken",
		Terrain:  []levels.TerrainSpec{{Box: &levels.BoxSpec{W: 10, H: 10}}},
		Entities: []levels.Placement{{Prefab: "missing.yaml"}},
	}
	if _, err := New(stage, Options{}); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
	if _, err := Load("no_such_stage", Options{}); err == nil {
		t.Fatalf("expected an error for a missing stage")
	}

	s, err := Load("spring_zone", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.stage = &levels.Stage{Expect: []levels.ExpectSpec{{Gimmick: "ghost", State: "enter"}}}
	if _, err := NewExpectations(s); err == nil {
		t.Fatalf("expected an error for an unknown gimmick name")
	}
	s.stage = &levels.Stage{Expect: []levels.ExpectSpec{{Gimmick: "floor_spring", State: "boing"}}}
	if _, err := NewExpectations(s); err == nil {
		t.Fatalf("expected an error for an unknown state")
	}
}
