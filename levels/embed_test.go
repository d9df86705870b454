package levels

import (
	"errors"
	"testing"
)

func TestListEmbeddedStages(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"bridge_zone", "green_hill", "spring_zone"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestLoadStage(t *testing.T) {
	tests := []struct {
		name     string
		expectOK bool
	}{
		{"spring_zone", true},
		{"spring_zone.yaml", true},
		{"levels/bridge_zone", true},
		{"missing_zone", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stage, err := LoadStage(tc.name)
			if !tc.expectOK {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStage: %v", err)
			}
			if len(stage.Terrain) == 0 || len(stage.Entities) == 0 {
				t.Fatalf("expected terrain and entities, got %+v", stage)
			}
		})
	}
}

func TestGreenHillLayout(t *testing.T) {
	stage, err := LoadStage("green_hill")
	if err != nil {
		t.Fatalf("LoadStage: %v", err)
	}
	if stage.KillY >= 0 || stage.Width <= 0 {
		t.Fatalf("unexpected extents %+v", stage)
	}
	prefabs := map[string]bool{}
	for _, p := range stage.Entities {
		prefabs[p.Prefab] = true
	}
	for _, want := range []string{"player", "spring", "bridge", "breakable_wall", "conveyor", "slide", "badnik", "ring"} {
		if !prefabs[want+".yaml"] && !prefabs[want] {
			t.Fatalf("green_hill should place a %s", want)
		}
	}
	for i, tr := range stage.Terrain {
		set := 0
		if len(tr.Polygon) > 0 {
			set++
		}
		if tr.Box != nil {
			set++
		}
		if tr.Segment != nil {
			set++
		}
		if set != 1 {
			t.Fatalf("terrain %d should be exactly one shape, got %d", i, set)
		}
	}
}

func TestParseStage(t *testing.T) {
	if _, err := ParseStage([]byte("name: empty\n")); !errors.Is(err, ErrEmptyStage) {
		t.Fatalf("expected ErrEmptyStage, got %v", err)
	}
	if _, err := ParseStage([]byte("terrain: [")); err == nil {
		t.Fatalf("expected a yaml error")
	}

	stage, err := ParseStage([]byte(`
name: tiny
terrain:
  - box: {x: 0, y: -16, w: 64, h: 16}
entities:
  - prefab: spring.yaml
    name: s
    x: 32
    y: 8
    props:
      gimmick: {velocity: 10}
inputs:
  - {from: 0, to: 10, move_x: 1}
expect:
  - {gimmick: s, state: enter, before: 30}
`))
	if err != nil {
		t.Fatalf("ParseStage: %v", err)
	}
	p := stage.Entities[0]
	if p.Name != "s" || p.X != 32 || p.Props["gimmick"].(map[string]any)["velocity"] != 10 {
		t.Fatalf("unexpected placement %+v", p)
	}
	if stage.Inputs[0].MoveX != 1 || stage.Expect[0].Before != 30 {
		t.Fatalf("unexpected inputs or expectations %+v %+v", stage.Inputs, stage.Expect)
	}
}
