package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/system"
	"github.com/milk9111/sensorstage/levels"
	"github.com/milk9111/sensorstage/prefabs"
)

// LoadedStage indexes what LoadStageToWorld spawned.
type LoadedStage struct {
	Bounds ecs.Entity
	Player ecs.Entity
	// Named maps placement names to their entities.
	Named   map[string]ecs.Entity
	Terrain []*cp.Shape
}

// LoadStageToWorld adds a stage's terrain to the space and spawns every
// placement in order. Gimmicks are left unbound.
func LoadStageToWorld(world *ecs.World, space *cp.Space, stage *levels.Stage) (*LoadedStage, error) {
	if stage == nil {
		return nil, levels.ErrEmptyStage
	}
	if space == nil {
		return nil, system.ErrNilSpace
	}
	out := &LoadedStage{Named: make(map[string]ecs.Entity)}

	for i, ts := range stage.Terrain {
		shape, err := addTerrain(space, ts)
		if err != nil {
			return nil, fmt.Errorf("stage %s: terrain %d: %w", stage.Name, i, err)
		}
		out.Terrain = append(out.Terrain, shape)
	}

	out.Bounds = world.CreateEntity()
	if err := ecs.Add(world, out.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  stage.Width,
		Height: stage.Height,
		KillY:  stage.KillY,
		Spawn:  cp.Vector{X: stage.Spawn.X, Y: stage.Spawn.Y},
	}); err != nil {
		return nil, err
	}

	ctx := &buildContext{Space: space}
	for i, p := range stage.Entities {
		placed := map[string]any{"transform": map[string]any{"x": p.X, "y": p.Y}}
		if p.Name != "" {
			placed["name"] = map[string]any{"value": p.Name}
		}
		spec, err := prefabs.LoadEntityBuildSpec(p.Prefab)
		if err != nil {
			return nil, fmt.Errorf("stage %s: entity %d: load %q: %w", stage.Name, i, p.Prefab, err)
		}
		ctx.PrefabPath = p.Prefab
		e, err := buildFromSpec(world, ctx, spec, prefabs.MergeComponents(p.Props, placed))
		if err != nil {
			return nil, fmt.Errorf("stage %s: entity %d: %w", stage.Name, i, err)
		}
		if p.Name != "" {
			out.Named[p.Name] = e
		}
		if !out.Player.Valid() && ecs.Has(world, e, component.PlayerTagComponent.Kind()) {
			out.Player = e
		}
	}

	if len(stage.Inputs) > 0 && out.Player.Valid() {
		frames := make([]component.InputFrame, 0, len(stage.Inputs))
		for _, in := range stage.Inputs {
			frames = append(frames, component.InputFrame{From: in.From, To: in.To, MoveX: in.MoveX, Jump: in.Jump, Down: in.Down})
		}
		if err := ecs.Add(world, out.Player, component.InputScriptComponent.Kind(), &component.InputScript{Frames: frames}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func addTerrain(space *cp.Space, ts levels.TerrainSpec) (*cp.Shape, error) {
	category, err := parseCategory(ts.Category)
	if err != nil {
		return nil, err
	}
	switch {
	case len(ts.Polygon) > 0:
		verts := make([]cp.Vector, len(ts.Polygon))
		for i, v := range ts.Polygon {
			verts[i] = cp.Vector{X: v[0], Y: v[1]}
		}
		return system.AddTerrainPolygon(space, verts, category)
	case ts.Box != nil:
		b := ts.Box
		return system.AddTerrainPolygon(space, []cp.Vector{
			{X: b.X, Y: b.Y},
			{X: b.X + b.W, Y: b.Y},
			{X: b.X + b.W, Y: b.Y + b.H},
			{X: b.X, Y: b.Y + b.H},
		}, category)
	case ts.Segment != nil:
		s := ts.Segment
		return system.AddTerrainSegment(space, cp.Vector{X: s.A.X, Y: s.A.Y}, cp.Vector{X: s.B.X, Y: s.B.Y}, s.Radius, category)
	}
	return nil, fmt.Errorf("terrain needs a polygon, box or segment")
}
