package entity

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/gimmick"
	"github.com/milk9111/sensorstage/ecs/system"
	"github.com/milk9111/sensorstage/prefabs"
)

var ErrNoTransform = errors.New("entity: component needs a transform")

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Space      *cp.Space

	profiles prefabs.PhysicsProfiles
}

func (c *buildContext) profile(name string) (map[string]any, error) {
	if c.profiles == nil {
		profiles, err := prefabs.LoadPhysicsProfiles()
		if err != nil {
			return nil, err
		}
		c.profiles = profiles
	}
	p, ok := c.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown physics profile %q", name)
	}
	return p, nil
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":            addName,
	"player_tag":      addPlayerTag,
	"badnik_tag":      addBadnikTag,
	"ring_tag":        addRingTag,
	"transform":       addTransform,
	"actor":           addActor,
	"input":           addInput,
	"collision_layer": addCollisionLayer,
	"patrol":          addPatrol,
	"ttl":             addTTL,
	"solid":           addSolid,
	"gimmick":         addGimmick,
}

// Solids and gimmicks read the transform, and gimmicks size themselves from
// the solid, so order matters.
var componentBuildOrder = []string{
	"name",
	"player_tag",
	"badnik_tag",
	"ring_tag",
	"transform",
	"actor",
	"input",
	"collision_layer",
	"patrol",
	"ttl",
	"solid",
	"gimmick",
}

// BuildEntity spawns a prefab. Overrides are merged over the prefab's
// components first, so a placement can move it or retune a gimmick.
func BuildEntity(w *ecs.World, space *cp.Space, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, &buildContext{PrefabPath: prefabPath, Space: space}, spec, overrides)
}

func buildFromSpec(w *ecs.World, ctx *buildContext, spec entityPrefabSpec, overrides map[string]any) (ecs.Entity, error) {
	prefabPath := ctx.PrefabPath
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	remaining := prefabs.MergeComponents(spec.Components, overrides)
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			destroyPartial(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
				destroyPartial(w, e)
				return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
			}
		}
	}

	return e, nil
}

// destroyPartial undoes a failed build, including any shapes already placed
// in the space.
func destroyPartial(w *ecs.World, e ecs.Entity) {
	if solid, ok := ecs.Get(w, e, component.SolidComponent.Kind()); ok {
		solid.Remove()
	}
	ecs.DestroyEntity(w, e)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NameComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addBadnikTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BadnikTagComponent.Kind(), &component.BadnikTag{})
}

func addRingTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RingTagComponent.Kind(), &component.RingTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type actorSpec = prefabs.ActorComponentSpec

func addActor(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	kind, err := component.ParseActorKind(spec.Kind)
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("actor size %vx%v", spec.Width, spec.Height)
	}

	physics := component.DefaultActorPhysics()
	if spec.Profile != "" {
		profile, err := ctx.profile(spec.Profile)
		if err != nil {
			return err
		}
		if err := prefabs.DecodeComponentSpecInto(profile, &physics); err != nil {
			return fmt.Errorf("decode physics profile %q: %w", spec.Profile, err)
		}
	}
	if len(spec.Physics) > 0 {
		if err := prefabs.DecodeComponentSpecInto(spec.Physics, &physics); err != nil {
			return fmt.Errorf("decode physics overrides: %w", err)
		}
	}

	actor := component.NewActor(kind, spec.Width, spec.Height, physics)
	if spec.Facing != 0 {
		actor.Facing = spec.Facing
	}
	if spec.GroundSnap > 0 {
		actor.Rig.GroundSnap = spec.GroundSnap
	}
	actor.Rings = spec.Rings
	actor.CollectDelay = spec.CollectDelay
	return ecs.Add(w, e, component.ActorComponent.Kind(), actor)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: spec.Category,
		Mask:     spec.Mask,
	})
}

type patrolSpec = prefabs.PatrolComponentSpec

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[patrolSpec](raw)
	if err != nil {
		return fmt.Errorf("decode patrol spec: %w", err)
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
		Speed:      spec.Speed,
		Script:     spec.Script,
		LedgeReach: spec.LedgeReach,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Ticks: spec.Ticks})
}

// Collision category bits shared by solids and actor masks.
var solidCategories = map[string]uint{
	"":          1,
	"terrain":   1,
	"platform":  2,
	"breakable": 4,
}

func parseCategory(v string) (uint, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if c, ok := solidCategories[v]; ok {
		return c, nil
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("unknown solid category %q", v)
	}
	return uint(n), nil
}

type solidSpec = prefabs.SolidComponentSpec

// addSolid lays Count equal boxes side by side across Width, centred on the
// transform plus offset.
func addSolid(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[solidSpec](raw)
	if err != nil {
		return fmt.Errorf("decode solid spec: %w", err)
	}
	if ctx.Space == nil {
		return system.ErrNilSpace
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return ErrNoTransform
	}
	category, err := parseCategory(spec.Category)
	if err != nil {
		return err
	}
	count := spec.Count
	if count <= 0 {
		count = 1
	}
	partW := spec.Width / float64(count)
	left := t.X + spec.OffsetX - spec.Width/2
	centers := make([]cp.Vector, count)
	for i := range centers {
		centers[i] = cp.Vector{X: left + partW*(float64(i)+0.5), Y: t.Y + spec.OffsetY}
	}
	solid, err := system.NewBoxesSolid(ctx.Space, uint64(e), centers, partW, spec.Height, category, spec.Kinematic)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SolidComponent.Kind(), solid)
}

type gimmickSpec = prefabs.GimmickComponentSpec

func addGimmick(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gimmickSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gimmick spec: %w", err)
	}
	kind, err := component.ParseGimmickKind(spec.Kind)
	if err != nil {
		return err
	}
	solid, _ := ecs.Get(w, e, component.SolidComponent.Kind())
	impl, err := newGimmick(kind, spec, solid)
	if err != nil {
		return err
	}
	source, err := parseContactSource(spec.Source, kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.GimmickHostComponent.Kind(), &component.GimmickHost{
		Kind:    kind,
		Source:  source,
		Impl:    impl,
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	})
}

func parseContactSource(v string, kind component.GimmickKind) (component.ContactSource, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		switch kind {
		case component.GimmickConveyor, component.GimmickBridge, component.GimmickPlatform:
			return component.ContactGround, nil
		}
		return component.ContactTrigger, nil
	case "trigger":
		return component.ContactTrigger, nil
	case "ground":
		return component.ContactGround, nil
	}
	return 0, fmt.Errorf("unknown contact source %q", v)
}

func newGimmick(kind component.GimmickKind, spec gimmickSpec, solid *component.Solid) (component.Gimmick, error) {
	switch kind {
	case component.GimmickSpring:
		side, err := gimmick.ParseSide(spec.Side)
		if err != nil {
			return nil, err
		}
		g := gimmick.NewSpring(side, spec.Velocity)
		if spec.LockTicks > 0 {
			g.LockTicks = spec.LockTicks
		}
		return g, nil
	case component.GimmickConveyor:
		return gimmick.NewConveyor(spec.Speed), nil
	case component.GimmickBridge:
		segments := spec.Segments
		if segments <= 0 && solid != nil {
			segments = len(solid.Parts)
		}
		segW := spec.SegmentWidth
		if segW <= 0 && solid != nil && segments > 0 {
			segW = solid.Bounds().Width() / float64(segments)
		}
		g := gimmick.NewBridge(segments, segW, spec.MaxDepression)
		if spec.SettleTicks > 0 {
			g.SettleTicks = spec.SettleTicks
		}
		return g, nil
	case component.GimmickBreakableWall:
		from, err := gimmick.ParseBreakFrom(spec.From)
		if err != nil {
			return nil, err
		}
		g := gimmick.NewBreakableWall(from, spec.MinSpeed)
		g.Rebound = spec.Rebound
		if spec.Score > 0 {
			g.Score = spec.Score
		}
		return g, nil
	case component.GimmickSlide:
		return gimmick.NewSlide(spec.Direction, spec.MinSpeed), nil
	case component.GimmickBadnik:
		g := gimmick.NewBadnik(spec.Score)
		g.Armored = spec.Armored
		return g, nil
	case component.GimmickRing:
		g := gimmick.NewRing()
		if spec.Value > 0 {
			g.Value = spec.Value
		}
		return g, nil
	case component.GimmickSpike:
		side, err := gimmick.ParseSide(spec.Side)
		if err != nil {
			return nil, err
		}
		return gimmick.NewSpike(side), nil
	case component.GimmickPlatform:
		return gimmick.NewPlatform(cp.Vector{X: spec.TravelX, Y: spec.TravelY}, spec.Period), nil
	}
	return nil, fmt.Errorf("%w: %s", component.ErrUnknownGimmickKind, kind)
}
