package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// SpawnSpilledRing builds a bouncing ring actor thrown out when the player
// is hurt. It can be collected once its delay runs out and expires on TTL.
func SpawnSpilledRing(w *ecs.World, space *cp.Space, pos, vel cp.Vector) (ecs.Entity, error) {
	e, err := BuildEntity(w, space, "spilled_ring.yaml", map[string]any{
		"transform": map[string]any{"x": pos.X, "y": pos.Y},
	})
	if err != nil {
		return 0, fmt.Errorf("spilled ring: %w", err)
	}
	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("spilled ring: prefab has no actor")
	}
	a.Velocity = vel
	if vel.X < 0 {
		a.Facing = -1
	}
	return e, nil
}
