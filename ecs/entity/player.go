package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs"
)

func NewPlayer(w *ecs.World, space *cp.Space) (ecs.Entity, error) {
	return BuildEntity(w, space, "player.yaml", nil)
}

func NewPlayerAt(w *ecs.World, space *cp.Space, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, space, "player.yaml", nil)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}
