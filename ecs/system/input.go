package system

import (
	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// ScriptedInputSystem replays InputScript timelines into Input.
type ScriptedInputSystem struct {
	ctx *SimulationContext
}

func NewScriptedInputSystem(ctx *SimulationContext) *ScriptedInputSystem {
	return &ScriptedInputSystem{ctx: ctx}
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if w == nil || s.ctx == nil {
		return
	}
	ecs.ForEach2(w, component.InputScriptComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, script *component.InputScript, in *component.Input) {
		*in = script.At(s.ctx.Tick)
	})
}
