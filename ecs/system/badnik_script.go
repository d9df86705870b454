package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sensorstage/prefabs"
)

type patrolScript struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

type patrolView struct {
	tick      uint64
	facing    float64
	wall      bool
	ledge     bool
	speed     float64
	playerDX  float64
	hasPlayer bool
}

type patrolCommand struct {
	turn  bool
	speed *float64
}

const patrolDispatchScript = `
update(__engine, __state)
`

func loadPatrolScript(path string) (*patrolScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("system: load patrol script %s: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + patrolDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile patrol script %s: %w", path, err)
	}
	return &patrolScript{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *patrolScript) run(view patrolView) (patrolCommand, error) {
	var cmd patrolCommand
	engine := buildPatrolEngine(view, &cmd)
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return patrolCommand{}, err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return patrolCommand{}, err
	}
	if err := rt.compiled.Run(); err != nil {
		return patrolCommand{}, err
	}
	return cmd, nil
}

func buildPatrolEngine(view patrolView, cmd *patrolCommand) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"tick":        &tengo.Int{Value: int64(view.tick)},
		"facing":      &tengo.Float{Value: view.facing},
		"speed":       &tengo.Float{Value: view.speed},
		"wall_ahead":  boolObject(view.wall),
		"ledge_ahead": boolObject(view.ledge),
		"has_player":  boolObject(view.hasPlayer),
		"player_dx":   &tengo.Float{Value: view.playerDX},
	}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd.turn = !cmd.turn
		return tengo.TrueValue, nil
	}}

	values["set_speed"] = &tengo.UserFunction{Name: "set_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		cmd.speed = &v
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
