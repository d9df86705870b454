package sim

import (
	"fmt"

	"github.com/milk9111/sensorstage/ecs"
	"github.com/milk9111/sensorstage/ecs/component"
)

// ExpectResult reports whether a stage expectation was met, and on which
// tick.
type ExpectResult struct {
	Gimmick string
	State   component.ContactState
	Before  uint64
	Met     bool
	Tick    uint64
}

func (r ExpectResult) String() string {
	if r.Met {
		return fmt.Sprintf("%s %s at tick %d", r.Gimmick, r.State, r.Tick)
	}
	return fmt.Sprintf("%s %s not seen before tick %d", r.Gimmick, r.State, r.Before)
}

// Expectations tracks a stage's expected contacts as the sim runs.
type Expectations struct {
	results []ExpectResult
	targets []ecs.Entity
}

// NewExpectations resolves the stage's expectations against the spawned
// entities. Names are resolved once, so gimmicks destroyed later still
// match.
func NewExpectations(s *Sim) (*Expectations, error) {
	x := &Expectations{}
	for _, spec := range s.stage.Expect {
		state, err := component.ParseContactState(spec.State)
		if err != nil {
			return nil, fmt.Errorf("sim: expect %s: %w", spec.Gimmick, err)
		}
		e, ok := s.loaded.Named[spec.Gimmick]
		if !ok {
			return nil, fmt.Errorf("sim: expect: no entity named %q", spec.Gimmick)
		}
		x.results = append(x.results, ExpectResult{Gimmick: spec.Gimmick, State: state, Before: spec.Before})
		x.targets = append(x.targets, e)
	}
	return x, nil
}

// Observe records contacts from one step.
func (x *Expectations) Observe(contacts []Contact) {
	for _, c := range contacts {
		for i := range x.results {
			r := &x.results[i]
			if r.Met || x.targets[i] != c.Gimmick || r.State != c.State {
				continue
			}
			if r.Before != 0 && c.Tick >= r.Before {
				continue
			}
			r.Met = true
			r.Tick = c.Tick
		}
	}
}

func (x *Expectations) Results() []ExpectResult {
	out := make([]ExpectResult, len(x.results))
	copy(out, x.results)
	return out
}

// Failed counts unmet expectations.
func (x *Expectations) Failed() int {
	n := 0
	for _, r := range x.results {
		if !r.Met {
			n++
		}
	}
	return n
}
