package kitchen

import (
	"errors"
	"fmt"
)

var ErrBadActions = errors.New("bad action vector")

// StepResult is what one tick produces besides the mutated state. Reward is
// cooperative: the same scalar is reported to every agent.
type StepResult struct {
	Reward     int
	Deliveries int
	Done       bool
}

// Step advances the episode by one tick: movement, interactions, cooking,
// then reward and termination. It is a pure synchronous function of (prior
// state, actions); it never blocks and always runs to completion. Errors are
// defects, not gameplay outcomes.
func (e *Episode) Step(actions []Action) (StepResult, error) {
	if len(actions) != len(e.Agents) {
		return StepResult{}, fmt.Errorf("%w: got %d actions for %d agents", ErrBadActions, len(actions), len(e.Agents))
	}
	for i, act := range actions {
		if !act.Valid() {
			return StepResult{}, fmt.Errorf("%w: action %d for agent %d", ErrBadActions, act, i)
		}
	}

	e.World.TickReward = 0
	e.World.TickDeliveries = 0

	if err := e.resolveMovement(actions); err != nil {
		return StepResult{}, err
	}
	if err := e.resolveInteractions(actions); err != nil {
		return StepResult{}, err
	}
	e.advanceCooking()

	e.World.Timestep++
	return StepResult{
		Reward:     e.World.TickReward,
		Deliveries: e.World.TickDeliveries,
		Done:       e.World.Timestep >= e.World.Horizon,
	}, nil
}

// Done reports whether the episode has reached its horizon. Termination does
// not clear state; only Reset does.
func (e *Episode) Done() bool {
	return e.World.Timestep >= e.World.Horizon
}
