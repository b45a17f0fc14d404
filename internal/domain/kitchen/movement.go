package kitchen

import "fmt"

// resolveMovement turns this tick's actions into committed positions and
// facings. Proposals are computed for every agent from the pre-tick snapshot
// before any conflict is examined; committing happens once at the end, so the
// result cannot depend on agent iteration order.
func (e *Episode) resolveMovement(actions []Action) error {
	for i := range e.Agents {
		a := &e.Agents[i]
		if !a.Active {
			continue
		}
		act := actions[i]
		if !act.IsMove() {
			a.propose(a.Pos, a.Dir)
			continue
		}
		dir := act.MoveDirection()
		target, ok := e.World.Neighbor(a.Pos, dir)
		if !ok || !e.World.Terrain[target].Walkable() {
			// Blocked moves turn in place.
			target = a.Pos
		}
		a.propose(target, dir)
	}

	// Colliding agents all revert; there is no winner. A revert can create a
	// new collision with an agent that was moving into the reverted cell, so
	// iterate to a fixpoint. Each pass reverts at least one agent, bounding
	// the loop by the agent count.
	for changed := true; changed; {
		changed = false
		for i := range e.Agents {
			if !e.Agents[i].Active {
				continue
			}
			for j := i + 1; j < len(e.Agents); j++ {
				if !e.Agents[j].Active {
					continue
				}
				ai, aj := &e.Agents[i], &e.Agents[j]
				sameDest := ai.proposedPos == aj.proposedPos
				swap := ai.proposedPos == aj.Pos && aj.proposedPos == ai.Pos
				if !sameDest && !swap {
					continue
				}
				if ai.proposedPos != ai.Pos {
					ai.revert()
					changed = true
				}
				if aj.proposedPos != aj.Pos {
					aj.revert()
					changed = true
				}
			}
		}
	}

	occupied := make(map[int]int, len(e.Agents))
	for i := range e.Agents {
		a := &e.Agents[i]
		if !a.Active {
			continue
		}
		a.commit()
		if prev, taken := occupied[a.Pos]; taken {
			return fmt.Errorf("%w: agents %d and %d resolved to cell %d", ErrInvariant, prev, i, a.Pos)
		}
		occupied[a.Pos] = i
	}
	return nil
}
