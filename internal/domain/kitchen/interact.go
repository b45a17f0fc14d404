package kitchen

import "fmt"

// resolveInteractions handles every agent whose action is Interact, against
// the cell the agent faces. Invalid combinations are silent no-ops; Interact
// never moves an agent.
func (e *Episode) resolveInteractions(actions []Action) error {
	for i := range e.Agents {
		a := &e.Agents[i]
		if !a.Active || actions[i] != Interact {
			continue
		}
		target, ok := e.World.Neighbor(a.Pos, a.Dir)
		if !ok {
			continue
		}
		switch e.World.Terrain[target] {
		case OnionSource:
			if !a.HasObject() {
				a.Held = Object{Kind: KindOnion, Onions: 1}
			}
		case TomatoSource:
			if !a.HasObject() {
				a.Held = Object{Kind: KindTomato, Tomatoes: 1}
			}
		case DishSource:
			if !a.HasObject() {
				a.Held = Object{Kind: KindDish}
				e.World.TickReward += e.World.DishPickupReward
			}
		case Pot:
			if err := e.interactPot(a, target); err != nil {
				return err
			}
		case Counter:
			e.interactCounter(a, target)
		case Serving:
			if a.Held.Kind == KindSoup {
				soup := a.TakeHeld()
				e.World.TickReward += e.World.RecipeValues[soup.RecipeIndex()]
				e.World.TickDeliveries++
			}
		}
	}
	return nil
}

// interactPot fills or plates. The two are mutually exclusive by pot state: a
// pot accepting ingredients has never started cooking, a platable pot is done
// cooking. Anything else (empty-handed, pot mid-cook, pot full) is a no-op.
func (e *Episode) interactPot(a *AgentState, cell int) error {
	pot := &e.World.Objects[cell]
	switch {
	case a.Held.IsIngredient() && !pot.Cooking.Started && pot.Ingredients() < MaxIngredients:
		held := a.TakeHeld()
		pot.Kind = KindSoup
		pot.Onions += held.Onions
		pot.Tomatoes += held.Tomatoes
		e.World.TickReward += e.World.PlacementInPotReward
		if pot.Ingredients() > MaxIngredients {
			return fmt.Errorf("%w: pot at cell %d holds %d ingredients", ErrInvariant, cell, pot.Ingredients())
		}
		if pot.Ingredients() == MaxIngredients {
			pot.Cooking = CookTimer{Started: true}
		}
	case a.Held.Kind == KindDish && e.potReady(*pot):
		a.Held = Object{Kind: KindSoup, Onions: pot.Onions, Tomatoes: pot.Tomatoes}
		*pot = Object{}
		e.World.TickReward += e.World.SoupPickupReward
	}
	return nil
}

// interactCounter treats the counter as a shelf: pick up or put down, never
// swap in one tick.
func (e *Episode) interactCounter(a *AgentState, cell int) {
	shelf := &e.World.Objects[cell]
	switch {
	case !a.HasObject() && !shelf.IsNone():
		a.Held = *shelf
		*shelf = Object{}
	case a.HasObject() && shelf.IsNone():
		*shelf = a.TakeHeld()
	}
}

func (e *Episode) potReady(pot Object) bool {
	return pot.Cooking.Started && pot.Cooking.Ticks >= e.World.RecipeTimes[pot.RecipeIndex()]
}
