package kitchen

// Base channel layout, after the per-agent location and orientation channels.
// Held objects are encoded at the holder's cell in the same planes as loose
// and potted objects.
const (
	chPotLoc = iota
	chCounterLoc
	chOnionSourceLoc
	chTomatoSourceLoc
	chDishSourceLoc
	chServingLoc
	chOnionsInPot
	chTomatoesInPot
	chOnionsInSoup
	chTomatoesInSoup
	chCookRemaining
	chSoupDone
	chDishes
	chOnions
	chTomatoes
	chUrgency
)

// ChannelsFor is the per-cell feature width of an observation in a kitchen
// with the given crew size.
func ChannelsFor(numAgents int) int {
	return 5*numAgents + baseChannels
}

// Channels is the per-cell feature width of an observation.
func (e *Episode) Channels() int {
	return ChannelsFor(len(e.Agents))
}

// ObservationSize is the fixed length of one agent's observation vector:
// cell-major, channels innermost.
func (e *Episode) ObservationSize() int {
	return e.World.Width * e.World.Height * e.Channels()
}

// Observe encodes the full grid from agent's perspective. Self-centric
// ordering: the observer's own location channel and orientation block come
// before the other agents', in slot order.
func (e *Episode) Observe(agent int) []int32 {
	n := len(e.Agents)
	ch := e.Channels()
	size := e.World.Width * e.World.Height
	obs := make([]int32, size*ch)
	base := 5 * n

	slot := 0
	encodeAgent := func(idx int) {
		a := e.Agents[idx]
		if a.Active {
			at := a.Pos * ch
			obs[at+slot] = 1
			obs[at+n+4*slot+int(a.Dir)] = 1
			if !a.Held.IsNone() {
				e.encodeObject(obs, at+base, a.Held, false)
			}
		}
		slot++
	}
	encodeAgent(agent)
	for idx := range e.Agents {
		if idx != agent {
			encodeAgent(idx)
		}
	}

	for cell := 0; cell < size; cell++ {
		at := cell*ch + base
		switch e.World.Terrain[cell] {
		case Pot:
			obs[at+chPotLoc] = 1
			if !e.World.Objects[cell].IsNone() {
				e.encodeObject(obs, at, e.World.Objects[cell], true)
			}
		case Counter:
			obs[at+chCounterLoc] = 1
			if !e.World.Objects[cell].IsNone() {
				e.encodeObject(obs, at, e.World.Objects[cell], false)
			}
		case OnionSource:
			obs[at+chOnionSourceLoc] = 1
		case TomatoSource:
			obs[at+chTomatoSourceLoc] = 1
		case DishSource:
			obs[at+chDishSourceLoc] = 1
		case Serving:
			obs[at+chServingLoc] = 1
		}
	}

	if e.World.Horizon-e.World.Timestep < urgencyWindow {
		for cell := 0; cell < size; cell++ {
			obs[cell*ch+base+chUrgency] = 1
		}
	}
	return obs
}

// encodeObject writes one object's features at a cell offset. inPot switches
// raw pot contents into the in-pot planes; a soup anywhere else (cooking or
// plated) uses the in-soup planes.
func (e *Episode) encodeObject(obs []int32, at int, obj Object, inPot bool) {
	switch obj.Kind {
	case KindSoup:
		if inPot && !obj.Cooking.Started {
			obs[at+chOnionsInPot] += int32(obj.Onions)
			obs[at+chTomatoesInPot] += int32(obj.Tomatoes)
			return
		}
		obs[at+chOnionsInSoup] += int32(obj.Onions)
		obs[at+chTomatoesInSoup] += int32(obj.Tomatoes)
		remaining := 0
		done := true
		if inPot {
			cookTime := e.World.RecipeTimes[obj.RecipeIndex()]
			remaining = cookTime - obj.Cooking.Ticks
			if remaining < 0 {
				remaining = 0
			}
			done = obj.Cooking.Ticks >= cookTime
		}
		obs[at+chCookRemaining] = int32(remaining)
		if done {
			obs[at+chSoupDone] = 1
		}
	case KindDish:
		obs[at+chDishes] = 1
	case KindOnion:
		obs[at+chOnions] = 1
	case KindTomato:
		obs[at+chTomatoes] = 1
	}
}

// ActionMask reports per-action validity: moves require an in-bounds floor
// target; Stay and Interact are always valid for an active agent.
func (e *Episode) ActionMask(agent int) [NumActions]bool {
	var mask [NumActions]bool
	a := e.Agents[agent]
	if !a.Active {
		return mask
	}
	for act := North; act <= West; act++ {
		target, ok := e.World.Neighbor(a.Pos, act.MoveDirection())
		mask[act] = ok && e.World.Terrain[target].Walkable()
	}
	mask[Stay] = true
	mask[Interact] = true
	return mask
}
