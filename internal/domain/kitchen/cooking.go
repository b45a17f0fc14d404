package kitchen

// advanceCooking moves every cooking pot forward one tick. It runs for all
// pots, every tick, regardless of agent actions. Progress freezes once the
// recipe's cook time is reached; ready soup waits until it is plated.
func (e *Episode) advanceCooking() {
	for _, cell := range e.World.PotCells {
		pot := &e.World.Objects[cell]
		if !pot.Cooking.Started {
			continue
		}
		if pot.Cooking.Ticks < e.World.RecipeTimes[pot.RecipeIndex()] {
			pot.Cooking.Ticks++
		}
	}
}
