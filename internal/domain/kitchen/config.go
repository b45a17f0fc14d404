package kitchen

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid kitchen config")

// Config is the static per-episode description consumed once at construction.
// Reward tables are indexed by Object.RecipeIndex.
type Config struct {
	Width   int
	Height  int
	Terrain []Terrain

	// StartCells holds one floor cell index per player, in slot order.
	StartCells []int

	PlacementInPotReward int
	DishPickupReward     int
	SoupPickupReward     int

	RecipeValues [NumRecipes]int
	RecipeTimes  [NumRecipes]int

	Horizon int
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	size := c.Width * c.Height
	if size > MaxCells {
		return fmt.Errorf("%w: %d cells exceeds capacity %d", ErrInvalidConfig, size, MaxCells)
	}
	if len(c.Terrain) != size {
		return fmt.Errorf("%w: terrain has %d cells, want %d", ErrInvalidConfig, len(c.Terrain), size)
	}
	for i, t := range c.Terrain {
		if !t.valid() {
			return fmt.Errorf("%w: unknown terrain %d at cell %d", ErrInvalidConfig, t, i)
		}
	}
	if len(c.StartCells) == 0 || len(c.StartCells) > MaxPlayers {
		return fmt.Errorf("%w: %d players, want 1..%d", ErrInvalidConfig, len(c.StartCells), MaxPlayers)
	}
	seen := map[int]bool{}
	for _, cell := range c.StartCells {
		if cell < 0 || cell >= size {
			return fmt.Errorf("%w: start cell %d out of bounds", ErrInvalidConfig, cell)
		}
		if !c.Terrain[cell].Walkable() {
			return fmt.Errorf("%w: start cell %d is not floor", ErrInvalidConfig, cell)
		}
		if seen[cell] {
			return fmt.Errorf("%w: duplicate start cell %d", ErrInvalidConfig, cell)
		}
		seen[cell] = true
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon %d", ErrInvalidConfig, c.Horizon)
	}
	for i := range c.RecipeTimes {
		if c.RecipeTimes[i] < 0 || c.RecipeValues[i] < 0 {
			return fmt.Errorf("%w: negative recipe entry at index %d", ErrInvalidConfig, i)
		}
	}
	if c.PlacementInPotReward < 0 || c.DishPickupReward < 0 || c.SoupPickupReward < 0 {
		return fmt.Errorf("%w: negative shaping reward", ErrInvalidConfig)
	}
	return nil
}
