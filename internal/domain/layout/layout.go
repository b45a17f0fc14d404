package layout

import (
	"errors"
	"fmt"
	"strings"

	"cookline/internal/domain/kitchen"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("invalid layout")

const (
	DefaultHorizon     = 400
	DefaultCookTime    = 20
	DefaultRecipeValue = 20
	DefaultOrderBonus  = 2

	DefaultPlacementInPotReward = 3
	DefaultDishPickupReward     = 3
	DefaultSoupPickupReward     = 5
)

// Order is one recipe the kitchen accepts. Recipes not listed here deliver
// for zero reward.
type Order struct {
	Onions   int  `yaml:"onions"`
	Tomatoes int  `yaml:"tomatoes"`
	Value    int  `yaml:"value,omitempty"`
	Time     int  `yaml:"time,omitempty"`
	Bonus    bool `yaml:"bonus,omitempty"`
}

// Shaping holds the per-interaction reward constants. Pointers distinguish
// "unset, use default" from an explicit zero.
type Shaping struct {
	PlacementInPot *int `yaml:"placement_in_pot,omitempty"`
	DishPickup     *int `yaml:"dish_pickup,omitempty"`
	SoupPickup     *int `yaml:"soup_pickup,omitempty"`
}

// Definition is the on-disk kitchen description: an ASCII grid plus reward
// and cook-time tuning. Grid characters: space=floor, P=pot, X=counter,
// O=onion source, T=tomato source, D=dish source, S=serving window, digits
// 1..9 mark player start cells on floor.
type Definition struct {
	Name    string  `yaml:"name"`
	Grid    string  `yaml:"grid"`
	Horizon int     `yaml:"horizon,omitempty"`
	Orders  []Order `yaml:"orders"`
	Shaping Shaping `yaml:"shaping,omitempty"`

	// Uniform overrides; when set they win over per-ingredient derivation
	// and over per-order value/time entries.
	CookTime       int `yaml:"cook_time,omitempty"`
	DeliveryReward int `yaml:"delivery_reward,omitempty"`

	// Per-ingredient derivation: value/time scale with composition when both
	// members of a pair are set.
	OnionTime   *int `yaml:"onion_time,omitempty"`
	TomatoTime  *int `yaml:"tomato_time,omitempty"`
	OnionValue  *int `yaml:"onion_value,omitempty"`
	TomatoValue *int `yaml:"tomato_value,omitempty"`

	OrderBonus int `yaml:"order_bonus,omitempty"`
}

func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return def, nil
}

// Config compiles the definition into the core's static episode config.
func (d Definition) Config() (kitchen.Config, error) {
	width, height, terrain, starts, err := parseGrid(d.Grid)
	if err != nil {
		return kitchen.Config{}, err
	}
	if len(d.Orders) == 0 {
		return kitchen.Config{}, fmt.Errorf("%w: layout %q defines no orders", ErrInvalidLayout, d.Name)
	}

	cfg := kitchen.Config{
		Width:                width,
		Height:               height,
		Terrain:              terrain,
		StartCells:           starts,
		Horizon:              orDefault(d.Horizon, DefaultHorizon),
		PlacementInPotReward: orDefaultPtr(d.Shaping.PlacementInPot, DefaultPlacementInPotReward),
		DishPickupReward:     orDefaultPtr(d.Shaping.DishPickup, DefaultDishPickupReward),
		SoupPickupReward:     orDefaultPtr(d.Shaping.SoupPickup, DefaultSoupPickupReward),
	}

	times := d.baseTimes()
	values := d.baseValues()

	ordered := make([]bool, kitchen.NumRecipes)
	bonus := make([]bool, kitchen.NumRecipes)
	for _, o := range d.Orders {
		idx, err := recipeIndex(o)
		if err != nil {
			return kitchen.Config{}, err
		}
		ordered[idx] = true
		bonus[idx] = o.Bonus
		if o.Time > 0 {
			times[idx] = o.Time
		}
		if o.Value > 0 {
			values[idx] = o.Value
		}
	}
	// Uniform overrides wipe the per-order entries; the bonus multiplier and
	// the zeroing of unlisted recipes apply last.
	if d.CookTime > 0 {
		for i := range times {
			times[i] = d.CookTime
		}
	}
	if d.DeliveryReward > 0 {
		for i := range values {
			values[i] = d.DeliveryReward
		}
	}
	for idx := range values {
		if bonus[idx] {
			values[idx] *= orDefault(d.OrderBonus, DefaultOrderBonus)
		}
		if !ordered[idx] {
			values[idx] = 0
		}
	}

	copy(cfg.RecipeTimes[:], times)
	copy(cfg.RecipeValues[:], values)
	return cfg, cfg.Validate()
}

func (d Definition) baseTimes() []int {
	times := make([]int, kitchen.NumRecipes)
	for i := range times {
		times[i] = DefaultCookTime
	}
	if d.OnionTime != nil && d.TomatoTime != nil {
		for o := 0; o <= kitchen.MaxIngredients; o++ {
			for t := 0; t <= kitchen.MaxIngredients; t++ {
				times[(kitchen.MaxIngredients+1)*o+t] = o**d.OnionTime + t**d.TomatoTime
			}
		}
	}
	return times
}

func (d Definition) baseValues() []int {
	values := make([]int, kitchen.NumRecipes)
	for i := range values {
		values[i] = DefaultRecipeValue
	}
	if d.OnionValue != nil && d.TomatoValue != nil {
		for o := 0; o <= kitchen.MaxIngredients; o++ {
			for t := 0; t <= kitchen.MaxIngredients; t++ {
				values[(kitchen.MaxIngredients+1)*o+t] = o**d.OnionValue + t**d.TomatoValue
			}
		}
	}
	return values
}

func parseGrid(grid string) (width, height int, terrain []kitchen.Terrain, starts []int, err error) {
	rows := strings.Split(strings.Trim(grid, "\n"), "\n")
	if len(rows) == 0 || rows[0] == "" {
		return 0, 0, nil, nil, fmt.Errorf("%w: empty grid", ErrInvalidLayout)
	}
	width = len(rows[0])
	height = len(rows)
	terrain = make([]kitchen.Terrain, 0, width*height)
	startByDigit := map[rune]int{}

	for y, row := range rows {
		if len(row) != width {
			return 0, 0, nil, nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidLayout, y, len(row), width)
		}
		for x, c := range row {
			cell := y*width + x
			switch {
			case c == ' ':
				terrain = append(terrain, kitchen.Floor)
			case c == 'P':
				terrain = append(terrain, kitchen.Pot)
			case c == 'X':
				terrain = append(terrain, kitchen.Counter)
			case c == 'O':
				terrain = append(terrain, kitchen.OnionSource)
			case c == 'T':
				terrain = append(terrain, kitchen.TomatoSource)
			case c == 'D':
				terrain = append(terrain, kitchen.DishSource)
			case c == 'S':
				terrain = append(terrain, kitchen.Serving)
			case c >= '1' && c <= '9':
				terrain = append(terrain, kitchen.Floor)
				if _, dup := startByDigit[c]; dup {
					return 0, 0, nil, nil, fmt.Errorf("%w: duplicate start marker %q", ErrInvalidLayout, c)
				}
				startByDigit[c] = cell
			default:
				return 0, 0, nil, nil, fmt.Errorf("%w: unknown grid char %q at (%d,%d)", ErrInvalidLayout, c, x, y)
			}
		}
	}

	for c := '1'; c <= '9'; c++ {
		cell, ok := startByDigit[c]
		if !ok {
			break
		}
		starts = append(starts, cell)
	}
	if len(starts) != len(startByDigit) {
		return 0, 0, nil, nil, fmt.Errorf("%w: start markers must be consecutive from 1", ErrInvalidLayout)
	}
	return width, height, terrain, starts, nil
}

func recipeIndex(o Order) (int, error) {
	if o.Onions < 0 || o.Tomatoes < 0 || o.Onions+o.Tomatoes == 0 || o.Onions > kitchen.MaxIngredients || o.Tomatoes > kitchen.MaxIngredients || o.Onions+o.Tomatoes > kitchen.MaxIngredients {
		return 0, fmt.Errorf("%w: order with %d onions, %d tomatoes", ErrInvalidLayout, o.Onions, o.Tomatoes)
	}
	return (kitchen.MaxIngredients+1)*o.Onions + o.Tomatoes, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultPtr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
