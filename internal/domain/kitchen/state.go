package kitchen

import "errors"

// ErrInvariant marks defects: states the step pipeline must never reach.
// These are never tolerated silently, unlike no-op interactions.
var ErrInvariant = errors.New("kitchen invariant violated")

// WorldState owns everything the step pipeline mutates besides the agents.
// Exactly one exists per episode instance; Reset rebuilds it from the same
// Config it was constructed with.
type WorldState struct {
	Width  int
	Height int

	Terrain      []Terrain
	PotCells     []int
	CounterCells []int

	// Objects is the per-cell contents: pot loads and counter shelf items.
	Objects []Object

	Timestep int
	Horizon  int

	PlacementInPotReward int
	DishPickupReward     int
	SoupPickupReward     int
	RecipeValues         [NumRecipes]int
	RecipeTimes          [NumRecipes]int

	// TickReward accumulates the cooperative scalar during one tick.
	TickReward     int
	TickDeliveries int
}

// Neighbor returns the cell one step in dir from cell, and whether that cell
// is inside the grid.
func (w *WorldState) Neighbor(cell int, dir Direction) (int, bool) {
	dx, dy := dir.Offset()
	x := cell%w.Width + dx
	y := cell/w.Width + dy
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return 0, false
	}
	return y*w.Width + x, true
}

// Episode is one self-contained environment instance: a WorldState plus the
// reserved agent slots. Instances share nothing, so a host harness may step
// many of them side by side.
type Episode struct {
	cfg    Config
	World  WorldState
	Agents []AgentState
}

func NewEpisode(cfg Config) (*Episode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Episode{cfg: cfg}
	e.Reset()
	return e, nil
}

// Reset reconstructs world and agents from the episode's static configuration.
// Layouts are fixed per training run; reset never varies them.
func (e *Episode) Reset() {
	cfg := e.cfg
	size := cfg.Width * cfg.Height

	w := WorldState{
		Width:                cfg.Width,
		Height:               cfg.Height,
		Terrain:              make([]Terrain, size),
		Objects:              make([]Object, size),
		Horizon:              cfg.Horizon,
		PlacementInPotReward: cfg.PlacementInPotReward,
		DishPickupReward:     cfg.DishPickupReward,
		SoupPickupReward:     cfg.SoupPickupReward,
		RecipeValues:         cfg.RecipeValues,
		RecipeTimes:          cfg.RecipeTimes,
	}
	copy(w.Terrain, cfg.Terrain)
	for cell, t := range w.Terrain {
		switch t {
		case Pot:
			w.PotCells = append(w.PotCells, cell)
		case Counter:
			w.CounterCells = append(w.CounterCells, cell)
		}
	}
	e.World = w

	e.Agents = make([]AgentState, len(cfg.StartCells))
	for i, cell := range cfg.StartCells {
		e.Agents[i] = AgentState{Active: true, Pos: cell, Dir: DirNorth}
	}
}

func (e *Episode) NumAgents() int {
	return len(e.Agents)
}

func (e *Episode) Config() Config {
	return e.cfg
}

// PotState names the cooking state machine's phases, mostly for tests and
// event reporting; the pipeline itself branches on the underlying Object.
type PotState uint8

const (
	PotEmpty PotState = iota
	PotFilling
	PotCooking
	PotReady
)

func (e *Episode) PotStateAt(cell int) PotState {
	pot := e.World.Objects[cell]
	switch {
	case pot.IsNone():
		return PotEmpty
	case !pot.Cooking.Started:
		return PotFilling
	case pot.Cooking.Ticks >= e.World.RecipeTimes[pot.RecipeIndex()]:
		return PotReady
	default:
		return PotCooking
	}
}
