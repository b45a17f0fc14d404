package kitchen

// Terrain is the static cell type. It never changes after episode construction.
type Terrain uint8

const (
	Floor Terrain = iota
	Pot
	Counter
	OnionSource
	TomatoSource
	DishSource
	Serving
)

// Walkable reports whether an agent may stand on the cell. Counters and
// stations block movement; agents only ever occupy floor cells.
func (t Terrain) Walkable() bool {
	return t == Floor
}

func (t Terrain) valid() bool {
	return t <= Serving
}
