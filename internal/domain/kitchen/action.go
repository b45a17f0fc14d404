package kitchen

// Action is one agent's discrete choice for a tick.
type Action int

const (
	North Action = iota
	South
	East
	West
	Stay
	Interact
)

func (a Action) Valid() bool {
	return a >= North && a <= Interact
}

// IsMove reports whether the action is directional. Stay and Interact keep
// the agent's position and facing.
func (a Action) IsMove() bool {
	return a >= North && a <= West
}

// MoveDirection is only meaningful when IsMove holds; the four directional
// actions share their encoding with Direction.
func (a Action) MoveDirection() Direction {
	return Direction(a)
}

// Direction is an agent's facing, encoded identically to the four move actions.
type Direction uint8

const (
	DirNorth Direction = iota
	DirSouth
	DirEast
	DirWest
)

// Offset is the grid-coordinate delta of one step in the direction. North
// decreases the row index.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	default:
		return -1, 0
	}
}
