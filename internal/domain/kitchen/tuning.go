package kitchen

const (
	// MaxCells bounds the flat terrain array; layouts larger than this are rejected.
	MaxCells = 256

	// MaxPlayers is the number of agent slots reserved per episode.
	MaxPlayers = 2

	// MaxIngredients is the pot capacity; a pot starts cooking when it is reached.
	MaxIngredients = 3

	// NumRecipes spans every (onions, tomatoes) pair up to MaxIngredients each.
	NumRecipes = (MaxIngredients + 1) * (MaxIngredients + 1)

	// NumActions is the size of the discrete action space.
	NumActions = 6

	baseChannels  = 16
	urgencyWindow = 40
)
