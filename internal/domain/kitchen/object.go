package kitchen

// ObjectKind tags the carryable/cookable value held by an agent, sitting on a
// counter, or accumulating inside a pot.
type ObjectKind uint8

const (
	KindNone ObjectKind = iota
	KindTomato
	KindOnion
	KindDish
	KindSoup
)

// CookTimer tracks pot progress. Started distinguishes "never cooked" from
// "cooking with zero elapsed ticks", so no sentinel values are needed.
type CookTimer struct {
	Started bool
	Ticks   int
}

// Object is a value type. Copying it is intentional: plating copies a pot's
// composition onto the plated soup and the pot is cleared separately.
type Object struct {
	Kind     ObjectKind
	Onions   int
	Tomatoes int
	Cooking  CookTimer
}

func (o Object) IsNone() bool {
	return o.Kind == KindNone
}

// IsIngredient reports whether the object can be transferred into a pot.
func (o Object) IsIngredient() bool {
	return o.Kind == KindOnion || o.Kind == KindTomato
}

func (o Object) Ingredients() int {
	return o.Onions + o.Tomatoes
}

// RecipeIndex maps the (onions, tomatoes) composition into the recipe table
// space via a fixed bijection.
func (o Object) RecipeIndex() int {
	return (MaxIngredients+1)*o.Onions + o.Tomatoes
}
