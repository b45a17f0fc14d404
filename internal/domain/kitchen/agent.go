package kitchen

// AgentState carries one agent slot. The proposed fields exist only for the
// two-phase movement protocol: every proposal is computed from the pre-tick
// snapshot, conflicts are resolved, then all agents commit at once.
type AgentState struct {
	Active bool
	Pos    int
	Dir    Direction
	Held   Object

	proposedPos int
	proposedDir Direction
}

func (a *AgentState) HasObject() bool {
	return !a.Held.IsNone()
}

// TakeHeld empties the agent's hands and returns what it was holding.
func (a *AgentState) TakeHeld() Object {
	obj := a.Held
	a.Held = Object{}
	return obj
}

func (a *AgentState) propose(pos int, dir Direction) {
	a.proposedPos = pos
	a.proposedDir = dir
}

// revert cancels the proposed move but keeps the proposed facing; a blocked
// or colliding agent still turns in place.
func (a *AgentState) revert() {
	a.proposedPos = a.Pos
}

func (a *AgentState) commit() {
	a.Pos = a.proposedPos
	a.Dir = a.proposedDir
}
