package signal

import (
	"github.com/blaubaer/guessing-game/pkg/game"
)

type Context interface {
	State() State
	Snapshot() game.Snapshot
	// Outcome returns the last evaluated guess of the current session, if any.
	Outcome() (game.Outcome, bool)
}

// NewContext creates a Context of fixed values.
func NewContext(state State, snapshot game.Snapshot, outcome *game.Outcome) Context {
	return &staticContext{state, snapshot, outcome}
}

type staticContext struct {
	state    State
	snapshot game.Snapshot
	outcome  *game.Outcome
}

func (this *staticContext) State() State {
	return this.state
}

func (this *staticContext) Snapshot() game.Snapshot {
	return this.snapshot
}

func (this *staticContext) Outcome() (game.Outcome, bool) {
	if v := this.outcome; v != nil {
		return *v, true
	}
	return game.Outcome{}, false
}
