package app

import (
	"github.com/blaubaer/guessing-game/pkg/game"
)

// Presenter renders everything that happens to the game. All methods are
// called from the loop of App.Run.
type Presenter interface {
	OnStarted(game.Snapshot)
	OnOutcome(Source, game.Outcome)
	OnEnded(game.Snapshot)
	OnError(Source, error)
}

type noopPresenter struct{}

func (noopPresenter) OnStarted(game.Snapshot)        {}
func (noopPresenter) OnOutcome(Source, game.Outcome) {}
func (noopPresenter) OnEnded(game.Snapshot)          {}
func (noopPresenter) OnError(Source, error)          {}
