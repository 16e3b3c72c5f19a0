package signal

import (
	"fmt"
	"strings"

	"github.com/blaubaer/guessing-game/pkg/game"
)

type State uint8

const (
	StateIdle    = State(0)
	StatePlaying = State(1)
	StateWon     = State(2)
	StateLost    = State(3)
)

var (
	AllStates = States{
		StateIdle,
		StatePlaying,
		StateWon,
		StateLost,
	}
)

// StateOf returns the state a signal should show after the given outcome.
func StateOf(outcome game.Outcome) State {
	switch outcome.Kind {
	case game.OutcomeCorrect:
		return StateWon
	case game.OutcomeExhausted:
		return StateLost
	default:
		return StatePlaying
	}
}

func (this *State) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "idle", "off", "":
		*this = StateIdle
		return nil
	case "playing", "on":
		*this = StatePlaying
		return nil
	case "won":
		*this = StateWon
		return nil
	case "lost":
		*this = StateLost
		return nil
	default:
		return fmt.Errorf("illegal-signal-state: %s", plain)
	}
}

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-signal-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateIdle:
		return []byte("idle"), nil
	case StatePlaying:
		return []byte("playing"), nil
	case StateWon:
		return []byte("won"), nil
	case StateLost:
		return []byte("lost"), nil
	default:
		return nil, fmt.Errorf("illegal signal state: %d", this)
	}
}

func (this *State) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type States []State

func (this States) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this States) String() string {
	return strings.Join(this.Strings(), ",")
}
