package game

import (
	"fmt"
	"time"
)

type OutcomeKind uint8

const (
	OutcomeTooHigh   = OutcomeKind(0)
	OutcomeTooLow    = OutcomeKind(1)
	OutcomeCorrect   = OutcomeKind(2)
	OutcomeExhausted = OutcomeKind(3)
)

func (this OutcomeKind) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-outcome-%d", this)
	}
	return string(v)
}

func (this OutcomeKind) MarshalText() (text []byte, err error) {
	switch this {
	case OutcomeTooHigh:
		return []byte("tooHigh"), nil
	case OutcomeTooLow:
		return []byte("tooLow"), nil
	case OutcomeCorrect:
		return []byte("correct"), nil
	case OutcomeExhausted:
		return []byte("exhausted"), nil
	default:
		return nil, fmt.Errorf("illegal outcome: %d", this)
	}
}

// IsTerminal reports whether the session ended with this outcome.
func (this OutcomeKind) IsTerminal() bool {
	return this == OutcomeCorrect || this == OutcomeExhausted
}

// Outcome is the result of a single evaluated guess. Target is only set for
// terminal outcomes.
type Outcome struct {
	Kind      OutcomeKind   `json:"kind"`
	Guess     int           `json:"guess"`
	Target    int           `json:"target,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
	TriesUsed int           `json:"triesUsed"`
	// TriesLeft is -1 if the session has no try limit.
	TriesLeft int `json:"triesLeft"`
}

func (this Outcome) ElapsedSeconds() float64 {
	return this.Elapsed.Seconds()
}

func (this Outcome) String() string {
	switch this.Kind {
	case OutcomeCorrect:
		return fmt.Sprintf("%d: %v after %d tries in %v", this.Guess, this.Kind, this.TriesUsed, this.Elapsed.Truncate(time.Millisecond))
	case OutcomeExhausted:
		return fmt.Sprintf("%d: %v, target was %d", this.Guess, this.Kind, this.Target)
	default:
		return fmt.Sprintf("%d: %v", this.Guess, this.Kind)
	}
}
