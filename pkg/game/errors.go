package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotActive = errors.New("no game is active")
)

// ValidationError is returned by ParseLimits and Session.Start if one of the
// fields is missing or illegal. Field tells the caller which value has to be
// requested again.
type ValidationError struct {
	Field  Field
	Value  string
	Reason string
}

func (this *ValidationError) Error() string {
	if this.Value == "" {
		return fmt.Sprintf("illegal %v: %s", this.Field, this.Reason)
	}
	return fmt.Sprintf("illegal %v %q: %s", this.Field, this.Value, this.Reason)
}

// InputError is returned by ParseGuess if the given text is not an integer.
type InputError struct {
	Value string
}

func (this *InputError) Error() string {
	if this.Value == "" {
		return "no guess provided"
	}
	return fmt.Sprintf("illegal guess %q: not an integer", this.Value)
}
