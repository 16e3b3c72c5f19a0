package app

import (
	"fmt"
	"strconv"

	"github.com/blaubaer/guessing-game/pkg/game"
)

type Source uint8

const (
	SourceConsole = Source(0)
	SourceSpeech  = Source(1)
	SourceTray    = Source(2)
)

func (this Source) String() string {
	switch this {
	case SourceConsole:
		return "console"
	case SourceSpeech:
		return "speech"
	case SourceTray:
		return "tray"
	default:
		return fmt.Sprintf("illegal-source-%d", this)
	}
}

type CommandKind uint8

const (
	CommandStart = CommandKind(0)
	CommandGuess = CommandKind(1)
	CommandEnd   = CommandKind(2)
)

func (this CommandKind) String() string {
	switch this {
	case CommandStart:
		return "start"
	case CommandGuess:
		return "guess"
	case CommandEnd:
		return "end"
	default:
		return fmt.Sprintf("illegal-command-%d", this)
	}
}

// Command is posted by producers (console, speech, tray) and executed by the
// single loop of App.Run.
type Command struct {
	Kind   CommandKind
	Source Source

	// Min, Max and MaxTries are the raw values of CommandStart.
	Min      string
	Max      string
	MaxTries string

	// Input is the raw guess of CommandGuess.
	Input string

	sessionId string
	reply     chan Reply
}

func Start(source Source, min, max, maxTries string) Command {
	return Command{Kind: CommandStart, Source: source, Min: min, Max: max, MaxTries: maxTries}
}

func Guess(source Source, input string) Command {
	return Command{Kind: CommandGuess, Source: source, Input: input}
}

func GuessValue(source Source, value int) Command {
	return Guess(source, strconv.Itoa(value))
}

func End(source Source) Command {
	return Command{Kind: CommandEnd, Source: source}
}

// Reply is the result of an executed Command. Err is one of
// *game.ValidationError, *game.InputError or game.ErrNotActive.
type Reply struct {
	Snapshot game.Snapshot
	Outcome  *game.Outcome
	Err      error
}
