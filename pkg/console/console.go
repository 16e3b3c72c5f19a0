package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/guessing-game/pkg/app"
	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/game"
	"github.com/blaubaer/guessing-game/pkg/i18n"
)

var (
	errQuit          = errors.New("quit")
	errPromptAborted = errors.New("prompt aborted")
)

// Game is the part of app.App the console works with.
type Game interface {
	Submit(context.Context, app.Command) (app.Reply, error)
	Snapshot() game.Snapshot
	LastGame() app.GameConfiguration
}

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	SetPrompt(string)
	ReadlineWithDefault(string) (string, error)
}

// Console asks the player for the limits of a game and for guesses. It is
// also the app.Presenter which prints everything that happens to the game,
// regardless of where the command came from.
type Console struct {
	Game       Game
	Printer    *i18n.Printer
	Transcript *Transcript
	Stdout     io.Writer

	mutex sync.Mutex
}

// Run reads from reader until the player quits, reader is exhausted or ctx
// is done.
func (this *Console) Run(ctx context.Context, reader LineReader) error {
	this.println(this.Printer.Sprintf("help"))

	for ctx.Err() == nil {
		var err error
		if this.Game.Snapshot().Active {
			err = this.guess(ctx, reader)
		} else {
			err = this.start(ctx, reader)
		}

		switch {
		case err == nil, errors.Is(err, errPromptAborted):
		case errors.Is(err, errQuit), errors.Is(err, io.EOF), errors.Is(err, readline.ErrInterrupt):
			log.Debug("Console closed by player.")
			return nil
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}
	}
	return nil
}

func (this *Console) start(ctx context.Context, reader LineReader) error {
	last := this.Game.LastGame()
	values := []string{last.Min, last.Max, last.MaxTries}

	for i, field := range game.AllFields {
		v, err := this.ask(ctx, reader, "prompt."+field.String(), values[i])
		if err != nil {
			return err
		}
		values[i] = v
	}

	for {
		reply, err := this.Game.Submit(ctx, app.Start(app.SourceConsole, values[0], values[1], values[2]))
		if err != nil {
			return err
		}

		vErr, ok := common.AsError[*game.ValidationError](reply.Err)
		if !ok {
			return nil
		}

		i := int(vErr.Field)
		if values[i], err = this.ask(ctx, reader, "prompt."+vErr.Field.String(), values[i]); err != nil {
			return err
		}
	}
}

func (this *Console) guess(ctx context.Context, reader LineReader) error {
	v, err := this.ask(ctx, reader, "prompt.guess", "")
	if err != nil {
		return err
	}
	_, err = this.Game.Submit(ctx, app.Guess(app.SourceConsole, v))
	return err
}

// ask prompts until the player enters something which is not a console
// command.
func (this *Console) ask(ctx context.Context, reader LineReader, promptKey, def string) (string, error) {
	prompt := this.Printer.Sprintf(promptKey) + ": "
	for {
		reader.SetPrompt(prompt)
		line, err := reader.ReadlineWithDefault(def)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)

		handled, err := this.command(ctx, line)
		if err != nil {
			return "", err
		}
		if !handled {
			return line, nil
		}
	}
}

func (this *Console) command(ctx context.Context, line string) (handled bool, err error) {
	switch strings.ToLower(line) {
	case ":quit", ":exit", ":q":
		return true, errQuit
	case ":help", ":h", ":?":
		this.println(this.Printer.Sprintf("help"))
		return true, nil
	case ":log":
		this.printTranscript()
		return true, nil
	case ":end":
		if _, err := this.Game.Submit(ctx, app.End(app.SourceConsole)); err != nil {
			return true, err
		}
		return true, errPromptAborted
	default:
		return false, nil
	}
}

func (this *Console) OnStarted(s game.Snapshot) {
	if s.Limits.IsUnlimited() {
		this.println(this.Printer.Sprintf("game.started", s.Limits.Min, s.Limits.Max))
	} else {
		this.println(this.Printer.Sprintf("game.started.limited", s.Limits.Min, s.Limits.Max, s.Limits.MaxTries))
	}
}

func (this *Console) OnOutcome(source app.Source, o game.Outcome) {
	if source == app.SourceSpeech {
		this.println(this.Printer.Sprintf("speech.heard", o.Guess))
	}

	switch o.Kind {
	case game.OutcomeCorrect:
		this.println(this.Printer.Sprintf("outcome.correct", o.Guess, o.TriesUsed, o.ElapsedSeconds()))
	case game.OutcomeExhausted:
		this.println(this.Printer.Sprintf("outcome.exhausted", o.Guess, o.Target))
	default:
		this.println(this.Printer.Sprintf("outcome."+o.Kind.String(), o.Guess))
		if o.TriesLeft >= 0 {
			this.println(this.Printer.Sprintf("tries.left", o.TriesLeft))
		}
	}
}

func (this *Console) OnEnded(game.Snapshot) {
	this.println(this.Printer.Sprintf("game.ended"))
}

func (this *Console) OnError(_ app.Source, err error) {
	if vErr, ok := common.AsError[*game.ValidationError](err); ok {
		this.println(this.Printer.Sprintf("error." + vErr.Field.String()))
		return
	}

	switch {
	case errors.As(err, new(*game.InputError)):
		this.println(this.Printer.Sprintf("error.input"))
	case errors.Is(err, game.ErrNotActive):
		this.println(this.Printer.Sprintf("game.notActive"))
	default:
		this.println(err.Error())
	}
}

func (this *Console) printTranscript() {
	if this.Transcript == nil {
		return
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()

	if _, err := this.Transcript.WriteTo(this.stdout()); err != nil {
		log.WithError(err).
			Warn("Cannot print log.")
	}
}

func (this *Console) println(s string) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if _, err := fmt.Fprintln(this.stdout(), s); err != nil {
		log.WithError(err).
			Warn("Cannot print to console.")
	}
}

func (this *Console) stdout() io.Writer {
	if v := this.Stdout; v != nil {
		return v
	}
	return os.Stdout
}
