package systray

import (
	"fmt"

	"github.com/getlantern/systray"

	"github.com/blaubaer/guessing-game/pkg/i18n"
	"github.com/blaubaer/guessing-game/pkg/signal"
)

// Systray shows the state of the game as icon and tooltip of the tray entry.
// It requires systray.Run to be active.
type Systray struct {
	IconIdle    []byte
	IconPlaying []byte
	IconWon     []byte
	IconLost    []byte

	// Printer renders the tooltip. Without one the base locale is used.
	Printer *i18n.Printer
}

func (this *Systray) Initialize() error {
	for _, state := range signal.AllStates {
		if len(this.iconOf(state)) == 0 {
			return fmt.Errorf("icon for %v is empty", state)
		}
	}
	return nil
}

func (this *Systray) Dispose() error {
	return nil
}

func (this *Systray) Ensure(ctx signal.Context) error {
	state := ctx.State()
	icon := this.iconOf(state)
	if len(icon) == 0 {
		return fmt.Errorf("cannot ensure tray state: %v", state)
	}
	systray.SetIcon(icon)
	systray.SetTooltip(this.Tooltip(ctx))
	return nil
}

// Tooltip renders the short status line shown when hovering the tray icon.
func (this *Systray) Tooltip(ctx signal.Context) string {
	p := this.printer()
	s := ctx.Snapshot()
	switch ctx.State() {
	case signal.StatePlaying:
		if s.Limits.IsUnlimited() {
			return p.Sprintf("tray.playing", s.Limits.Min, s.Limits.Max, s.TriesUsed)
		}
		return p.Sprintf("tray.playing.limited", s.Limits.Min, s.Limits.Max, s.TriesLeft, s.Limits.MaxTries)
	case signal.StateWon:
		if o, ok := ctx.Outcome(); ok {
			return p.Sprintf("tray.won", o.Guess, o.TriesUsed)
		}
	case signal.StateLost:
		if o, ok := ctx.Outcome(); ok {
			return p.Sprintf("tray.lost", o.Target)
		}
	}
	return p.Sprintf("tray.idle")
}

func (this *Systray) printer() *i18n.Printer {
	if v := this.Printer; v != nil {
		return v
	}
	return i18n.MustLoadEmbedded().Printer(i18n.BaseLocale)
}

func (this *Systray) iconOf(state signal.State) []byte {
	switch state {
	case signal.StateIdle:
		return this.IconIdle
	case signal.StatePlaying:
		return this.IconPlaying
	case signal.StateWon:
		return this.IconWon
	case signal.StateLost:
		return this.IconLost
	default:
		return nil
	}
}

func (this *Systray) Update() error {
	return nil
}

func (this *Systray) GetType() signal.Type {
	return signal.TypeSystray
}
