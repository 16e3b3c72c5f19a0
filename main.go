package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/chzyer/readline"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
	"github.com/getlantern/systray"

	"github.com/blaubaer/guessing-game/pkg/app"
	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/console"
	"github.com/blaubaer/guessing-game/pkg/i18n"
	ps "github.com/blaubaer/guessing-game/pkg/signal"
	pst "github.com/blaubaer/guessing-game/pkg/signal/systray"
)

const title = "Guessing game"

func main() {
	wf := &writerFacade{delegates: []io.Writer{os.Stderr}}
	transcript := console.NewTranscript(2000, 4096)
	consumer.Default = consumer.NewWriter(wf)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()
	var tray bool

	cmd := kingpin.New("guessing-game", "Guess the number which was drawn, by typing or by voice.").
		Action(func(*kingpin.ParseContext) error {
			catalog, err := i18n.LoadEmbedded()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			term := terminal{os.Stdin, os.Stdout}
			traySignal := &pst.Systray{
				IconIdle:    idleIcon,
				IconPlaying: playingIcon,
				IconWon:     wonIcon,
				IconLost:    lostIcon,
			}
			if tray {
				a.OtherSignals = append(a.OtherSignals, traySignal)

				dc, err := console.NewDedicatedConsole(title)
				if errors.Is(err, console.ErrUnsupported) {
					log.Debug("No dedicated console available, using the current terminal.")
				} else if err != nil {
					return err
				} else {
					defer func() { _ = dc.Close() }()
					dc.OnCtrlC = func(any) bool {
						cancel()
						return false
					}
					term = terminal{dc.Stdin, dc.Stdout}
					common.Terminal.Stdin = dc.Stdin
					common.Terminal.Stdout = dc.Stdout
					wf.set([]io.Writer{dc.Stdout})
				}
			}

			if err := a.Initialize(); err != nil {
				return err
			}
			dispose := sync.OnceFunc(func() {
				if err := a.Dispose(); err != nil {
					log.WithError(err).
						Warn("Cannot dispose everything properly.")
				}
			})
			defer dispose()

			printer := catalog.Printer(localeOf(a))
			traySignal.Printer = printer

			if !tray {
				return play(ctx, a, printer, transcript, wf, term)
			}

			var rErr error
			systray.Run(func() {
				defer systray.Quit()
				defer dispose()
				rErr = playInTray(ctx, a, printer, transcript, wf, term)
			}, nil)
			return rErr
		})
	a.SetupConfiguration(cmd)

	cmd.Flag("tray", "Shows the state of the game in the system tray.").
		Envar("GG_TRAY").
		BoolVar(&tray)
	cmd.Flag("log.level", "").
		Envar("GG_LOG_LEVEL").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Envar("GG_LOG_FORMAT").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Envar("GG_LOG_COLOR").
		Default("auto").
		SetValue(lv.Consumer.Formatter.ColorMode)

	kingpin.MustParse(cmd.Parse(os.Args[1:]))
}

type terminal struct {
	stdin  io.ReadCloser
	stdout io.Writer
}

func play(ctx context.Context, a *app.App, printer *i18n.Printer, transcript *console.Transcript, wf *writerFacade, term terminal) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rl, err := readline.NewEx(&readline.Config{
		Stdin:           readline.NewCancelableStdin(term.stdin),
		Stdout:          term.stdout,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("cannot open console: %w", err)
	}

	c := &console.Console{
		Game:       a,
		Printer:    printer,
		Transcript: transcript,
		Stdout:     rl.Stdout(),
	}
	a.Presenter = c

	// While the player is typing, log output would garble the prompt.
	wf.set([]io.Writer{transcript})
	defer wf.set([]io.Writer{transcript, term.stdout})

	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()
	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()

	rErr := c.Run(ctx, rl)
	cancel()
	if err := <-done; err != nil && rErr == nil {
		rErr = err
	}
	return rErr
}

func playInTray(ctx context.Context, a *app.App, printer *i18n.Printer, transcript *console.Transcript, wf *writerFacade, term terminal) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	systray.SetIcon(idleIcon)
	systray.SetTitle(title)
	endMi := systray.AddMenuItem("End game", "Aborts the running game.")
	quitMi := systray.AddMenuItem("Exit", "Exit the guessing game.")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-endMi.ClickedCh:
				if err := a.Post(ctx, app.End(app.SourceTray)); err != nil {
					log.WithError(err).
						Debug("Cannot end game.")
				}
			case <-quitMi.ClickedCh:
				log.Info("Exit clicked. Going down...")
				cancel()
			}
		}
	}()

	return play(ctx, a, printer, transcript, wf, term)
}

func localeOf(a *app.App) string {
	if v := a.Locale(); v != "" {
		return v
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v, _, _ := strings.Cut(os.Getenv(key), "."); v != "" && v != "C" && v != "POSIX" {
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return i18n.BaseLocale
}

type writerFacade struct {
	delegates []io.Writer
	mutex     sync.RWMutex
}

func (this *writerFacade) Write(p []byte) (n int, err error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	for i, w := range this.delegates {
		var nn int
		if nn, err = w.Write(p); err != nil {
			return n, err
		}
		if i == 0 {
			n = nn
		} else if n != nn {
			return n, fmt.Errorf("the previous writer wrote %d, but the current one wrote %d bytes", n, nn)
		}
	}

	return
}

func (this *writerFacade) set(next []io.Writer) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.delegates = next
}

var (
	_ ps.Signal = (*pst.Systray)(nil)

	//go:embed assets/idle.ico
	idleIcon []byte
	//go:embed assets/playing.ico
	playingIcon []byte
	//go:embed assets/won.ico
	wonIcon []byte
	//go:embed assets/lost.ico
	lostIcon []byte
)
