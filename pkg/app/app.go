package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/guessing-game/pkg/audio"
	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/game"
	"github.com/blaubaer/guessing-game/pkg/signal"
	"github.com/blaubaer/guessing-game/pkg/signal/facade"
	"github.com/blaubaer/guessing-game/pkg/speech"
)

const commandQueueSize = 16

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

type SpeechListener interface {
	Listen(context.Context, func(speech.Utterance)) error
}

// App owns the one game.Session. Every producer (console, speech, tray)
// talks to it only through commands which are executed one after another by
// Run.
type App struct {
	AudioStack        audio.Stack
	Signal            facade.Facade
	OtherSignals      []signal.Signal
	Presenter         Presenter
	Session           *game.Session
	Speech            SpeechListener
	ConfigurationFile string

	configFromFlags Configuration
	config          Configuration
	configLoaded    bool
	configMutex     sync.RWMutex

	commands     chan Command
	lastContext  atomic.Value
	speechCancel context.CancelFunc

	initialized sync.Once
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		Envar("GG_CONFIGURATION").
		StringVar(&this.ConfigurationFile)
}

func (this *App) ensure() {
	this.initialized.Do(func() {
		this.commands = make(chan Command, commandQueueSize)
		if this.Session == nil {
			this.Session = game.NewSession()
		}
		if this.Presenter == nil {
			this.Presenter = noopPresenter{}
		}
	})
}

// Run executes all posted commands until ctx is done.
func (this *App) Run(ctx context.Context) error {
	this.ensure()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer this.stopSpeech()

	this.ensureSignals(signal.NewContext(signal.StateIdle, this.Session.Snapshot(), nil))
	go this.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Debug("Command loop interrupted.")
			return nil
		case cmd := <-this.commands:
			reply := this.execute(ctx, cmd)
			if cmd.reply != nil {
				cmd.reply <- reply
			}
		}
	}
}

// Submit posts the given command and waits until it was executed.
func (this *App) Submit(ctx context.Context, cmd Command) (Reply, error) {
	this.ensure()

	cmd.reply = make(chan Reply, 1)
	if err := this.Post(ctx, cmd); err != nil {
		return Reply{}, err
	}

	select {
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	case reply := <-cmd.reply:
		return reply, nil
	}
}

// Post queues the given command without waiting for its execution.
func (this *App) Post(ctx context.Context, cmd Command) error {
	this.ensure()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case this.commands <- cmd:
		return nil
	}
}

func (this *App) Snapshot() game.Snapshot {
	this.ensure()
	return this.Session.Snapshot()
}

// LastGame returns the values the last game was started with.
func (this *App) LastGame() GameConfiguration {
	this.configMutex.RLock()
	defer this.configMutex.RUnlock()
	return this.config.Game
}

func (this *App) Locale() string {
	this.configMutex.RLock()
	defer this.configMutex.RUnlock()
	return this.config.Locale
}

func (this *App) execute(ctx context.Context, cmd Command) Reply {
	logger := log.With("command", cmd.Kind).
		With("source", cmd.Source)

	switch cmd.Kind {
	case CommandStart:
		return this.start(ctx, cmd, logger)
	case CommandGuess:
		return this.guess(cmd, logger)
	case CommandEnd:
		return this.end(cmd, logger)
	default:
		err := fmt.Errorf("illegal command: %v", cmd.Kind)
		logger.WithError(err).Error("Cannot execute command.")
		return Reply{Err: err}
	}
}

func (this *App) start(ctx context.Context, cmd Command, logger log.Logger) Reply {
	fail := func(err error) Reply {
		logger.WithError(err).Debug("Game not started.")
		this.Presenter.OnError(cmd.Source, err)
		return Reply{Snapshot: this.Session.Snapshot(), Err: err}
	}

	limits, err := game.ParseLimits(cmd.Min, cmd.Max, cmd.MaxTries)
	if err != nil {
		return fail(err)
	}

	if this.Session.IsActive() {
		this.stopSpeech()
		this.Session.End()
		logger.Info("Running game replaced by a new one.")
	}
	if err := this.Session.Start(limits); err != nil {
		return fail(err)
	}

	this.configMutex.Lock()
	this.config.Game = GameConfiguration{cmd.Min, cmd.Max, cmd.MaxTries}
	this.configMutex.Unlock()

	snapshot := this.Session.Snapshot()
	logger.With("session", snapshot.Id).
		With("min", limits.Min).
		With("max", limits.Max).
		With("maxTries", limits.MaxTries).
		Info("Game started.")

	this.Presenter.OnStarted(snapshot)
	this.ensureSignals(signal.NewContext(signal.StatePlaying, snapshot, nil))
	this.startSpeech(ctx, snapshot.Id)

	return Reply{Snapshot: snapshot}
}

func (this *App) guess(cmd Command, logger log.Logger) Reply {
	current := this.Session.Snapshot()
	if cmd.Source == SourceSpeech && (!current.Active || (cmd.sessionId != "" && cmd.sessionId != current.Id)) {
		logger.With("input", cmd.Input).
			Debug("Speech input for a game which is no longer running. Ignored.")
		return Reply{Snapshot: current, Err: game.ErrNotActive}
	}

	fail := func(err error) Reply {
		logger.WithError(err).Debug("Guess not accepted.")
		this.Presenter.OnError(cmd.Source, err)
		return Reply{Snapshot: this.Session.Snapshot(), Err: err}
	}

	value, err := game.ParseGuess(cmd.Input)
	if err != nil {
		return fail(err)
	}
	outcome, err := this.Session.SubmitGuess(value)
	if err != nil {
		return fail(err)
	}

	snapshot := this.Session.Snapshot()
	logger = logger.With("session", snapshot.Id).
		With("guess", value).
		With("outcome", outcome.Kind).
		With("tries", outcome.TriesUsed)
	if outcome.Kind.IsTerminal() {
		this.stopSpeech()
		logger.With("elapsed", outcome.Elapsed.Truncate(time.Millisecond)).
			Info("Game finished.")
	} else {
		logger.Debug("Guess evaluated.")
	}

	this.Presenter.OnOutcome(cmd.Source, outcome)
	this.ensureSignals(signal.NewContext(signal.StateOf(outcome), snapshot, &outcome))

	return Reply{Snapshot: snapshot, Outcome: &outcome}
}

func (this *App) end(cmd Command, logger log.Logger) Reply {
	if !this.Session.IsActive() {
		this.Presenter.OnError(cmd.Source, game.ErrNotActive)
		return Reply{Snapshot: this.Session.Snapshot(), Err: game.ErrNotActive}
	}

	this.stopSpeech()
	this.Session.End()
	snapshot := this.Session.Snapshot()
	logger.With("session", snapshot.Id).
		Info("Game aborted.")

	this.Presenter.OnEnded(snapshot)
	this.ensureSignals(signal.NewContext(signal.StateIdle, snapshot, nil))

	return Reply{Snapshot: snapshot}
}

func (this *App) speechListener() SpeechListener {
	if v := this.Speech; v != nil {
		return v
	}
	if !this.config.Speech.IsEnabled() {
		return nil
	}
	return &speech.Listener{
		Configuration: &this.config.Speech,
		Devices:       &this.AudioStack,
	}
}

func (this *App) startSpeech(ctx context.Context, sessionId string) {
	this.stopSpeech()

	listener := this.speechListener()
	if listener == nil {
		return
	}

	sCtx, cancel := context.WithCancel(ctx)
	this.speechCancel = cancel

	go func() {
		err := listener.Listen(sCtx, func(u speech.Utterance) {
			cmd := GuessValue(SourceSpeech, u.Value)
			cmd.sessionId = sessionId
			if err := this.Post(sCtx, cmd); err != nil {
				log.With("utterance", u.Text).
					Debug("Speech input dropped, listener already stopped.")
			}
		})
		if err != nil {
			log.WithError(err).
				Warn("Speech input stopped. Continue with typed guesses.")
		}
	}()
}

func (this *App) stopSpeech() {
	if cancel := this.speechCancel; cancel != nil {
		this.speechCancel = nil
		cancel()
	}
}

func (this *App) ensureSignals(sCtx signal.Context) {
	this.lastContext.Store(sCtx)

	if err := this.Signal.Ensure(sCtx); err != nil {
		log.WithError(err).
			Error("Cannot ensure signal state.")
	}
	for _, s := range this.OtherSignals {
		if err := s.Ensure(sCtx); err != nil {
			log.WithError(err).
				Warn("Cannot ensure signal state.")
		}
	}
}

func (this *App) refresh(ctx context.Context) {
	interval := this.config.RefreshInterval
	if interval <= 0 {
		return
	}

	for {
		log.With("interval", interval).
			Debug("Wait until the next refresh...")
		select {
		case <-ctx.Done():
			log.Debug("Refresh loop interrupted.")
			return
		case <-time.After(interval):
		}

		if err := this.Signal.Update(); err != nil {
			log.WithError(err).
				Error("Cannot update signal.")
			continue
		}
		for _, s := range this.OtherSignals {
			if err := s.Update(); err != nil {
				log.WithError(err).
					Warn("Cannot update signal.")
			}
		}

		if sCtx, ok := this.lastContext.Load().(signal.Context); ok {
			if err := this.Signal.Ensure(sCtx); err != nil {
				log.WithError(err).
					Error("Cannot ensure signal state.")
			}
		}
	}
}

type initializable interface {
	Initialize() error
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	this.ensure()

	if err := this.config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := this.config.mergeFrom(this.configFromFlags); err != nil {
		return fmt.Errorf("cannot apply flags to configuration: %w", err)
	}
	this.configLoaded = true

	if err := this.AudioStack.Initialize(); err != nil {
		return err
	}
	if err := this.Signal.Initialize(&this.config.Signal, this.alwaysSaveConf); err != nil {
		return err
	}
	for _, s := range this.OtherSignals {
		if v, ok := s.(initializable); ok {
			if err := v.Initialize(); err != nil {
				return err
			}
		}
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	success = true
	return nil
}

func (this *App) configurationFile() string {
	if v := this.ConfigurationFile; v != "" {
		return v
	}
	return defaultConfigurationFile()
}

func (this *App) alwaysSaveConf() error {
	return this.saveConf(true)
}

func (this *App) saveConf(always bool) error {
	if !this.configLoaded {
		return nil
	}

	this.configMutex.RLock()
	defer this.configMutex.RUnlock()

	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
		} else if err != nil {
			return err
		} else {
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

// Dispose stores the configuration including the values of the last game,
// switches all signals to idle and releases them.
func (this *App) Dispose() (rErr error) {
	this.ensure()

	defer func() {
		if err := this.AudioStack.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	defer func() {
		if err := this.Signal.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	sCtx := signal.NewContext(signal.StateIdle, this.Session.Snapshot(), nil)

	for _, s := range this.OtherSignals {
		defer func() {
			if err := s.Ensure(sCtx); err != nil {
				log.WithError(err).
					With("signal", s.GetType()).
					Warn("Cannot switch signal to idle.")
			}
			if err := s.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}()
	}

	if err := this.saveConf(true); err != nil {
		rErr = err
	}

	if err := this.Signal.Ensure(sCtx); err != nil && rErr == nil {
		rErr = err
	}
	return rErr
}
