package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/guessing-game/pkg/game"
	"github.com/blaubaer/guessing-game/pkg/signal"
	"github.com/blaubaer/guessing-game/pkg/speech"
)

func TestApp_fullGame(t *testing.T) {
	instance, presenter := runningApp(t, 42)
	ctx := context.Background()

	reply, err := instance.Submit(ctx, Start(SourceConsole, "1", "100", "3"))
	require.NoError(t, err)
	require.NoError(t, reply.Err)
	assert.True(t, reply.Snapshot.Active)
	assert.Equal(t, game.Limits{Min: 1, Max: 100, MaxTries: 3}, reply.Snapshot.Limits)

	reply, err = instance.Submit(ctx, Guess(SourceConsole, "60"))
	require.NoError(t, err)
	require.NoError(t, reply.Err)
	assert.Equal(t, game.OutcomeTooHigh, reply.Outcome.Kind)
	assert.Equal(t, 2, reply.Outcome.TriesLeft)

	reply, err = instance.Submit(ctx, Guess(SourceConsole, "abc"))
	require.NoError(t, err)
	assert.IsType(t, &game.InputError{}, reply.Err)
	assert.Nil(t, reply.Outcome)
	assert.Equal(t, 1, reply.Snapshot.TriesUsed)

	reply, err = instance.Submit(ctx, Guess(SourceConsole, "42"))
	require.NoError(t, err)
	require.NoError(t, reply.Err)
	assert.Equal(t, game.OutcomeCorrect, reply.Outcome.Kind)
	assert.Equal(t, 2, reply.Outcome.TriesUsed)
	assert.False(t, reply.Snapshot.Active)

	reply, err = instance.Submit(ctx, Guess(SourceConsole, "42"))
	require.NoError(t, err)
	assert.ErrorIs(t, reply.Err, game.ErrNotActive)

	assert.Equal(t, []string{"started", "outcome:console:tooHigh", "error:console", "outcome:console:correct", "error:console"}, presenter.recorded())
}

func TestApp_exhausted(t *testing.T) {
	instance, _ := runningApp(t, 42)
	ctx := context.Background()

	_, err := instance.Submit(ctx, Start(SourceConsole, "1", "100", "2"))
	require.NoError(t, err)

	reply, _ := instance.Submit(ctx, Guess(SourceConsole, "10"))
	assert.Equal(t, game.OutcomeTooLow, reply.Outcome.Kind)

	reply, _ = instance.Submit(ctx, Guess(SourceConsole, "11"))
	assert.Equal(t, game.OutcomeExhausted, reply.Outcome.Kind)
	assert.Equal(t, 42, reply.Outcome.Target)
	assert.False(t, instance.Snapshot().Active)
}

func TestApp_illegalStartKeepsRunningGame(t *testing.T) {
	instance, _ := runningApp(t, 42)
	ctx := context.Background()

	started, err := instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))
	require.NoError(t, err)
	require.NoError(t, started.Err)

	reply, err := instance.Submit(ctx, Start(SourceConsole, "5", "5", ""))
	require.NoError(t, err)

	var vErr *game.ValidationError
	require.ErrorAs(t, reply.Err, &vErr)
	assert.Equal(t, game.FieldMax, vErr.Field)
	assert.True(t, reply.Snapshot.Active)
	assert.Equal(t, started.Snapshot.Id, reply.Snapshot.Id)
	assert.Equal(t, GameConfiguration{"1", "100", ""}, instance.LastGame())
}

func TestApp_restartReplacesRunningGame(t *testing.T) {
	instance, _ := runningApp(t, 42)
	ctx := context.Background()

	first, _ := instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))
	_, _ = instance.Submit(ctx, Guess(SourceConsole, "50"))
	second, _ := instance.Submit(ctx, Start(SourceConsole, "10", "50", "4"))

	require.NoError(t, second.Err)
	assert.NotEqual(t, first.Snapshot.Id, second.Snapshot.Id)
	assert.Equal(t, 0, second.Snapshot.TriesUsed)
	assert.Equal(t, GameConfiguration{"10", "50", "4"}, instance.LastGame())
}

func TestApp_end(t *testing.T) {
	instance, presenter := runningApp(t, 42)
	ctx := context.Background()

	reply, err := instance.Submit(ctx, End(SourceTray))
	require.NoError(t, err)
	assert.ErrorIs(t, reply.Err, game.ErrNotActive)

	_, _ = instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))
	reply, err = instance.Submit(ctx, End(SourceTray))
	require.NoError(t, err)
	require.NoError(t, reply.Err)
	assert.False(t, reply.Snapshot.Active)

	assert.Equal(t, []string{"error:tray", "started", "ended"}, presenter.recorded())
}

func TestApp_speechGuesses(t *testing.T) {
	listener := &fakeSpeech{values: make(chan int)}
	instance, presenter := runningApp(t, 42, func(app *App) {
		app.Speech = listener
	})
	ctx := context.Background()

	_, err := instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))
	require.NoError(t, err)

	listener.values <- 7
	listener.values <- 42

	assert.Eventually(t, func() bool {
		return !instance.Snapshot().Active
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, listener.isStopped, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"started", "outcome:speech:tooLow", "outcome:speech:correct"}, presenter.recorded())
}

func TestApp_staleSpeechGuessIsIgnored(t *testing.T) {
	instance, presenter := runningApp(t, 42)
	ctx := context.Background()

	_, _ = instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))

	cmd := GuessValue(SourceSpeech, 42)
	cmd.sessionId = "previous"
	reply, err := instance.Submit(ctx, cmd)
	require.NoError(t, err)
	assert.ErrorIs(t, reply.Err, game.ErrNotActive)
	assert.True(t, reply.Snapshot.Active)
	assert.Equal(t, []string{"started"}, presenter.recorded())
}

func TestApp_speechGuessWhileIdleIsIgnored(t *testing.T) {
	instance, presenter := runningApp(t, 42)

	reply, err := instance.Submit(context.Background(), GuessValue(SourceSpeech, 42))
	require.NoError(t, err)
	assert.ErrorIs(t, reply.Err, game.ErrNotActive)
	assert.False(t, reply.Snapshot.Active)
	assert.Empty(t, presenter.recorded())
}

func TestApp_disposePersistsLastGame(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "configuration.yml")
	instance := NewApp()
	instance.ConfigurationFile = fn
	require.NoError(t, instance.Initialize())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- instance.Run(ctx)
	}()

	reply, err := instance.Submit(ctx, Start(SourceConsole, "3", "30", "4"))
	require.NoError(t, err)
	require.NoError(t, reply.Err)
	cancel()
	require.NoError(t, <-done)

	require.NoError(t, instance.Dispose())

	loaded := NewConfiguration()
	require.NoError(t, loaded.loadFromFile(fn, false))
	assert.Equal(t, GameConfiguration{"3", "30", "4"}, loaded.Game)
}

func TestApp_disposeWithPreventAutoSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "configuration.yml")
	instance := NewApp()
	instance.ConfigurationFile = fn
	instance.configFromFlags.PreventAutoSave = true
	require.NoError(t, instance.Initialize())
	require.NoError(t, instance.Dispose())

	assert.NoFileExists(t, fn)
}

func TestApp_disposeReleasesOtherSignals(t *testing.T) {
	recorder := &recordingSignal{}
	instance := NewApp()
	instance.OtherSignals = []signal.Signal{recorder}

	require.NoError(t, instance.Dispose())

	assert.Equal(t, []signal.State{signal.StateIdle}, recorder.recorded())
	assert.Equal(t, 1, recorder.disposed)
}

func TestApp_signalsFollowTheGame(t *testing.T) {
	recorder := &recordingSignal{}
	instance, _ := runningApp(t, 42, func(app *App) {
		app.OtherSignals = []signal.Signal{recorder}
	})
	ctx := context.Background()

	_, _ = instance.Submit(ctx, Start(SourceConsole, "1", "100", "1"))
	_, _ = instance.Submit(ctx, Guess(SourceConsole, "1"))
	_, _ = instance.Submit(ctx, Start(SourceConsole, "1", "100", ""))
	_, _ = instance.Submit(ctx, Guess(SourceConsole, "42"))
	_, _ = instance.Submit(ctx, End(SourceConsole))

	assert.Equal(t, []signal.State{
		signal.StateIdle,
		signal.StatePlaying,
		signal.StateLost,
		signal.StatePlaying,
		signal.StateWon,
	}, recorder.recorded())
}

func TestApp_Submit_canceled(t *testing.T) {
	instance := NewApp()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := instance.Submit(ctx, End(SourceConsole))
	assert.ErrorIs(t, err, context.Canceled)
}

func runningApp(t *testing.T, target int, customizers ...func(*App)) (*App, *recordingPresenter) {
	t.Helper()

	presenter := &recordingPresenter{}
	instance := NewApp()
	instance.Presenter = presenter
	instance.Session = &game.Session{
		Random: func(int, int) int { return target },
	}
	for _, customizer := range customizers {
		customizer(instance)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- instance.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	return instance, presenter
}

type recordingPresenter struct {
	mutex  sync.Mutex
	events []string
}

func (this *recordingPresenter) record(event string) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.events = append(this.events, event)
}

func (this *recordingPresenter) recorded() []string {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return append([]string{}, this.events...)
}

func (this *recordingPresenter) OnStarted(game.Snapshot) {
	this.record("started")
}

func (this *recordingPresenter) OnOutcome(source Source, outcome game.Outcome) {
	this.record("outcome:" + source.String() + ":" + outcome.Kind.String())
}

func (this *recordingPresenter) OnEnded(game.Snapshot) {
	this.record("ended")
}

func (this *recordingPresenter) OnError(source Source, _ error) {
	this.record("error:" + source.String())
}

type fakeSpeech struct {
	values chan int

	mutex   sync.Mutex
	stopped bool
}

func (this *fakeSpeech) Listen(ctx context.Context, on func(speech.Utterance)) error {
	defer func() {
		this.mutex.Lock()
		this.stopped = true
		this.mutex.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case v := <-this.values:
			on(speech.Utterance{Value: v})
		}
	}
}

func (this *fakeSpeech) isStopped() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.stopped
}

type recordingSignal struct {
	mutex    sync.Mutex
	states   []signal.State
	disposed int
}

func (this *recordingSignal) Ensure(ctx signal.Context) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.states = append(this.states, ctx.State())
	return nil
}

func (this *recordingSignal) recorded() []signal.State {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return append([]signal.State{}, this.states...)
}

func (this *recordingSignal) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.disposed++
	return nil
}

func (this *recordingSignal) Update() error        { return nil }
func (this *recordingSignal) GetType() signal.Type { return signal.TypeNone }
