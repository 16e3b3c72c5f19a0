package signal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/guessing-game/pkg/game"
)

func TestStateOf(t *testing.T) {
	assert.Equal(t, StatePlaying, StateOf(game.Outcome{Kind: game.OutcomeTooHigh}))
	assert.Equal(t, StatePlaying, StateOf(game.Outcome{Kind: game.OutcomeTooLow}))
	assert.Equal(t, StateWon, StateOf(game.Outcome{Kind: game.OutcomeCorrect}))
	assert.Equal(t, StateLost, StateOf(game.Outcome{Kind: game.OutcomeExhausted}))
}

func TestState_Set(t *testing.T) {
	var actual State

	require.NoError(t, actual.Set(" Won "))
	assert.Equal(t, StateWon, actual)

	require.NoError(t, actual.Set("on"))
	assert.Equal(t, StatePlaying, actual)

	assert.EqualError(t, actual.Set("foo"), "illegal-signal-state: foo")
	assert.Equal(t, StatePlaying, actual)
}

func TestState_json(t *testing.T) {
	b, err := json.Marshal(struct {
		State State `json:"state"`
	}{StateLost})
	require.NoError(t, err)
	assert.Equal(t, `{"state":"lost"}`, string(b))

	assert.Equal(t, "idle,playing,won,lost", AllStates.String())
	assert.Equal(t, "illegal-signal-state-9", State(9).String())
}

func TestType_Set(t *testing.T) {
	var actual Type

	require.NoError(t, actual.Set("Home-Assistant"))
	assert.Equal(t, TypeHomeAssistant, actual)

	require.NoError(t, actual.Set(""))
	assert.Equal(t, TypeNone, actual)

	assert.Error(t, actual.Set("systray"))
	assert.Equal(t, "none,hue,homeAssistant", AllTypes.String())
}
