package systray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blaubaer/guessing-game/pkg/game"
	"github.com/blaubaer/guessing-game/pkg/i18n"
	"github.com/blaubaer/guessing-game/pkg/signal"
)

var (
	limited   = game.Snapshot{Limits: game.Limits{Min: 1, Max: 100, MaxTries: 5}, TriesUsed: 2, TriesLeft: 3}
	unlimited = game.Snapshot{Limits: game.Limits{Min: 1, Max: 100}, TriesUsed: 2, TriesLeft: -1}
)

func TestSystray_Tooltip(t *testing.T) {
	instance := &Systray{}

	assert.Equal(t, "No game running", instance.Tooltip(signal.NewContext(signal.StateIdle, game.Snapshot{}, nil)))
	assert.Equal(t, "Guessing from 1 up to, but not including, 100, 3 of 5 tries left", instance.Tooltip(signal.NewContext(signal.StatePlaying, limited, nil)))
	assert.Equal(t, "Guessing from 1 up to, but not including, 100, 2 tries so far", instance.Tooltip(signal.NewContext(signal.StatePlaying, unlimited, nil)))
	assert.Equal(t, "Won with 42 after 3 tries", instance.Tooltip(signal.NewContext(signal.StateWon, limited, &game.Outcome{Guess: 42, TriesUsed: 3})))
	assert.Equal(t, "Lost, the number was 17", instance.Tooltip(signal.NewContext(signal.StateLost, limited, &game.Outcome{Target: 17})))
}

func TestSystray_Tooltip_localized(t *testing.T) {
	instance := &Systray{Printer: i18n.MustLoadEmbedded().Printer("zh")}

	assert.Equal(t, "没有进行中的游戏", instance.Tooltip(signal.NewContext(signal.StateIdle, game.Snapshot{}, nil)))
	assert.Equal(t, "猜 1 到 100 之间的数（不含 100），还剩 3/5 次", instance.Tooltip(signal.NewContext(signal.StatePlaying, limited, nil)))
	assert.Equal(t, "猜 1 到 100 之间的数（不含 100），已猜 2 次", instance.Tooltip(signal.NewContext(signal.StatePlaying, unlimited, nil)))
	assert.Equal(t, "失败，答案是 17", instance.Tooltip(signal.NewContext(signal.StateLost, limited, &game.Outcome{Target: 17})))
}

func TestSystray_Initialize(t *testing.T) {
	icon := []byte{1}

	assert.NoError(t, (&Systray{IconIdle: icon, IconPlaying: icon, IconWon: icon, IconLost: icon}).Initialize())
	assert.EqualError(t, (&Systray{IconIdle: icon, IconPlaying: icon, IconLost: icon}).Initialize(), "icon for won is empty")
}
