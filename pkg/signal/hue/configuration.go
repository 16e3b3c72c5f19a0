package hue

import (
	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/signal"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,
		"",
		"",

		common.MustNewRegexp("^Guess"),
		Kinds{},

		Color{46920, 254, 254},
		Color{25500, 254, 254},
		Color{65535, 254, 254},
	}
}

type Configuration struct {
	Pair   bool   `yaml:"pair,omitempty"`
	Bridge string `yaml:"bridge,omitempty"`
	User   string `yaml:"user,omitempty"`

	Name  common.Regexp `yaml:"target"`
	Kinds Kinds         `yaml:"kinds,omitempty"`

	Playing Color `yaml:"playing"`
	Won     Color `yaml:"won"`
	Lost    Color `yaml:"lost"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("signal.hue.pair", "If true this application will pair again with an existing hue. This will be implicit enabled if this application is not already paired.").
		Envar("GG_SIGNAL_HUE_PAIR").
		BoolVar(&this.Pair)
	using.Flag("signal.hue.bridge", "Usually the bridge is automatically detected. You can specify an explicit one if they are more than one. This is only required while pairing and will afterwards be ignored.").
		Envar("GG_SIGNAL_HUE_BRIDGE").
		StringVar(&this.Bridge)
	using.Flag("signal.hue.user", "Usually this is set while pairing and will then be persisted. If this set this will be used and not be persisted.").
		Envar("GG_SIGNAL_HUE_USER").
		StringVar(&this.User)
	using.Flag("signal.hue.name", "Name as regex of the lights/groups which should be handled by this app.").
		Envar("GG_SIGNAL_HUE_NAME").
		SetValue(&this.Name)
	using.Flag("signal.hue.kind", "Kind(s) of what should be handled. Possible values: "+AllKinds.String()).
		Envar("GG_SIGNAL_HUE_KIND").
		SetValue(&this.Kinds)

	using.Flag("signal.hue.playing", "Color (<hue>:<saturation>:<brightness>) while a game is running. Hue wraps between 0 and 65535 (0 and 65535 are red, 25500 is green and 46920 is blue), saturation and brightness range up to 254.").
		Envar("GG_SIGNAL_HUE_PLAYING").
		SetValue(&this.Playing)
	using.Flag("signal.hue.won", "Color (<hue>:<saturation>:<brightness>) after the number was guessed.").
		Envar("GG_SIGNAL_HUE_WON").
		SetValue(&this.Won)
	using.Flag("signal.hue.lost", "Color (<hue>:<saturation>:<brightness>) after all tries were used.").
		Envar("GG_SIGNAL_HUE_LOST").
		SetValue(&this.Lost)
}

func (this *Configuration) colorOf(state signal.State) (Color, bool) {
	switch state {
	case signal.StatePlaying:
		return this.Playing, true
	case signal.StateWon:
		return this.Won, true
	case signal.StateLost:
		return this.Lost, true
	default:
		return Color{}, false
	}
}
