package facade

import (
	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/signal"
	"github.com/blaubaer/guessing-game/pkg/signal/homeassistant"
	"github.com/blaubaer/guessing-game/pkg/signal/hue"
)

func NewConfiguration() Configuration {
	return Configuration{
		Type:          signal.TypeDefault,
		Hue:           hue.NewConfiguration(),
		HomeAssistant: homeassistant.NewConfiguration(),
	}
}

type Configuration struct {
	Type          signal.Type                 `yaml:"type"`
	Hue           hue.Configuration           `yaml:"hue,omitempty"`
	HomeAssistant homeassistant.Configuration `yaml:"homeAssistant,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("signal", "Where the state of the game should be signaled additionally. All possible values: "+signal.AllTypes.String()).
		Envar("GG_SIGNAL").
		SetValue(&this.Type)

	this.Hue.SetupConfiguration(using)
	this.HomeAssistant.SetupConfiguration(using)
}
