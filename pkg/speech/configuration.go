package speech

import (
	"strings"

	"github.com/blaubaer/guessing-game/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{}
}

type Configuration struct {
	// Command is the recognizer to run. It has to print one recognized
	// utterance per line to stdout.
	Command string `yaml:"command,omitempty"`
	// Trigger is an optional pattern every utterance has to contain. It is
	// removed before the number is parsed.
	Trigger common.Regexp `yaml:"trigger,omitempty"`
	// RequireDevice prevents the start of the recognizer if no capture
	// device is available.
	RequireDevice bool `yaml:"requireDevice,omitempty"`
}

func (this *Configuration) IsEnabled() bool {
	return strings.TrimSpace(this.Command) != ""
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("speech.command", "Command line of a speech recognizer which prints every recognized utterance as a line to stdout. If empty speech input is disabled.").
		Envar("GG_SPEECH_COMMAND").
		StringVar(&this.Command)
	using.Flag("speech.trigger", "Pattern each utterance has to contain to be accepted as guess, for example '(?i)^guess'. It is removed before the number is parsed.").
		Envar("GG_SPEECH_TRIGGER").
		SetValue(&this.Trigger)
	using.Flag("speech.requireDevice", "If set the recognizer is only started if at least one capture device is available.").
		Envar("GG_SPEECH_REQUIRE_DEVICE").
		BoolVar(&this.RequireDevice)
}
