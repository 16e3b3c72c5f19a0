package app

import (
	"os"
	"os/user"
	"path/filepath"
	"reflect"
	"time"

	"dario.cat/mergo"

	"github.com/blaubaer/guessing-game/pkg/common"
	"github.com/blaubaer/guessing-game/pkg/signal/facade"
	"github.com/blaubaer/guessing-game/pkg/speech"
)

func NewConfiguration() Configuration {
	return Configuration{
		false,
		"",

		GameConfiguration{"1", "100", ""},

		facade.NewConfiguration(),
		speech.NewConfiguration(),

		5 * time.Minute,
	}
}

type Configuration struct {
	PreventAutoSave bool   `yaml:"preventAutoSave"`
	Locale          string `yaml:"locale,omitempty"`

	Game GameConfiguration `yaml:"game"`

	Signal facade.Configuration `yaml:"signal,omitempty"`
	Speech speech.Configuration `yaml:"speech,omitempty"`

	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`
}

// GameConfiguration holds the values last used to start a game. They are
// kept as entered to be offered again on the next start.
type GameConfiguration struct {
	Min      string `yaml:"min"`
	Max      string `yaml:"max"`
	MaxTries string `yaml:"maxTries"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("GG_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("locale", "Language of all messages, for example en or zh.").
		Envar("GG_LOCALE").
		StringVar(&this.Locale)
	using.Flag("min", "Minimum value offered when a new game is started.").
		Envar("GG_MIN").
		StringVar(&this.Game.Min)
	using.Flag("max", "Maximum value (exclusive) offered when a new game is started.").
		Envar("GG_MAX").
		StringVar(&this.Game.Max)
	using.Flag("maxTries", "Maximum number of tries offered when a new game is started. 0 means unlimited.").
		Envar("GG_MAX_TRIES").
		StringVar(&this.Game.MaxTries)
	using.Flag("refreshInterval", "How often the signals should be refreshed.").
		Envar("GG_REFRESH_INTERVAL").
		DurationVar(&this.RefreshInterval)

	this.Signal.SetupConfiguration(using)
	this.Speech.SetupConfiguration(using)
}

// mergeFrom applies every non-zero value of src on top of this.
func (this *Configuration) mergeFrom(src Configuration) error {
	return mergo.Merge(this, src, mergo.WithOverride, mergo.WithTransformers(configurationTransformers{}))
}

type configurationTransformers struct{}

var regexpType = reflect.TypeOf(common.Regexp{})

func (this configurationTransformers) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t != regexpType {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.IsZero() {
			dst.Set(src)
		}
		return nil
	}
}

func defaultConfigurationFile() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		fs, err := os.Stat(appData)
		if err == nil && fs.IsDir() {
			return filepath.Join(appData, "guessing-game", "configuration.yml")
		}
	}

	u, err := user.Current()
	if err != nil {
		return "configuration.yml"
	}

	return filepath.Join(u.HomeDir, ".config", "guessing-game", "configuration.yml")
}
