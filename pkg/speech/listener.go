package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	log "github.com/echocat/slf4g"
	"github.com/kballard/go-shellquote"

	"github.com/blaubaer/guessing-game/pkg/audio"
	"github.com/blaubaer/guessing-game/pkg/common"
)

var ErrNoCaptureDevice = errors.New("no capture device available")

type DeviceFinder interface {
	FindDevices() (audio.Devices, error)
}

// Utterance is a recognized text which contained a number.
type Utterance struct {
	Text  string
	Value int
}

// Listener runs the configured recognizer and reports every utterance that
// is a number. All other utterances are ignored.
type Listener struct {
	Configuration *Configuration
	Devices       DeviceFinder
}

// Listen blocks until ctx is done or the recognizer exits.
func (this *Listener) Listen(ctx context.Context, on func(Utterance)) error {
	conf := this.Configuration
	if conf == nil || !conf.IsEnabled() {
		return nil
	}

	if err := this.checkDevices(); err != nil {
		return err
	}

	args, err := splitCommand(conf.Command)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("cannot attach to stdout of recognizer %q: %w", args[0], err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot start recognizer %q: %w", args[0], err)
	}

	log.With("command", conf.Command).
		Debug("Speech recognizer started.")

	scanErr := Scan(ctx, stdout, conf.Trigger, on)
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		log.Debug("Speech recognizer stopped.")
		return nil
	}
	if scanErr != nil {
		return fmt.Errorf("cannot read from recognizer %q: %w", args[0], scanErr)
	}
	if waitErr != nil {
		return fmt.Errorf("recognizer %q failed: %w", args[0], waitErr)
	}
	return nil
}

// splitCommand splits the command line like a POSIX shell would. Inside
// double quotes backslashes are kept, so quoted Windows paths work too.
func splitCommand(commandLine string) ([]string, error) {
	args, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("cannot parse recognizer command %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("recognizer command is empty")
	}
	return args, nil
}

func (this *Listener) checkDevices() error {
	if this.Devices == nil {
		return nil
	}
	devices, err := this.Devices.FindDevices()
	if errors.Is(err, audio.ErrUnsupported) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot find capture devices: %w", err)
	}
	if devices.IsZero() {
		if this.Configuration.RequireDevice {
			return ErrNoCaptureDevice
		}
		log.Warn("No capture device found. Speech input will probably not work.")
		return nil
	}
	log.With("devices", devices).
		Debug("Capture devices found.")
	return nil
}

// Scan reads one utterance per line from r until r is exhausted or ctx is
// done. Lines not matching trigger or not containing a number are ignored.
func Scan(ctx context.Context, r io.Reader, trigger common.Regexp, on func(Utterance)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		logger := log.With("utterance", text)

		rest, ok := trigger.Cut(text)
		if !ok {
			logger.Debug("Utterance without trigger ignored.")
			continue
		}
		v, ok := ParseUtterance(rest)
		if !ok {
			logger.Debug("Utterance is not a number. Ignored.")
			continue
		}
		on(Utterance{text, v})
	}
	return scanner.Err()
}
