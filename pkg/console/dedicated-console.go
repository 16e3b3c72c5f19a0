package console

import (
	"errors"
	"os"
)

var ErrUnsupported = errors.New("dedicated console is only supported on windows")

// DedicatedConsole is a console window of its own, used if the game was
// started from the tray without any terminal attached.
type DedicatedConsole struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	StdinMode  uint32
	StdoutMode uint32
	StderrMode uint32

	// OnCtrlC is called if the player presses Ctrl+C or closes the window.
	// Returning false suppresses the default handling.
	OnCtrlC func(event any) bool
}

func (this *DedicatedConsole) Read(p []byte) (n int, err error) {
	return this.Stdin.Read(p)
}

func (this *DedicatedConsole) Write(p []byte) (n int, err error) {
	return this.Stdout.Write(p)
}

func (this *DedicatedConsole) onCtrlC(event any) bool {
	if v := this.OnCtrlC; v != nil {
		return v(event)
	}
	return true
}
