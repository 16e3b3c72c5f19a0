//go:build !windows

package console

// NewDedicatedConsole is only supported on Windows. Everywhere else the game
// runs inside the terminal it was started from.
func NewDedicatedConsole(string) (*DedicatedConsole, error) {
	return nil, ErrUnsupported
}

func (this *DedicatedConsole) Close() error {
	return nil
}
