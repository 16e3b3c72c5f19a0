package console

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	dllKernel32               = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleCtrlHandler = dllKernel32.NewProc("SetConsoleCtrlHandler")
	procExitThread            = dllKernel32.NewProc("ExitThread")
)

// SetConsoleCtrlHandler installs h as the only handler of Ctrl+C and close
// events of the current console. nil restores the default handling.
func SetConsoleCtrlHandler(h func(event any) bool) error {
	if h == nil {
		if r0, _, err := procSetConsoleCtrlHandler.Call(0, 0); r0 == 0 {
			return fmt.Errorf("cannot reset console ctrl handler: %w", err)
		}
		return nil
	}

	callback := syscall.NewCallback(func(event uint32) uintptr {
		if !h(event) {
			return 1
		}
		if event == windows.CTRL_CLOSE_EVENT {
			// The process would be killed after the handler returns.
			_, _, _ = procExitThread.Call(0)
			return 1
		}
		return 0
	})
	if r0, _, err := procSetConsoleCtrlHandler.Call(callback, 1); r0 == 0 {
		return fmt.Errorf("cannot set console ctrl handler: %w", err)
	}
	return nil
}
