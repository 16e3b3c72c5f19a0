package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	ErrAllocationFailed = errors.New("allocation failed")

	procAllocConsole    = dllKernel32.NewProc("AllocConsole")
	procSetConsoleTitle = dllKernel32.NewProc("SetConsoleTitleW")
	procFreeConsole     = dllKernel32.NewProc("FreeConsole")
)

type stdHandle struct {
	id   uint32
	name string
	file string
	mode uint32
}

var stdHandles = []stdHandle{{
	id:   windows.STD_INPUT_HANDLE,
	name: "stdin",
	file: "/dev/stdin",
	mode: windows.ENABLE_VIRTUAL_TERMINAL_INPUT |
		windows.ENABLE_PROCESSED_INPUT |
		windows.ENABLE_EXTENDED_FLAGS,
}, {
	id:   windows.STD_OUTPUT_HANDLE,
	name: "stdout",
	file: "/dev/stdout",
	mode: windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING |
		windows.ENABLE_WRAP_AT_EOL_OUTPUT |
		windows.ENABLE_PROCESSED_OUTPUT,
}, {
	id:   windows.STD_ERROR_HANDLE,
	name: "stderr",
	file: "/dev/stderr",
	mode: windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING |
		windows.ENABLE_WRAP_AT_EOL_OUTPUT |
		windows.ENABLE_PROCESSED_OUTPUT,
}}

func NewDedicatedConsole(title string) (*DedicatedConsole, error) {
	if r0, _, err := procAllocConsole.Call(); r0 == 0 {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}

	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate title: %w", err)
	}
	if r0, _, err := procSetConsoleTitle.Call(uintptr(unsafe.Pointer(titlePtr))); r0 == 0 {
		return nil, fmt.Errorf("cannot set console title: %w", err)
	}

	var files [3]*os.File
	var modes [3]uint32
	for i, h := range stdHandles {
		handle, err := windows.GetStdHandle(h.id)
		if err != nil {
			return nil, fmt.Errorf("cannot get %s handle: %w", h.name, err)
		}
		if modes[i], err = configureHandle(handle, h.mode); err != nil {
			return nil, fmt.Errorf("cannot enable virtual terminal on %s: %w", h.name, err)
		}
		files[i] = os.NewFile(uintptr(handle), h.file)
	}

	result := &DedicatedConsole{
		Stdin:  files[0],
		Stdout: files[1],
		Stderr: files[2],

		StdinMode:  modes[0],
		StdoutMode: modes[1],
		StderrMode: modes[2],
	}

	if err := SetConsoleCtrlHandler(result.onCtrlC); err != nil {
		return nil, err
	}

	return result, nil
}

// configureHandle returns the original mode of the handle. Handles which are
// no console (redirected) are left untouched.
func configureHandle(handle windows.Handle, mode uint32) (original uint32, _ error) {
	if err := windows.GetConsoleMode(handle, &original); err != nil {
		return 0, nil
	}
	if err := windows.SetConsoleMode(handle, mode); err != nil {
		return original, err
	}
	return original, nil
}

func (this *DedicatedConsole) Close() (err error) {
	c := func(what io.Closer) {
		if cErr := what.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}
	defer func() {
		defer func() {
			if r := recover(); r != nil {
				if eErr, ok := r.(error); ok {
					err = eErr
				} else {
					err = fmt.Errorf("%v", r)
				}
			}
		}()
		_, _, _ = procFreeConsole.Call()
	}()
	defer func() {
		_ = SetConsoleCtrlHandler(nil)
	}()
	defer c(this.Stdin)
	defer c(this.Stdout)
	defer c(this.Stderr)

	return nil
}
