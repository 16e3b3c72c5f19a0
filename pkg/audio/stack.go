//go:build !windows

package audio

type Stack struct{}

func (this *Stack) Initialize() error {
	return nil
}

func (this *Stack) Dispose() error {
	return nil
}

func (this *Stack) FindDevices() (Devices, error) {
	return nil, ErrUnsupported
}
