package audio

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupported = errors.New("enumeration of capture devices is not supported on this platform")

// Device is an active audio capture device, a microphone for example.
type Device struct {
	Name  string `json:"name"`
	Index uint32 `json:"index"`
}

func (this Device) String() string {
	return fmt.Sprintf("[%d] %s", this.Index, this.Name)
}

type Devices []Device

func (this Devices) IsZero() bool {
	return len(this) <= 0
}

func (this Devices) HasContent() bool {
	return !this.IsZero()
}

func (this Devices) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Devices) String() string {
	return strings.Join(this.Strings(), ", ")
}
