package hue

import (
	"fmt"
	"strconv"
	"strings"
)

// Color of a light in the hue color model. The text form is
// <hue>:<saturation>:<brightness>, for example 25500:254:254 for green.
type Color struct {
	Hue        uint16
	Saturation uint8
	Brightness uint8
}

func (this *Color) Set(plain string) error {
	parts := strings.Split(strings.TrimSpace(plain), ":")
	if len(parts) != 3 {
		return fmt.Errorf("illegal-signal-hue-color: %s", plain)
	}
	h, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 16)
	if err != nil {
		return fmt.Errorf("illegal-signal-hue-color: %s", plain)
	}
	s, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil {
		return fmt.Errorf("illegal-signal-hue-color: %s", plain)
	}
	b, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 8)
	if err != nil || b == 0 {
		return fmt.Errorf("illegal-signal-hue-color: %s", plain)
	}
	*this = Color{uint16(h), uint8(s), uint8(b)}
	return nil
}

func (this Color) String() string {
	return fmt.Sprintf("%d:%d:%d", this.Hue, this.Saturation, this.Brightness)
}

func (this Color) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Color) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

func (this Color) IsZero() bool {
	return this.Brightness == 0
}
