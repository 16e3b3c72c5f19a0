package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevices_String(t *testing.T) {
	given := Devices{{"Headset", 0}, {"Webcam", 1}}

	assert.Equal(t, "[0] Headset, [1] Webcam", given.String())
	assert.True(t, given.HasContent())
	assert.True(t, Devices{}.IsZero())
}
