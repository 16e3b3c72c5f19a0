package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_binary(t *testing.T) {
	given := Credentials{HueBridge: "10.0.0.2", HueUser: "abc"}

	b, err := given.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, `{"hue_bridge":"10.0.0.2","hue_user":"abc"}`, string(b))

	var actual Credentials
	require.NoError(t, actual.UnmarshalBinary(b))
	assert.Equal(t, given, actual)
	assert.False(t, actual.IsHueZero())
	assert.True(t, actual.IsHomeAssistantZero())
	assert.False(t, actual.IsZero())
}

func TestCredentials_IsZero(t *testing.T) {
	assert.True(t, (&Credentials{}).IsZero())
	assert.True(t, (&Credentials{HueBridge: "host"}).IsHueZero())
	assert.True(t, (&Credentials{HomeAssistantToken: "token"}).IsHomeAssistantZero())
}
