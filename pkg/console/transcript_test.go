package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_Write(t *testing.T) {
	instance := NewTranscript(10, 100)

	n, err := instance.Write([]byte("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a"}, instance.Lines())

	_, err = instance.Write([]byte("c\n\nd\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bc", "", "d"}, instance.Lines())
	assert.Equal(t, 4, instance.Len())
}

func TestTranscript_dropsOldestLines(t *testing.T) {
	instance := NewTranscript(3, 100)

	for _, line := range []string{"1", "2", "3", "4", "5"} {
		_, _ = instance.Write([]byte(line + "\n"))
	}

	assert.Equal(t, []string{"3", "4", "5"}, instance.Lines())
}

func TestTranscript_splitsTooLongLines(t *testing.T) {
	instance := NewTranscript(10, 3)

	_, err := instance.Write([]byte("abcdefg\nxy\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "def", "g", "xy"}, instance.Lines())
}

func TestTranscript_WriteTo(t *testing.T) {
	instance := NewTranscript(2, 100)
	_, _ = instance.Write([]byte("1\n2\n3\n"))
	buf := new(bytes.Buffer)

	n, err := instance.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, "2\n3\n", buf.String())
}

func TestTranscript_withoutCapacity(t *testing.T) {
	instance := NewTranscript(0, 100)

	_, err := instance.Write([]byte("1\n"))
	require.NoError(t, err)
	assert.Empty(t, instance.Lines())
}
