package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexp_Cut(t *testing.T) {
	var instance Regexp

	actual, ok := instance.Cut("forty two")
	assert.True(t, ok)
	assert.Equal(t, "forty two", actual)

	require.NoError(t, instance.Set(`(?i)^\s*guess\b`))
	actual, ok = instance.Cut("Guess forty two")
	assert.True(t, ok)
	assert.Equal(t, " forty two", actual)

	actual, ok = instance.Cut("forty two")
	assert.False(t, ok)
	assert.Equal(t, "forty two", actual)
}

func TestRegexp_text(t *testing.T) {
	var instance Regexp

	require.NoError(t, instance.UnmarshalText([]byte("^a+$")))
	assert.True(t, instance.HasContent())
	assert.True(t, instance.MatchString("aaa"))

	b, err := instance.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "^a+$", string(b))

	assert.EqualError(t, instance.Set("("), "illegal-regexp: (")

	require.NoError(t, instance.Set(""))
	assert.True(t, instance.IsZero())
	assert.True(t, instance.MatchString(""))
}

func TestAsError(t *testing.T) {
	given := &customError{}

	actual, ok := AsError[*customError](wrap(given))
	assert.True(t, ok)
	assert.Same(t, given, actual)

	_, ok = AsError[*customError](assert.AnError)
	assert.False(t, ok)
}

type customError struct{}

func (this *customError) Error() string { return "custom" }

type wrapped struct{ cause error }

func (this wrapped) Error() string { return "wrapped: " + this.cause.Error() }
func (this wrapped) Unwrap() error { return this.cause }

func wrap(err error) error { return wrapped{err} }
