//go:build !windows

package speech

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListener_Listen_quotedCommandPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dir with space")
	require.NoError(t, os.MkdirAll(dir, 0755))
	fn := filepath.Join(dir, "rec.sh")
	require.NoError(t, os.WriteFile(fn, []byte("#!/bin/sh\necho 42\necho hello\necho \"$1\"\n"), 0755))

	instance := &Listener{Configuration: &Configuration{
		Command: `"` + fn + `" 'forty two'`,
	}}

	var actual []Utterance
	require.NoError(t, instance.Listen(context.Background(), func(u Utterance) {
		actual = append(actual, u)
	}))

	assert.Equal(t, []Utterance{
		{"42", 42},
		{"forty two", 42},
	}, actual)
}
