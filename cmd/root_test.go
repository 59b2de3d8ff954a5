package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 movie", plural(1, "movie"))
	assert.Equal(t, "0 movies", plural(0, "movie"))
	assert.Equal(t, "3 posters", plural(3, "poster"))
}

func TestPromptPasswordRequiresTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	stdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = stdin }()

	_, err = promptPassword("Password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin is not a terminal")
}
