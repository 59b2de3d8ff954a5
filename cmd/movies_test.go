package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovieIDs(t *testing.T) {
	ids, err := parseMovieIDs([]string{"603", " 155 ", "603"})
	require.NoError(t, err)
	assert.Equal(t, []int64{603, 155}, ids)
	assert.Equal(t, "603, 155", joinIDs(ids))

	for _, bad := range []string{"abc", "0", "-3", ""} {
		_, err := parseMovieIDs([]string{bad})
		assert.Error(t, err, bad)
	}
}
