package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, arg := range []string{"", "0", "-3", "x1"} {
		_, err := parseID(arg)
		assert.Error(t, err, arg)
	}
}
