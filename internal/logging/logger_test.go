package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, NewDefaultConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	assert.Error(t, Config{Level: "loud", Format: "console"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
}

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := New(Config{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}

	_, err := New(Config{Level: "nope", Format: "json"})
	assert.Error(t, err)
}
