package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *NewDefaultConfig(), false},
		{"console format", Config{Level: "debug", Format: "console"}, false},
		{"warn level", Config{Level: "warn", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("builds logger from defaults when config is nil", func(t *testing.T) {
		logger, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := New(&Config{Level: "nope", Format: "json"})
		assert.Error(t, err)
	})
}

func TestNewTestLogger(t *testing.T) {
	logger, observed := NewTestLogger()
	logger.Info("hello")

	entries := observed.FilterMessage("hello").All()
	require.Len(t, entries, 1)
}
