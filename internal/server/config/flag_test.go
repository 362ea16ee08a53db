package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		start       *Config
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "60", "-o", "https://ui.example", "-l", "debug", "-m",
		}, expected: &Config{
			HTTPAddr:         "127.0.0.1:9090",
			DatabaseDSN:      "db",
			SecretKey:        "secret",
			TokenValidity:    time.Hour,
			CORSOrigin:       "https://ui.example",
			LogLevel:         "debug",
			UseInMemoryStore: true,
		}},
		{name: "foreign flags are skipped", args: []string{"cmd",
			"-config", "cfg.yaml", "-test.v", "-a", ":1",
		}, expected: &Config{
			HTTPAddr:      ":1",
			TokenValidity: 24 * time.Hour,
		}},
		{name: "absent validity keeps sub-minute value", args: []string{"cmd", "-a", ":2"},
			start: &Config{TokenValidity: 90 * time.Second},
			expected: &Config{
				HTTPAddr:      ":2",
				TokenValidity: 90 * time.Second,
			}},
		{name: "bad int panics", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{TokenValidity: 24 * time.Hour}
			if tt.start != nil {
				config = tt.start
			}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
