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
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-s", "secret", "-t", "24",
				"-l", "http://translate", "-k", "apikey", "-v", "debug", "-r",
			},
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				EndpointAddrGRPC:      "127.0.0.1:9091",
				SecretKey:             "secret",
				TokenValidityDuration: 24 * time.Hour,
				TranslatorURL:         "http://translate",
				TranslatorAPIKey:      "apikey",
				LogLevel:              "debug",
				TranslateRequiresAuth: true,
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"cmd", "-c", "conf.json", "-s", "secret", "-x", "1"},
			expected: &Config{
				SecretKey:             "secret",
				TokenValidityDuration: 90 * time.Minute,
			},
		},
		{
			name:        "non-numeric validity panics",
			args:        []string{"cmd", "-t", "a-month"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{TokenValidityDuration: 90 * time.Minute}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
