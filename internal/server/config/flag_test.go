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
	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "30", "-g", "http://gateway:3000", "-k", "shared",
			},
			expected: &Config{
				HTTPAddr:         "127.0.0.1:9090",
				DatabaseDSN:      "db",
				JWTSecret:        "secret",
				TokenLifetime:    30 * time.Minute,
				DirectoryBaseURL: "http://gateway:3000",
				DirectorySecret:  "shared",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-a", ":8080", "-z", "nope"},
			expected: &Config{
				HTTPAddr: ":8080",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			defer func() { os.Args = origArgs }()
			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

func TestParseFlags_TokenLifetimeKeptWhenFlagAbsent(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-a", ":8080"}

	config := &Config{TokenLifetime: 90 * time.Second}

	require.NotPanics(t, func() { parseFlags(config) })
	assert.Equal(t, 90*time.Second, config.TokenLifetime,
		"a lifetime finer than a minute must survive when -t is not given")
}
