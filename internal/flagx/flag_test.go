package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "postgres://x", "-a", "localhost"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://x"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--dsn=postgres://x", "-a", "localhost"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"--dsn=postgres://x"},
		},
		{
			name:         "multiple allowed flags preserve order",
			args:         []string{"--dsn=first", "-s", "secret", "-x", "1"},
			allowedFlags: []string{"-s", "--dsn"},
			want:         []string{"--dsn=first", "-s", "secret"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "flag followed by another flag has no value",
			args:         []string{"-d", "-s", "secret"},
			allowedFlags: []string{"-d", "-s"},
			want:         []string{"-d", "-s", "secret"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}
