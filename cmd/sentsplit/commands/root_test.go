package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"SENTSPLIT_MAX_SEGMENT_LENGTH", "SENTSPLIT_MAX_INPUT_LENGTH", "SENTSPLIT_LOG_LEVEL", "SENTSPLIT_LOG_FORMAT", "SENTSPLIT_NORMALIZE_INPUT"} {
		t.Setenv(k, "")
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "sentsplit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flagName  string
		shorthand string
	}{
		{"config", "c"},
		{"log-level", ""},
		{"log-format", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "--%s flag not found", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Empty(t, flag.DefValue)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "split", "mcp", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "split", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentsplit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_segment_length: 10\n"), 0o644))

	out, err := run(t, "", "--config", path, "split", "Hello world. This is a test")
	require.NoError(t, err)
	assert.Equal(t, "Hello\nworld.\nThis is\na\ntest\n", out)
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "split", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
