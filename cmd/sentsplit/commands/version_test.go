package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	original := versionInfo
	defer func() { versionInfo = original }()

	SetVersion("1.2.3", "abc123", "2026-01-31")

	out, err := run(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "sentsplit 1.2.3")
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Built:  2026-01-31")
}

func TestMCPCmd(t *testing.T) {
	cmd := NewMCPCmd(&rootOptions{})

	assert.Equal(t, "mcp", cmd.Use)
	assert.Contains(t, cmd.Long, "stdio")
	assert.Contains(t, cmd.Long, "split_text")
	assert.NotNil(t, cmd.RunE)
	assert.NotEmpty(t, cmd.Example)
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := NewServeCmd(&rootOptions{})

	for _, name := range []string{"addr", "max-length", "max-input", "max-concurrent", "normalize"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "--%s flag not found", name)
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	_, err := run(t, "", "serve", "--max-concurrent", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_streams")
}
