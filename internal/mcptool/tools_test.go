package mcptool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T, maxInput int) *Handlers {
	t.Helper()
	server := mcpserver.NewMCPServer("sentsplit-test", "0.0.0")
	h := RegisterTools(server, 256, maxInput, nil)
	require.NotNil(t, h)
	return h
}

func call(t *testing.T, h *Handlers, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ToolName,
			Arguments: args,
		},
	}
	result, err := h.SplitText(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestSplitText(t *testing.T) {
	h := newHandlers(t, 0)

	tests := []struct {
		name string
		args map[string]any
		want []string
		max  int
	}{
		{
			name: "default length",
			args: map[string]any{"text": "aaa... a, aa"},
			want: []string{"aaa...", "a,", "aa"},
			max:  256,
		},
		{
			name: "explicit length",
			args: map[string]any{"text": "Hello world. This is a test", "max_length": float64(10)},
			want: []string{"Hello", "world.", "This is", "a", "test"},
			max:  10,
		},
		{
			name: "whitespace only",
			args: map[string]any{"text": "   "},
			want: []string{},
			max:  256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, h, tt.args)
			assert.False(t, result.IsError)

			var got SplitResult
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
			assert.Equal(t, tt.want, got.Segments)
			assert.Equal(t, len(tt.want), got.Count)
			assert.Equal(t, tt.max, got.MaxLength)
		})
	}
}

func TestSplitText_Errors(t *testing.T) {
	h := newHandlers(t, 8)

	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{"missing text", map[string]any{}, "required"},
		{"text not a string", map[string]any{"text": 3}, "required"},
		{"empty text", map[string]any{"text": ""}, "empty"},
		{"text too long", map[string]any{"text": strings.Repeat("a", 9)}, "longer than 8"},
		{"zero max length", map[string]any{"text": "abc", "max_length": float64(0)}, "between 1 and 256"},
		{"max length above configured", map[string]any{"text": "abc", "max_length": float64(300)}, "between 1 and 256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, h, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.message)
		})
	}
}

func TestSplitText_CancelledContext(t *testing.T) {
	h := newHandlers(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ToolName,
			Arguments: map[string]any{"text": "One. Two."},
		},
	}
	_, err := h.SplitText(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
