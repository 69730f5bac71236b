// Package mcptool exposes the splitter as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	sentsplit "github.com/jamesainslie/go-sentsplit"
)

// ToolName is the name clients call the split tool by.
const ToolName = "split_text"

// Handlers serves tool calls.
type Handlers struct {
	maxLength      int
	maxInputLength int
	logger         *slog.Logger
}

// SplitResult is the JSON body returned by split_text.
type SplitResult struct {
	Segments  []string `json:"segments"`
	Count     int      `json:"count"`
	MaxLength int      `json:"max_length"`
}

// RegisterTools registers the split tool with server. maxLength is both the
// default and the largest segment length a call may ask for.
func RegisterTools(server *mcpserver.MCPServer, maxLength, maxInputLength int, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		maxLength:      maxLength,
		maxInputLength: maxInputLength,
		logger:         logger,
	}

	server.AddTool(mcp.Tool{
		Name:        ToolName,
		Description: "Split text into segments no longer than max_length characters, cutting at sentence ends first, then clause punctuation, then whitespace.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to split",
				},
				"max_length": map[string]interface{}{
					"type":        "number",
					"description": fmt.Sprintf("Maximum segment length in characters, 1 to %d (default: %d)", maxLength, maxLength),
					"default":     maxLength,
				},
			},
			Required: []string{"text"},
		},
	}, h.SplitText)

	return h
}

// SplitText handles the split_text tool.
func (h *Handlers) SplitText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	n := utf8.RuneCountInString(text)
	if n < sentsplit.MinLength {
		return mcp.NewToolResultError("text must not be empty"), nil
	}
	if h.maxInputLength > 0 && n > h.maxInputLength {
		return mcp.NewToolResultError(fmt.Sprintf("text is longer than %d characters", h.maxInputLength)), nil
	}

	maxLength := request.GetInt("max_length", h.maxLength)
	if maxLength < sentsplit.MinLength || maxLength > h.maxLength {
		return mcp.NewToolResultError(fmt.Sprintf("max_length must be between %d and %d", sentsplit.MinLength, h.maxLength)), nil
	}

	splitter, err := sentsplit.New(sentsplit.WithMaxLength(maxLength), sentsplit.WithLogger(h.logger))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := SplitResult{Segments: []string{}, MaxLength: maxLength}
	for seg := range splitter.All(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Segments = append(result.Segments, seg.Text)
	}
	result.Count = len(result.Segments)

	h.logger.Debug("split_text", "input_length", n, "segments", result.Count, "max_length", maxLength)

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
