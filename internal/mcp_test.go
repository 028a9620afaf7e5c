package internal

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestMCPPlanTool(t *testing.T) {
	app := newTestApp(t)
	touch(t, filepath.Join(app.baseDir, "Other", "UploaderX", "Title.mp4"))
	s := NewMCPServer(app.App, "test")

	result := callTool(t, s.handlePlan, map[string]any{
		"url":      "https://www.youtube.com/watch?v=abc123&t=10",
		"format":   "2",
		"category": "Music",
	})
	if result.IsError {
		t.Fatalf("tool failed: %s", resultText(t, result))
	}

	var plan Plan
	if err := json.Unmarshal([]byte(resultText(t, result)), &plan); err != nil {
		t.Fatalf("result is not a plan: %v", err)
	}
	if plan.URL != "https://www.youtube.com/watch?v=abc123" || plan.Format != FormatMP4 || plan.Category != CategoryMusic {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if len(plan.Duplicates) != 1 {
		t.Errorf("expected the Other duplicate, got %v", plan.Duplicates)
	}
	if len(app.engine.fetched) != 0 || FileExists(plan.TargetDir) {
		t.Error("planning must not download or create directories")
	}
}

func TestMCPPlanToolErrors(t *testing.T) {
	app := newTestApp(t)
	s := NewMCPServer(app.App, "test")

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing url", map[string]any{}, "url parameter is required"},
		{"bad format", map[string]any{"url": "https://youtu.be/x", "format": "flac"}, `invalid format "flac"`},
		{"bad category", map[string]any{"url": "https://youtu.be/x", "category": "news"}, `invalid category "news"`},
		{"not youtube", map[string]any{"url": "https://vimeo.com/1"}, "only meant for youtube links"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s.handlePlan, tt.args)
			if !result.IsError {
				t.Fatal("expected an error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("error %q does not contain %q", text, tt.want)
			}
		})
	}

	app.engine.probeErr = errors.New("private video")
	result := callTool(t, s.handlePlan, map[string]any{"url": "https://youtu.be/x"})
	if !result.IsError || !strings.Contains(resultText(t, result), "private video") {
		t.Errorf("probe errors should be reported: %+v", result)
	}
}

func TestMCPListOptionsTool(t *testing.T) {
	app := newTestApp(t)
	s := NewMCPServer(app.App, "test")

	text := resultText(t, callTool(t, s.handleListOptions, nil))
	for _, want := range []string{"1: mp3", "2: mp4", "2: podcast (folder Podcast)", "5: other (folder Other)"} {
		if !strings.Contains(text, want) {
			t.Errorf("options missing %q:\n%s", want, text)
		}
	}
}
