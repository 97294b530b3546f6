package genai

import (
	"context"
	"strings"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Result is the outcome of a graph generation. Mocked is true when the AI
// backend could not produce a usable graph and the fallback was served.
type Result struct {
	Graph  flow.Graph `json:"graph"`
	Mocked bool       `json:"mocked,omitempty"`
}

// GenerateGraph turns a free-form project description into a tech stack
// graph. It never returns an AI error: any backend failure degrades to the
// deterministic [MockGraph] with Mocked set. The only errors surfaced are
// context cancellation, so callers can still abort cleanly.
func (c *Client) GenerateGraph(ctx context.Context, description string) (Result, error) {
	if !c.Available() {
		c.opts.Logger.Warn("AI backend not configured, serving mock graph")
		return Result{Graph: MockGraph(), Mocked: true}, nil
	}

	key := c.opts.Keyer.GenerationKey(c.opts.Model, description)
	text, err := c.cached(ctx, key, func() (string, error) {
		return c.generateContent(ctx, generationPrompt(description))
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		c.opts.Logger.Warn("graph generation failed, serving mock graph", "err", err)
		return Result{Graph: MockGraph(), Mocked: true}, nil
	}

	g, ok := parseGraphResponse(text)
	if !ok {
		c.opts.Logger.Warn("model returned unusable graph JSON, serving mock graph")
		return Result{Graph: MockGraph(), Mocked: true}, nil
	}
	return Result{Graph: g}, nil
}

// parseGraphResponse extracts and decodes the JSON object in a model
// response. Models often wrap JSON in prose or fences, so everything
// outside the outermost braces is discarded.
func parseGraphResponse(text string) (flow.Graph, bool) {
	jsonStr, ok := extractJSON(text)
	if !ok {
		return flow.Graph{}, false
	}
	g, err := flow.UnmarshalGraph([]byte(jsonStr))
	if err != nil {
		return flow.Graph{}, false
	}
	if g.Nodes == nil {
		return flow.Graph{}, false
	}
	return g, true
}

// extractJSON returns the substring from the first '{' to the last '}'.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
