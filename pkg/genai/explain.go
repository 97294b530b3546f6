package genai

import (
	"context"
	"strings"

	"github.com/stackcanvas/stackcanvas/pkg/cache"
	errs "github.com/stackcanvas/stackcanvas/pkg/errors"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// ExplainGraph produces a plain-text explanation of the graph in the
// context of the user's original request. Unlike graph generation there is
// no mock fallback; an unconfigured or failing backend is an error.
func (c *Client) ExplainGraph(ctx context.Context, g flow.Graph, originalPrompt string) (string, error) {
	if !c.Available() {
		return "", errs.New(errs.ErrCodeUnavailable, "AI backend not configured")
	}
	if originalPrompt == "" {
		return "", errs.New(errs.ErrCodeInvalidInput, "original prompt is required")
	}

	graphJSON, err := flow.MarshalGraph(g)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidGraph, err, "serialize graph")
	}

	hash := cache.Hash(append(graphJSON, originalPrompt...))
	key := c.opts.Keyer.ExplanationKey(c.opts.Model, hash)

	text, err := c.cached(ctx, key, func() (string, error) {
		return c.generateContent(ctx, explanationPrompt(string(graphJSON), originalPrompt))
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
