package genai

import (
	"context"
	"strings"

	"github.com/stackcanvas/stackcanvas/pkg/cache"
	errs "github.com/stackcanvas/stackcanvas/pkg/errors"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Shebang is the required first line of a generated scaffold script.
const Shebang = "#!/bin/bash"

// missingShebangWarning prefixes scripts that did not come back in the
// required format. They are still returned for manual review.
const missingShebangWarning = "# Warning: generated script does not start with " + Shebang + ". Review before execution."

// GenerateScript produces a bash script that scaffolds the project
// structure for the graph. Markdown fences are stripped from the model
// output; a script missing the shebang is prefixed with a warning comment
// rather than rejected.
func (c *Client) GenerateScript(ctx context.Context, g flow.Graph, userContext string) (string, error) {
	if !c.Available() {
		return "", errs.New(errs.ErrCodeUnavailable, "AI backend not configured")
	}

	graphJSON, err := flow.MarshalGraph(g)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidGraph, err, "serialize graph")
	}

	hash := cache.Hash(append(graphJSON, userContext...))
	key := c.opts.Keyer.ScriptKey(c.opts.Model, hash)

	raw, err := c.cached(ctx, key, func() (string, error) {
		return c.generateContent(ctx, scriptPrompt(string(graphJSON), userContext))
	})
	if err != nil {
		return "", err
	}

	script := cleanScript(raw)
	if !strings.HasPrefix(script, Shebang) {
		c.opts.Logger.Warn("generated script missing shebang")
		script = missingShebangWarning + "\n" + script
	}
	return script, nil
}

// cleanScript strips surrounding whitespace and markdown code fences that
// models add despite instructions.
func cleanScript(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range []string{"```bash", "```sh", "```"} {
		if strings.HasPrefix(s, fence) {
			s = strings.TrimSpace(strings.TrimPrefix(s, fence))
			break
		}
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	return s
}
