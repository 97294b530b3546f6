// Package genai generates tech stack graphs, explanations, and scaffold
// scripts with the Gemini API.
//
// The client is resilient by design: graph generation falls back to a
// deterministic mock graph whenever the AI backend is unconfigured,
// unreachable, or returns unparseable output, so callers always get a
// usable diagram. Explanations and scripts have no sensible mock and
// return errors instead.
//
// Responses are cached through [cache.Cache] keyed on model and input, so
// repeated requests for the same description do not burn API quota.
package genai
