// Package httputil provides small HTTP client helpers shared by the AI
// client and the API server: retry with exponential backoff for transient
// failures, and response draining utilities.
package httputil
