package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{
		"generate", "layout", "explain", "scaffold", "prompt",
		"export", "serve", "history", "cache", "completion",
	}

	registered := make(map[string]bool)
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.SetLogLevel(log.DebugLevel)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestHistoryLabel(t *testing.T) {
	if got := historyLabel("short"); got != "short" {
		t.Errorf("historyLabel = %q", got)
	}

	long := strings.Repeat("x", 100)
	got := historyLabel(long)
	if len(got) != 63 || !strings.HasSuffix(got, "...") {
		t.Errorf("historyLabel(long) = %q (len %d)", got, len(got))
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"graph.json", ".svg", "graph.svg"},
		{"dir/stack.json", ".svg", "dir/stack.svg"},
		{"noext", ".svg", "noext.svg"},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("defaultOutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}
