package export

import (
	"strings"
	"testing"
)

func TestNormalizeViewBox(t *testing.T) {
	in := `<?xml version="1.0"?>
<svg width="134pt" height="188pt" viewBox="0.00 0.00 133.50 188.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`

	out := string(normalizeViewBox([]byte(in)))

	if !strings.Contains(out, `viewBox="0 0 133.50 188.00"`) {
		t.Errorf("viewBox not normalized to origin:\n%s", out)
	}
	if !strings.Contains(out, `width="134" height="188"`) {
		t.Errorf("pixel dimensions not set:\n%s", out)
	}
	if strings.Contains(out, "pt\"") {
		t.Errorf("pt units should be gone:\n%s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"NoViewBox", `<svg xmlns="http://www.w3.org/2000/svg"><g/></svg>`},
		{"ZeroSize", `<svg viewBox="0 0 0 0"><g/></svg>`},
		{"NotSVG", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.in {
				t.Errorf("input should pass through unchanged, got:\n%s", got)
			}
		})
	}
}
