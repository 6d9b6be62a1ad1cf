package util

import (
	"strings"
	"testing"
)

func TestWrapStringShortText(t *testing.T) {
	// Text shorter than the wrap width must come back verbatim
	text := "Log level (debug, info, warn, error)"
	if got := WrapString(text); got != text {
		t.Errorf("Expected short text unchanged, got %q", got)
	}
}

func TestWrapStringKeepsLastLine(t *testing.T) {
	text := "Comma-separated list of named in-memory stores to create for the hub"
	got := WrapString(text)

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected text longer than the wrap width to span multiple lines, got %q", got)
	}
	for _, line := range lines {
		if len(line) > Wrap {
			t.Errorf("Expected every line to fit the wrap width %d, got %q", Wrap, line)
		}
	}

	// No word may be lost, in particular not those after the last wrap
	if strings.Join(lines, " ") != text {
		t.Errorf("Expected wrapping to preserve all words, got %q", got)
	}
}

func TestWrapStringEmpty(t *testing.T) {
	if got := WrapString(""); got != "" {
		t.Errorf("Expected empty input to stay empty, got %q", got)
	}
}
