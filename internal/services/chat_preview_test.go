package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncatePreview_RuneBoundary(t *testing.T) {
	long := strings.Repeat("ế", 100)
	got := truncatePreview(long, 80)
	if !utf8.ValidString(got) {
		t.Error("Expected the truncated preview to remain valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("Expected 80 runes, got %d", n)
	}

	short := "xin chào"
	if got := truncatePreview(short, 80); got != short {
		t.Errorf("Expected short content untouched, got %q", got)
	}
}
