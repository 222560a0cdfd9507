package diff

import (
	"strings"
	"testing"
)

func unmark(s string) string {
	s = strings.ReplaceAll(s, HighlightStart, "")
	return strings.ReplaceAll(s, HighlightEnd, "")
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		current string
		want    string
	}{
		{
			name:    "identical strings have no markers",
			base:    "same text",
			current: "same text",
			want:    "same text",
		},
		{
			name:    "inserted character is marked",
			base:    "abc",
			current: "abXc",
			want:    "ab" + HighlightStart + "X" + HighlightEnd + "c",
		},
		{
			name:    "everything new when base is empty",
			base:    "",
			current: "abc",
			want:    HighlightStart + "abc" + HighlightEnd,
		},
		{
			name:    "deletion is dropped",
			base:    "hello world",
			current: "hello",
			want:    "hello",
		},
		{
			name:    "empty current",
			base:    "abc",
			current: "",
			want:    "",
		},
		{
			name:    "both empty",
			base:    "",
			current: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.base, tt.current); got != tt.want {
				t.Errorf("Highlight(%q, %q) = %q, want %q", tt.base, tt.current, got, tt.want)
			}
		})
	}
}

func TestHighlight_PreservesCurrent(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xbz"},
		{"12:00:01", "12:00:59"},
		{"日本語テキスト", "日本のテキスト"},
		{"total 8\nfoo\nbar\n", "total 12\nbar\nbaz\nfoo\n"},
		{"aaaa", "bbbb"},
		{"Ünïcödé", "Unicode"},
	}

	for _, p := range pairs {
		got := Highlight(p[0], p[1])
		if unmark(got) != p[1] {
			t.Errorf("Highlight(%q, %q) without markers = %q, want %q", p[0], p[1], unmark(got), p[1])
		}
		if strings.Count(got, HighlightStart) != strings.Count(got, HighlightEnd) {
			t.Errorf("Highlight(%q, %q) = %q has unbalanced markers", p[0], p[1], got)
		}
	}
}

func TestHighlight_SelfHasNoMarkers(t *testing.T) {
	for _, s := range []string{"", "x", "line one\nline two\n", "ümlaut 日本"} {
		if got := Highlight(s, s); got != s {
			t.Errorf("Highlight(%q, %q) = %q, want input unchanged", s, s, got)
		}
	}
}
