package picker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWords(t *testing.T) {
	tests := []struct {
		text     string
		expected []Word
		desc     string
	}{
		{"src main", []Word{{0, 3}, {4, 8}}, "two words"},
		{"word_with_underscores", []Word{{0, 21}}, "underscores: one word"},
		{"cmd/tvpick", []Word{{0, 3}, {4, 10}}, "slash: two words"},
		{"'foo bar$", []Word{{1, 4}, {5, 8}}, "query operators are not word characters"},
		{"日本 語", []Word{{0, 2}, {3, 4}}, "unicode letters"},
		{"  ", nil, "only spaces"},
		{"", nil, "empty"},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, Words([]rune(tc.text))); diff != "" {
				t.Errorf("Words(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestWordMotion(t *testing.T) {
	in := NewInput("foo/bar baz")

	var got []int
	for range 4 {
		in.WordLeft()
		got = append(got, in.Cursor())
	}
	if diff := cmp.Diff([]int{8, 4, 0, 0}, got); diff != "" {
		t.Errorf("WordLeft positions (-want +got):\n%s", diff)
	}

	got = nil
	for range 4 {
		in.WordRight()
		got = append(got, in.Cursor())
	}
	if diff := cmp.Diff([]int{3, 7, 11, 11}, got); diff != "" {
		t.Errorf("WordRight positions (-want +got):\n%s", diff)
	}
}

func TestWordRightTrailingPunctuation(t *testing.T) {
	in := NewInput("foo$")
	in.Home()
	in.WordRight()
	in.WordRight()
	if in.Cursor() != 4 {
		t.Errorf("expected cursor at end, got %d", in.Cursor())
	}
}
