package qa_test

import (
	"reflect"
	"testing"

	"github.com/indepthg/gita-qa/internal/qa"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []qa.VerseRef
	}{
		{
			name: "single token",
			text: "Act without attachment [2:47] and be steady.",
			want: []qa.VerseRef{{Chapter: 2, Verse: 47}},
		},
		{
			name: "duplicates keep first-seen order",
			text: "[9:22] then [2:47] then [9:22] again",
			want: []qa.VerseRef{{Chapter: 9, Verse: 22}, {Chapter: 2, Verse: 47}},
		},
		{
			name: "placeholder C prefix accepted",
			text: "see [C:12:12] for the list",
			want: []qa.VerseRef{{Chapter: 12, Verse: 12}},
		},
		{
			name: "out-of-range chapters and verses dropped",
			text: "[19:1] [0:5] [2:201] [18:78]",
			want: []qa.VerseRef{{Chapter: 18, Verse: 78}},
		},
		{
			name: "no tokens",
			text: "nothing cited here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qa.ExtractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "comma form",
			text: "As Chapter 9, Verse 22 promises, Krishna carries what they lack.",
			want: "As [9:22] promises, Krishna carries what they lack.",
		},
		{
			name: "no comma",
			text: "Chapter 2 Verse 47 is the karma yoga verse.",
			want: "[2:47] is the karma yoga verse.",
		},
		{
			name: "case insensitive",
			text: "see chapter 12, verse 12",
			want: "see [12:12]",
		},
		{
			name: "bracketed tokens untouched",
			text: "already [2:47] here",
			want: "already [2:47] here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qa.NormalizeCitations(tt.text); got != tt.want {
				t.Errorf("NormalizeCitations(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeThenExtract(t *testing.T) {
	text := "Chapter 9, Verse 22 and [2:47] make the point twice: Chapter 9, Verse 22."
	got := qa.ExtractCitations(qa.NormalizeCitations(text))
	want := []qa.VerseRef{{Chapter: 9, Verse: 22}, {Chapter: 2, Verse: 47}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCitationTokens(t *testing.T) {
	refs := []qa.VerseRef{
		{2, 47}, {3, 19}, {4, 18}, {5, 10}, {6, 5}, {9, 22}, {12, 12}, {18, 66}, {18, 78},
	}

	got := qa.CitationTokens(refs, 8)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	if got[0] != "[2:47]" || got[7] != "[18:66]" {
		t.Errorf("unexpected tokens: %v", got)
	}

	if got := qa.CitationTokens(refs, 0); len(got) != len(refs) {
		t.Errorf("uncapped len = %d, want %d", len(got), len(refs))
	}
}

func TestDistinctChapters(t *testing.T) {
	refs := []qa.VerseRef{{2, 47}, {2, 49}, {9, 22}, {12, 12}}
	if got := qa.DistinctChapters(refs); got != 3 {
		t.Errorf("DistinctChapters = %d, want 3", got)
	}
	if got := qa.DistinctChapters(nil); got != 0 {
		t.Errorf("DistinctChapters(nil) = %d, want 0", got)
	}
}
