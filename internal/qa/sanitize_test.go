package qa_test

import (
	"testing"

	"github.com/indepthg/gita-qa/internal/qa"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "keyword fallback drops stop words and short tokens",
			raw:  "What does Krishna say about anger?",
			want: "krishna OR anger",
		},
		{
			name: "listing phrasing reduces to topic keyword",
			raw:  "Which verses talk about karma?",
			want: "karma",
		},
		{
			name: "lowercase operators upcased and expression kept",
			raw:  "karma or dharma",
			want: "karma OR dharma",
		},
		{
			name: "quoted phrase passes through",
			raw:  `"sthita prajna"`,
			want: `"sthita prajna"`,
		},
		{
			name: "verse reference survives",
			raw:  "2:47",
			want: "2:47",
		},
		{
			name: "disallowed punctuation stripped",
			raw:  "anger; rage & {fury}!",
			want: "anger OR rage OR fury",
		},
		{
			name: "only punctuation",
			raw:  "?!;",
			want: "",
		},
		{
			name: "empty",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qa.Sanitize(tt.raw); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Sanitizing an already-sanitized expression must return it unchanged, so
// queries can be rebuilt from stored text without drifting.
func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"What does Krishna say about anger?",
		"Which verses talk about karma?",
		"karma or dharma",
		`"sthita prajna"`,
		"2:47",
		"devotion OR bhakti OR bhakta",
		"how should one meditate on the self",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			once := qa.Sanitize(raw)
			twice := qa.Sanitize(once)
			if once != twice {
				t.Errorf("Sanitize not idempotent: %q -> %q -> %q", raw, once, twice)
			}
		})
	}
}

func TestExpandThemes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "recognized theme appends synonyms",
			raw:  "verses about anger",
			want: "verses about anger OR krodha OR wrath",
		},
		{
			// Themes expand in sorted order, so repeated calls build the
			// identical query even when several themes co-occur.
			name: "co-occurring themes expand in sorted order",
			raw:  "meditation and desire",
			want: "meditation and desire OR kama OR craving OR dhyana OR dhyan",
		},
		{
			name: "theme match is whole-word",
			raw:  "dangerous thoughts",
			want: "dangerous thoughts",
		},
		{
			name: "no theme unchanged",
			raw:  "who is Arjuna",
			want: "who is Arjuna",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qa.ExpandThemes(tt.raw); got != tt.want {
				t.Errorf("ExpandThemes(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	// Theme expansion introduces OR structure, so the expression passes
	// through sanitization whole instead of being reduced to keywords.
	got := qa.BuildQuery("Which verses talk about anger?")
	want := "Which verses talk about anger OR krodha OR wrath"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}

	if got := qa.BuildQuery("Which verses mention the mind?"); got == "" {
		t.Error("BuildQuery returned empty for a searchable question")
	}
}
