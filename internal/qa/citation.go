package qa

import (
	"regexp"
	"strconv"
)

// Corpus bounds used to validate citation tokens.
const (
	MaxChapter = 18
	MaxVerse   = 200
)

var (
	// Bracketed citation token, optionally prefixed "C:" (some generated
	// text echoes the literal [C:V] placeholder style with numbers).
	citationRe = regexp.MustCompile(`\[(?:C:)?(\d{1,2}):(\d{1,3})\]`)

	// Verbose phrasing like "Chapter 9, Verse 22" or "Chapter 9 Verse 22".
	verboseCitationRe = regexp.MustCompile(`(?i)Chapter\s+(\d{1,3})\s*,?\s*Verse\s+(\d{1,3})`)
)

// ExtractCitations scans text for [chapter:verse] tokens, keeps pairs inside
// the corpus bounds, and deduplicates preserving first-seen order.
// Out-of-range tokens are dropped silently.
func ExtractCitations(text string) []VerseRef {
	matches := citationRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[VerseRef]bool, len(matches))
	var out []VerseRef
	for _, m := range matches {
		chapter, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		verse, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if chapter < 1 || chapter > MaxChapter || verse < 1 || verse > MaxVerse {
			continue
		}
		ref := VerseRef{Chapter: chapter, Verse: verse}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}

// NormalizeCitations rewrites verbose "Chapter X, Verse Y" phrasing into
// bracketed [X:Y] form so both styles are captured uniformly by extraction.
func NormalizeCitations(text string) string {
	return verboseCitationRe.ReplaceAllString(text, "[$1:$2]")
}

// CitationTokens renders refs as bracketed strings, capped at max
// (pass 0 for no cap).
func CitationTokens(refs []VerseRef, max int) []string {
	if max > 0 && len(refs) > max {
		refs = refs[:max]
	}
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Token())
	}
	return out
}

// DistinctChapters counts the distinct chapters among refs.
func DistinctChapters(refs []VerseRef) int {
	seen := make(map[int]bool, len(refs))
	for _, r := range refs {
		seen[r.Chapter] = true
	}
	return len(seen)
}
