package qa

import (
	"strings"
)

// ContextOptions bounds the context block handed to generation.
type ContextOptions struct {
	// MaxPassageChars caps each passage snippet; truncation lands on a word
	// boundary with a trailing ellipsis.
	MaxPassageChars int
	// MaxLines caps the number of context lines.
	MaxLines int
	// RestrictToSources prepends an instruction confining the answer to the
	// supplied passages.
	RestrictToSources bool
}

// DefaultContextOptions returns the standard assembly parameters.
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		MaxPassageChars:   600,
		MaxLines:          40,
		RestrictToSources: true,
	}
}

// BuildContext turns selected passages into compact citation-prefixed lines:
//
//	[2:47] You have a right to action alone…
//
// Passages without usable text are skipped.
func BuildContext(passages []CandidatePassage, opts ContextOptions) string {
	var lines []string
	for _, p := range passages {
		if opts.MaxLines > 0 && len(lines) >= opts.MaxLines {
			break
		}
		snippet := strings.TrimSpace(p.Snippet())
		if snippet == "" {
			continue
		}
		snippet = truncateAtWord(snippet, opts.MaxPassageChars)
		lines = append(lines, p.Ref().Token()+" "+snippet)
	}
	if len(lines) == 0 {
		return ""
	}

	block := strings.Join(lines, "\n")
	if opts.RestrictToSources {
		return "Context lines (each begins with a verse citation you may cite):\n" + block
	}
	return block
}

// truncateAtWord caps s at max characters, backing up to the last space and
// appending an ellipsis. A max of 0 disables truncation.
func truncateAtWord(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
