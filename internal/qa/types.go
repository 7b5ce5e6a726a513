package qa

import "fmt"

// Mode identifies how a question was routed.
type Mode string

const (
	ModeExplain     Mode = "explain"
	ModeWordMeaning Mode = "word_meaning"
	ModeCanonical   Mode = "canonical"
	ModeListing     Mode = "listing"
	ModeDefinition  Mode = "definition"
	ModeBroad       Mode = "broad"
	ModeError       Mode = "error"
)

// AskRequest represents one question for the engine.
type AskRequest struct {
	// Question is the raw user question.
	Question string `json:"question"`
	// Topic optionally scopes embedding search. Defaults to the configured topic.
	Topic string `json:"topic,omitempty"`
	// Debug enables diagnostic information in the result.
	Debug bool `json:"debug,omitempty"`
}

// AskResult is the engine's answer to one question.
//
// Lookup misses and exhausted fallbacks are reported here with ModeError or a
// no-match answer, never as an error return.
type AskResult struct {
	// Mode is the route the question took.
	Mode Mode `json:"mode"`
	// Answer may contain inline [chapter:verse] citation tokens.
	Answer string `json:"answer"`
	// Citations holds bracketed citation strings in first-seen order, capped at 8.
	Citations []string `json:"citations"`
	// Suggestions holds up to 4 short follow-up prompts.
	Suggestions []string `json:"suggestions,omitempty"`
	// Debug is an implementation-defined diagnostic map.
	Debug map[string]any `json:"debug,omitempty"`
}

// VerseRef is a validated (chapter, verse) pair.
type VerseRef struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Token renders the reference in bracketed citation form.
func (r VerseRef) Token() string {
	return fmt.Sprintf("[%d:%d]", r.Chapter, r.Verse)
}

// CandidatePassage is an ephemeral search hit used during diversification
// and context assembly. Its identity within a request is (Chapter, Verse).
type CandidatePassage struct {
	Chapter      int
	Verse        int
	Title        string
	Translation  string
	Roman        string
	Colloquial   string
	WordMeanings string
}

// Ref returns the passage's (chapter, verse) key.
func (p CandidatePassage) Ref() VerseRef {
	return VerseRef{Chapter: p.Chapter, Verse: p.Verse}
}

// Snippet returns the best available short text for the passage.
func (p CandidatePassage) Snippet() string {
	switch {
	case p.Translation != "":
		return p.Translation
	case p.Colloquial != "":
		return p.Colloquial
	case p.Roman != "":
		return p.Roman
	default:
		return p.Title
	}
}
