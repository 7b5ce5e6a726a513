package storage

// VerseRecord represents one verse row, keyed by (chapter, verse).
type VerseRecord struct {
	ID           int64
	RowNum       int    // Ordering hint from the source sheet
	AudioID      string // External media reference
	Chapter      int    // 1..18
	Verse        int    // >= 1
	Sanskrit     string // Primary original text
	Roman        string // Transliteration
	Colloquial   string // Colloquial rendering
	Translation  string // Primary translation
	Commentary1  string
	Commentary2  string
	Commentary3  string
	CapsuleURL   string
	WordMeanings string // Word-by-word gloss
	Title        string
}

// CanonicalEntry represents a precomputed question with tiered answers.
type CanonicalEntry struct {
	ID           int64
	MicroTopicID int64  // Originating micro-topic grouping
	Intent       string // e.g. "general"
	Priority     int    // Lower wins ties
	Source       string // "seed" or "canonical" (generated)
	QuestionText string
}
