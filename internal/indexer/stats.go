package indexer

// Stats summarizes one verse indexing run.
type Stats struct {
	// VersesSeen is the number of verse rows handed to the pipeline.
	VersesSeen int `json:"verses_seen"`
	// VersesEmbedded is the number of verses embedded and stored.
	VersesEmbedded int `json:"verses_embedded"`
	// VersesSkipped is the number of verses skipped.
	VersesSkipped int `json:"verses_skipped"`
	// SkipReasons is a breakdown of why verses were skipped.
	SkipReasons map[string]int `json:"skip_reasons,omitempty"`
	// Batches is the number of embedding batches sent.
	Batches int `json:"batches"`
}

// NewStats returns an empty stats record.
func NewStats() *Stats {
	return &Stats{SkipReasons: make(map[string]int)}
}

// Skip records one skipped verse under the given reason.
func (s *Stats) Skip(reason string) {
	s.VersesSkipped++
	s.SkipReasons[reason]++
}
