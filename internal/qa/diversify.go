package qa

// DiversifyOptions bounds how many passages may come from the same chapter
// or verse neighborhood.
type DiversifyOptions struct {
	// PerChapter caps accepted passages per chapter.
	PerChapter int
	// MaxTotal caps the accepted set.
	MaxTotal int
	// NeighborRadius suppresses same-chapter verses this close to an
	// already-accepted one.
	NeighborRadius int
	// MinDistinctChapters is the diversity floor; below it the relaxation
	// pass runs.
	MinDistinctChapters int
}

// DefaultDiversifyOptions returns the standard parameters.
func DefaultDiversifyOptions() DiversifyOptions {
	return DiversifyOptions{
		PerChapter:          2,
		MaxTotal:            10,
		NeighborRadius:      1,
		MinDistinctChapters: 3,
	}
}

// Diversify selects a bounded subset of the relevance-ordered candidates,
// capping per-chapter repetition and suppressing near-neighbor duplicates.
//
// The strict pass enforces both the chapter cap and adjacent-verse
// suppression, so a cluster of consecutive verses cannot pose as independent
// evidence. If the accepted set then spans fewer than MinDistinctChapters
// chapters, a relaxation pass re-scans the original order accepting
// candidates that satisfy only the chapter cap and are not exact duplicates.
func Diversify(candidates []CandidatePassage, opts DiversifyOptions) []CandidatePassage {
	if opts.MaxTotal <= 0 || len(candidates) == 0 {
		return nil
	}

	perChapter := make(map[int]int)
	versesByChapter := make(map[int][]int)
	accepted := make([]CandidatePassage, 0, opts.MaxTotal)
	seen := make(map[VerseRef]bool)

	// Pass 1: strict.
	for _, c := range candidates {
		if len(accepted) >= opts.MaxTotal {
			break
		}
		if seen[c.Ref()] {
			continue
		}
		if opts.PerChapter > 0 && perChapter[c.Chapter] >= opts.PerChapter {
			continue
		}
		if hasNeighbor(versesByChapter[c.Chapter], c.Verse, opts.NeighborRadius) {
			continue
		}
		accepted = append(accepted, c)
		seen[c.Ref()] = true
		perChapter[c.Chapter]++
		versesByChapter[c.Chapter] = append(versesByChapter[c.Chapter], c.Verse)
	}

	// Pass 2: relax neighbor suppression when the diversity floor is unmet.
	if distinctChapterCount(perChapter) < opts.MinDistinctChapters {
		for _, c := range candidates {
			if len(accepted) >= opts.MaxTotal {
				break
			}
			if seen[c.Ref()] {
				continue
			}
			if opts.PerChapter > 0 && perChapter[c.Chapter] >= opts.PerChapter {
				continue
			}
			accepted = append(accepted, c)
			seen[c.Ref()] = true
			perChapter[c.Chapter]++
		}
	}

	return accepted
}

func hasNeighbor(verses []int, verse, radius int) bool {
	if radius <= 0 {
		return false
	}
	for _, v := range verses {
		d := v - verse
		if d < 0 {
			d = -d
		}
		if d <= radius {
			return true
		}
	}
	return false
}

func distinctChapterCount(perChapter map[int]int) int {
	n := 0
	for _, count := range perChapter {
		if count > 0 {
			n++
		}
	}
	return n
}
