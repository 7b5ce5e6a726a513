package qa_test

import (
	"testing"

	"github.com/indepthg/gita-qa/internal/qa"
)

func passage(chapter, verse int) qa.CandidatePassage {
	return qa.CandidatePassage{Chapter: chapter, Verse: verse, Translation: "text"}
}

func refsOf(passages []qa.CandidatePassage) []qa.VerseRef {
	out := make([]qa.VerseRef, 0, len(passages))
	for _, p := range passages {
		out = append(out, p.Ref())
	}
	return out
}

func TestDiversify(t *testing.T) {
	opts := qa.DefaultDiversifyOptions()

	t.Run("adjacent verses suppressed", func(t *testing.T) {
		candidates := []qa.CandidatePassage{
			passage(2, 47), passage(2, 48), passage(2, 49),
			passage(3, 19), passage(4, 18), passage(2, 50),
		}
		got := refsOf(qa.Diversify(candidates, opts))
		want := []qa.VerseRef{{2, 47}, {2, 49}, {3, 19}, {4, 18}}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})

	t.Run("per-chapter cap", func(t *testing.T) {
		candidates := []qa.CandidatePassage{
			passage(2, 1), passage(2, 10), passage(2, 20), passage(2, 30),
			passage(9, 22), passage(12, 12),
		}
		got := qa.Diversify(candidates, opts)
		perChapter := make(map[int]int)
		for _, p := range got {
			perChapter[p.Chapter]++
		}
		if perChapter[2] != 2 {
			t.Errorf("chapter 2 contributed %d passages, want 2", perChapter[2])
		}
		if len(got) != 4 {
			t.Errorf("len = %d, want 4", len(got))
		}
	})

	t.Run("exact duplicates dropped", func(t *testing.T) {
		candidates := []qa.CandidatePassage{
			passage(2, 47), passage(2, 47), passage(9, 22),
		}
		got := qa.Diversify(candidates, opts)
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("max total", func(t *testing.T) {
		var candidates []qa.CandidatePassage
		for ch := 1; ch <= 18; ch++ {
			candidates = append(candidates, passage(ch, 1), passage(ch, 10))
		}
		got := qa.Diversify(candidates, opts)
		if len(got) != opts.MaxTotal {
			t.Errorf("len = %d, want %d", len(got), opts.MaxTotal)
		}
	})

	t.Run("relaxation admits neighbors when diversity floor unmet", func(t *testing.T) {
		relaxed := qa.DiversifyOptions{
			PerChapter:          3,
			MaxTotal:            10,
			NeighborRadius:      1,
			MinDistinctChapters: 3,
		}
		candidates := []qa.CandidatePassage{
			passage(2, 1), passage(2, 2), passage(2, 3),
		}
		got := refsOf(qa.Diversify(candidates, relaxed))
		// Strict pass keeps 2:1 and 2:3; the floor cannot be met with one
		// chapter of input, so the relaxation pass re-admits 2:2.
		want := []qa.VerseRef{{2, 1}, {2, 3}, {2, 2}}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})

	t.Run("relaxation still honors chapter cap", func(t *testing.T) {
		candidates := []qa.CandidatePassage{
			passage(2, 1), passage(2, 2), passage(2, 3), passage(2, 4),
		}
		got := qa.Diversify(candidates, opts)
		if len(got) != 2 {
			t.Errorf("len = %d, want 2 (chapter cap)", len(got))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := qa.Diversify(nil, opts); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}
