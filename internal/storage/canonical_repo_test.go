package storage

import (
	"context"
	"testing"
)

func seedCanonical(t *testing.T, repo *CanonicalRepo, text string, priority int, tiers map[string]string) int64 {
	t.Helper()
	ctx := context.Background()
	e := &CanonicalEntry{QuestionText: text, MicroTopicID: 1, Intent: "general", Priority: priority, Source: "seed"}
	if err := repo.UpsertEntry(ctx, e); err != nil {
		t.Fatalf("UpsertEntry(%q) unexpected error: %v", text, err)
	}
	for tier, answer := range tiers {
		if err := repo.UpsertAnswer(ctx, e.ID, tier, answer); err != nil {
			t.Fatalf("UpsertAnswer(%q, %q) unexpected error: %v", text, tier, err)
		}
	}
	return e.ID
}

func TestCanonicalRepo_SearchBest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCanonicalRepo(db)
	ctx := context.Background()

	seedCanonical(t, repo, "What is a sthita-prajna in the Gita?", 3, map[string]string{
		"short": "One of steady wisdom [2:55].",
		"long":  "Krishna's portrait spans [2:54] to [2:72].",
	})
	seedCanonical(t, repo, "What does the Gita say about surrender?", 5, map[string]string{
		"short": "Take refuge [18:66].",
	})

	got, err := repo.SearchBest(ctx, "sthita prajna")
	if err != nil {
		t.Fatalf("SearchBest() unexpected error: %v", err)
	}
	if got.QuestionText != "What is a sthita-prajna in the Gita?" {
		t.Errorf("SearchBest() matched %q, want sthita-prajna question", got.QuestionText)
	}

	if _, err := repo.SearchBest(ctx, "zzzzz"); err != ErrNotFound {
		t.Errorf("SearchBest() with no hit: err = %v, want ErrNotFound", err)
	}
	if _, err := repo.SearchBest(ctx, ""); err != ErrNotFound {
		t.Errorf("SearchBest() with empty query: err = %v, want ErrNotFound", err)
	}
}

func TestCanonicalRepo_SubstringBest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCanonicalRepo(db)
	ctx := context.Background()

	seedCanonical(t, repo, "What are the three gunas?", 5, nil)
	seedCanonical(t, repo, "How do the three gunas bind the soul?", 2, nil)

	// Lower priority value wins among multiple containment matches.
	got, err := repo.SubstringBest(ctx, "three gunas")
	if err != nil {
		t.Fatalf("SubstringBest() unexpected error: %v", err)
	}
	if got.QuestionText != "How do the three gunas bind the soul?" {
		t.Errorf("SubstringBest() matched %q, want priority-2 question", got.QuestionText)
	}

	// LIKE is case-insensitive for ASCII.
	got, err = repo.SubstringBest(ctx, "THREE GUNAS")
	if err != nil {
		t.Fatalf("SubstringBest() case-insensitive lookup unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("SubstringBest() case-insensitive lookup returned nil entry")
	}

	if _, err := repo.SubstringBest(ctx, "unmatched text"); err != ErrNotFound {
		t.Errorf("SubstringBest() with no hit: err = %v, want ErrNotFound", err)
	}
}

func TestCanonicalRepo_Answers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCanonicalRepo(db)
	ctx := context.Background()

	qid := seedCanonical(t, repo, "What is Karma Yoga?", 3, map[string]string{
		"short": "Selfless action [2:47].",
		"long":  "Act without attachment to fruits [2:47] [2:48].",
	})

	answers, err := repo.Answers(ctx, qid)
	if err != nil {
		t.Fatalf("Answers() unexpected error: %v", err)
	}
	if len(answers) != 2 {
		t.Errorf("Answers() returned %d tiers, want 2", len(answers))
	}
	if answers["short"] != "Selfless action [2:47]." {
		t.Errorf("Answers() short tier = %q", answers["short"])
	}

	// Replacing a tier keeps (entry, tier) unique.
	if err := repo.UpsertAnswer(ctx, qid, "short", "updated"); err != nil {
		t.Fatalf("UpsertAnswer() replace unexpected error: %v", err)
	}
	answers, err = repo.Answers(ctx, qid)
	if err != nil {
		t.Fatalf("Answers() after replace unexpected error: %v", err)
	}
	if len(answers) != 2 {
		t.Errorf("Answers() after replace returned %d tiers, want 2", len(answers))
	}
	if answers["short"] != "updated" {
		t.Errorf("Answers() short tier after replace = %q, want %q", answers["short"], "updated")
	}
}

func TestCanonicalRepo_UpsertEntryIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCanonicalRepo(db)
	ctx := context.Background()

	first := &CanonicalEntry{QuestionText: "What is Bhakti?", MicroTopicID: 4, Priority: 3, Source: "seed"}
	if err := repo.UpsertEntry(ctx, first); err != nil {
		t.Fatalf("UpsertEntry() unexpected error: %v", err)
	}
	second := &CanonicalEntry{QuestionText: "What is Bhakti?", MicroTopicID: 4, Priority: 3, Source: "canonical"}
	if err := repo.UpsertEntry(ctx, second); err != nil {
		t.Fatalf("UpsertEntry() repeat unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("UpsertEntry() repeat produced id %d, want existing id %d", second.ID, first.ID)
	}

	entries, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ListEntries() returned %d entries, want 1", len(entries))
	}
}
