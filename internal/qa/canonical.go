package qa

import (
	"context"
	"strings"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/storage"
)

// DefaultTiers is the answer-tier preference order. The historical "medium"
// tier still exists in storage but is no longer composed into answers.
var DefaultTiers = []string{"long", "short"}

// CanonicalMatcher looks up questions against the precomputed canonical
// table: a ranked full-text stage, then a substring containment fallback.
type CanonicalMatcher struct {
	store storage.CanonicalStore
	tiers []string
}

// NewCanonicalMatcher creates a matcher. A nil tiers slice selects
// DefaultTiers.
func NewCanonicalMatcher(store storage.CanonicalStore, tiers []string) *CanonicalMatcher {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	return &CanonicalMatcher{store: store, tiers: tiers}
}

// CanonicalMatch is a resolved canonical answer.
type CanonicalMatch struct {
	Entry     storage.CanonicalEntry
	Answer    string
	Citations []VerseRef
}

// Match returns the best canonical entry for the question, or nil when no
// stage matches. Store errors on the full-text stage degrade to the
// substring stage rather than failing the lookup.
func (m *CanonicalMatcher) Match(ctx context.Context, question string) (*CanonicalMatch, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entry, err := m.store.SearchBest(ctx, BuildQuery(question))
	if err != nil && err != storage.ErrNotFound {
		logger.WarnContext(ctx, "canonical full-text stage failed, trying substring", "error", err)
	}
	if entry == nil {
		entry, err = m.store.SubstringBest(ctx, strings.TrimSpace(question))
		if err == storage.ErrNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}

	answers, err := m.store.Answers(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	// Concatenate whichever preferred tiers actually exist.
	var parts []string
	for _, tier := range m.tiers {
		if text := strings.TrimSpace(answers[tier]); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}

	answer := NormalizeCitations(strings.Join(parts, "\n\n"))
	return &CanonicalMatch{
		Entry:     *entry,
		Answer:    answer,
		Citations: ExtractCitations(answer),
	}, nil
}
