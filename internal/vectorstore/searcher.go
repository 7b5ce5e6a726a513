package vectorstore

import (
	"context"
	"fmt"

	"github.com/indepthg/gita-qa/internal/qa"
)

// VerseSearcher resolves free-text queries to verse references by embedding
// similarity. It implements qa.EmbedSearcher.
type VerseSearcher struct {
	store      VectorStore
	embedder   Embedder
	collection string
}

// NewVerseSearcher creates a searcher over the given collection.
func NewVerseSearcher(store VectorStore, embedder Embedder, collection string) *VerseSearcher {
	return &VerseSearcher{
		store:      store,
		embedder:   embedder,
		collection: collection,
	}
}

// Search embeds the query and returns matching verse references in score
// order. Points without valid chapter and verse payload fields are skipped.
func (s *VerseSearcher) Search(ctx context.Context, query, topic string, topK int) ([]qa.VerseRef, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	filters := map[string]any{}
	if topic != "" {
		filters["topic"] = topic
	}

	results, err := s.store.Search(ctx, s.collection, vectors[0], topK, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search vectors: %w", err)
	}

	refs := make([]qa.VerseRef, 0, len(results))
	for _, r := range results {
		chapter, ok := metaInt(r.Meta, "chapter")
		if !ok {
			continue
		}
		verse, ok := metaInt(r.Meta, "verse")
		if !ok {
			continue
		}
		if chapter < 1 || chapter > qa.MaxChapter || verse < 1 || verse > qa.MaxVerse {
			continue
		}
		refs = append(refs, qa.VerseRef{Chapter: chapter, Verse: verse})
	}
	return refs, nil
}

// metaInt reads an integer payload field. Qdrant returns integers as int64.
func metaInt(meta map[string]any, key string) (int, bool) {
	switch v := meta[key].(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
