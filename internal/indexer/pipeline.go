package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/vectorstore"
)

// defaultBatchSize bounds how many verse texts go to the embeddings API per
// request.
const defaultBatchSize = 32

// Pipeline embeds verse texts and stores them in the vector collection, so
// similarity search can supplement full-text retrieval.
type Pipeline struct {
	embedder    vectorstore.Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	topic       string
	batchSize   int
}

// NewPipeline creates a new verse indexing pipeline.
func NewPipeline(embedder vectorstore.Embedder, store vectorstore.VectorStore, collection, topic string) *Pipeline {
	return &Pipeline{
		embedder:    embedder,
		vectorStore: store,
		collection:  collection,
		topic:       topic,
		batchSize:   defaultBatchSize,
	}
}

// PointID returns the deterministic point ID for a verse, so re-ingesting a
// sheet overwrites vectors in place instead of accumulating duplicates.
func PointID(topic string, chapter, verse int) string {
	name := fmt.Sprintf("%s/%d:%d", topic, chapter, verse)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// embedText composes the text embedded for one verse.
func embedText(v storage.VerseRecord) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{v.Title, v.Translation, v.Colloquial} {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// IndexVerses embeds and upserts the given verses in batches. Verses with no
// usable text are counted and skipped. The context is checked between
// batches so long runs can be cancelled.
func (p *Pipeline) IndexVerses(ctx context.Context, verses []storage.VerseRecord) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	stats := NewStats()

	var (
		texts []string
		batch []storage.VerseRecord
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		embeddings, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, v := range batch {
			points[i] = vectorstore.Point{
				ID:  PointID(p.topic, v.Chapter, v.Verse),
				Vec: embeddings[i],
				Meta: map[string]any{
					"topic":   p.topic,
					"chapter": v.Chapter,
					"verse":   v.Verse,
					"title":   v.Title,
				},
			}
		}
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}

		stats.VersesEmbedded += len(batch)
		stats.Batches++
		texts = texts[:0]
		batch = batch[:0]
		return nil
	}

	for _, v := range verses {
		stats.VersesSeen++

		text := embedText(v)
		if text == "" {
			stats.Skip("empty_text")
			continue
		}

		texts = append(texts, text)
		batch = append(batch, v)
		if len(batch) < p.batchSize {
			continue
		}

		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}
		if err := flush(); err != nil {
			return stats, err
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	logger.InfoContext(ctx, "verse indexing completed",
		"seen", stats.VersesSeen, "embedded", stats.VersesEmbedded,
		"skipped", stats.VersesSkipped, "batches", stats.Batches)
	return stats, nil
}
