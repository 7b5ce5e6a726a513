package qa

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks github.com/indepthg/gita-qa/internal/qa Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embed_searcher.go -package=mocks github.com/indepthg/gita-qa/internal/qa EmbedSearcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/storage"
)

// ErrEmptyQuestion is returned for questions that are empty after trimming.
// Handlers reject these before the pipeline runs.
var ErrEmptyQuestion = errors.New("empty question")

// DefaultNoMatchMessage is the static last-resort answer. config.Load uses it
// as the NO_MATCH_MESSAGE default so the two never diverge.
const DefaultNoMatchMessage = "I couldn't find enough in the corpus to answer that. Try a specific verse like 12:12, or rephrase your question."

// Generator produces text from a system and user prompt. Implementations
// should return an error on transport failure; the engine treats any failure
// as an empty result and falls through to the next stage.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// EmbedSearcher is an optional similarity-search collaborator returning
// verse references in relevance order.
type EmbedSearcher interface {
	Search(ctx context.Context, query, topic string, topK int) ([]VerseRef, error)
}

// Options tunes the answer orchestrator.
type Options struct {
	// NoMatchMessage is the static last-resort answer.
	NoMatchMessage string
	// Tiers is the canonical answer-tier preference order.
	Tiers []string
	// DefaultTopic scopes embedding search when the request has no topic.
	DefaultTopic string
	// MinCitations is the grounding floor checked before accepting a
	// generated broad answer.
	MinCitations int
	// SearchLimit caps raw full-text hits fetched before diversification.
	SearchLimit int
	// ListingLimit caps the diversified set in listing mode.
	ListingLimit int
	// BroadLimit caps the diversified set in broad mode.
	BroadLimit int
	// Suggestions are starter follow-up prompts offered on no-match results.
	Suggestions []string
}

// DefaultOptions returns the standard orchestrator parameters.
func DefaultOptions() Options {
	return Options{
		NoMatchMessage: DefaultNoMatchMessage,
		Tiers:          DefaultTiers,
		DefaultTopic:   "gita",
		MinCitations:   2,
		SearchLimit:    40,
		ListingLimit:   10,
		BroadLimit:     12,
		Suggestions: []string{
			"Explain 2:47",
			"Word meaning 2:47",
			"Which verses talk about devotion?",
			"What is sthita prajna?",
		},
	}
}

// Engine routes questions and produces answers.
type Engine interface {
	// Ask answers one question. Lookup misses, search exhaustion and
	// generation failures surface as well-formed results, not errors.
	Ask(ctx context.Context, req AskRequest) (AskResult, error)
}

type engine struct {
	verses storage.VerseStore
	canon  *CanonicalMatcher
	embed  EmbedSearcher // optional
	gen    Generator     // optional
	opts   Options
}

// NewEngine creates the answer orchestrator. embed and gen may be nil; the
// engine then runs retrieval-only with static fallbacks.
func NewEngine(verses storage.VerseStore, canonical storage.CanonicalStore, embed EmbedSearcher, gen Generator, opts Options) Engine {
	if opts.NoMatchMessage == "" {
		opts = DefaultOptions()
	}
	return &engine{
		verses: verses,
		canon:  NewCanonicalMatcher(canonical, opts.Tiers),
		embed:  embed,
		gen:    gen,
		opts:   opts,
	}
}

// Ask runs the classify → retrieve → diversify → generate → validate pipeline.
func (e *engine) Ask(ctx context.Context, req AskRequest) (AskResult, error) {
	q := strings.TrimSpace(req.Question)
	if q == "" {
		return AskResult{}, ErrEmptyQuestion
	}

	logger := contextutil.LoggerFromContext(ctx)
	cls := Classify(q)
	logger.InfoContext(ctx, "question classified", "mode", cls.Mode, "has_ref", cls.HasRef)

	topic := req.Topic
	if topic == "" {
		topic = e.opts.DefaultTopic
	}

	var result AskResult
	var err error
	switch cls.Mode {
	case ModeWordMeaning, ModeExplain:
		result, err = e.askDirect(ctx, q, cls)
	default:
		// Canonical fast-path outranks listing, definition and broad modes.
		if match := e.tryCanonical(ctx, q); match != nil {
			result = AskResult{
				Mode:      ModeCanonical,
				Answer:    match.Answer,
				Citations: CitationTokens(match.Citations, 8),
			}
			break
		}
		switch cls.Mode {
		case ModeListing:
			result, err = e.askListing(ctx, q, topic)
		case ModeDefinition:
			result = e.askDefinition(ctx, q)
		default:
			result, err = e.askBroad(ctx, q, topic)
		}
	}
	if err != nil {
		return AskResult{}, err
	}

	if result.Citations == nil {
		result.Citations = []string{}
	}
	if req.Debug {
		if result.Debug == nil {
			result.Debug = make(map[string]any)
		}
		result.Debug["classified_mode"] = string(cls.Mode)
		result.Debug["query"] = BuildQuery(q)
	}
	return result, nil
}

// tryCanonical returns a canonical match, or nil on miss or store failure.
func (e *engine) tryCanonical(ctx context.Context, q string) *CanonicalMatch {
	match, err := e.canon.Match(ctx, q)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "canonical lookup failed", "error", err)
		return nil
	}
	return match
}

// askDirect handles explicit chapter:verse questions.
func (e *engine) askDirect(ctx context.Context, q string, cls Classification) (AskResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	ref := cls.Ref

	row, err := e.verses.GetByRef(ctx, ref.Chapter, ref.Verse)
	if err == storage.ErrNotFound {
		return AskResult{
			Mode:   ModeError,
			Answer: fmt.Sprintf("Chapter %d, Verse %d does not exist.", ref.Chapter, ref.Verse),
		}, nil
	}
	if err != nil {
		return AskResult{}, fmt.Errorf("failed to fetch verse %d:%d: %w", ref.Chapter, ref.Verse, err)
	}

	if cls.Mode == ModeWordMeaning {
		answer := strings.TrimSpace(row.WordMeanings)
		if answer == "" {
			answer = e.opts.NoMatchMessage
		}
		return AskResult{
			Mode:      ModeWordMeaning,
			Answer:    answer,
			Citations: []string{ref.Token()},
		}, nil
	}

	// Explain: summarize the verse with its immediate neighbors as context.
	neighbors, err := e.verses.Neighbors(ctx, ref.Chapter, ref.Verse, 1)
	if err != nil {
		logger.WarnContext(ctx, "neighbor fetch failed", "error", err)
		neighbors = nil
	}

	var lines []string
	if t := strings.TrimSpace(row.Translation); t != "" {
		lines = append(lines, fmt.Sprintf("%d:%d %s", row.Chapter, row.Verse, t))
	}
	for _, n := range neighbors {
		if t := strings.TrimSpace(n.Translation); t != "" {
			lines = append(lines, fmt.Sprintf("%d:%d %s", n.Chapter, n.Verse, t))
		}
	}

	prompt := "Summarize the central teaching of this verse in 2-3 plain sentences, " +
		"no formatting, and include the citation " + ref.Token() + " somewhere in the text.\n\n" +
		strings.Join(lines, "\n")
	summary := e.generate(ctx, "You answer succinctly in plain text with no markup.", prompt)

	answer := summary
	if answer == "" {
		answer = strings.TrimSpace(row.Translation)
	}
	if answer == "" {
		answer = e.opts.NoMatchMessage
	}

	refs := mergeRefs([]VerseRef{ref}, ExtractCitations(answer))
	return AskResult{
		Mode:      ModeExplain,
		Answer:    answer,
		Citations: CitationTokens(refs, 8),
	}, nil
}

// askListing answers "which verses…" questions as a diversified list, one
// passage per line with a trailing citation token. No generation call.
func (e *engine) askListing(ctx context.Context, q, topic string) (AskResult, error) {
	passages := e.searchPassages(ctx, q, topic)
	if len(passages) == 0 {
		return e.noMatch(ModeListing), nil
	}

	opts := DefaultDiversifyOptions()
	opts.MaxTotal = e.opts.ListingLimit
	selected := Diversify(passages, opts)
	if len(selected) == 0 {
		return e.noMatch(ModeListing), nil
	}

	var lines []string
	var refs []VerseRef
	for _, p := range selected {
		label := strings.TrimSpace(p.Title)
		if label == "" {
			label = truncateAtWord(strings.TrimSpace(p.Snippet()), 100)
		}
		// The citation goes at the end of the line, exactly once.
		label = strings.TrimSpace(citationRe.ReplaceAllString(label, ""))
		if label == "" {
			lines = append(lines, p.Ref().Token())
		} else {
			lines = append(lines, label+" "+p.Ref().Token())
		}
		refs = append(refs, p.Ref())
	}

	return AskResult{
		Mode:      ModeListing,
		Answer:    strings.Join(lines, "\n"),
		Citations: CitationTokens(refs, 8),
	}, nil
}

// askDefinition answers short term questions with a single constrained
// generation call; no retrieval context is assembled.
func (e *engine) askDefinition(ctx context.Context, q string) AskResult {
	system := "You are a Bhagavad Gita tutor. Answer succinctly in plain text with no markup. " +
		"Use only the Bhagavad Gita; if the term is not from it, say so."
	user := "Define or explain: " + q + "\n" +
		"Give a crisp 2-4 sentence answer and cite 2-3 supporting verses inline as [chapter:verse]."

	out := NormalizeCitations(e.generate(ctx, system, user))
	if out == "" {
		return e.noMatch(ModeDefinition)
	}
	return AskResult{
		Mode:      ModeDefinition,
		Answer:    out,
		Citations: CitationTokens(ExtractCitations(out), 8),
	}
}

// askBroad attempts guarded direct generation, then falls back to grounded
// synthesis from diversified passages, with one validation-driven retry.
func (e *engine) askBroad(ctx context.Context, q, topic string) (AskResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	guarded := NormalizeCitations(e.generate(ctx,
		"You are a Bhagavad Gita tutor. Answer only questions about the Bhagavad Gita, "+
			"in plain text with no markup, weaving in verse citations like [chapter:verse]. "+
			"If the question is outside the Gita, reply with an empty message.",
		q,
	))
	if guarded != "" && len(ExtractCitations(guarded)) >= e.opts.MinCitations {
		return AskResult{
			Mode:      ModeBroad,
			Answer:    guarded,
			Citations: CitationTokens(ExtractCitations(guarded), 8),
		}, nil
	}

	passages := e.searchPassages(ctx, q, topic)
	opts := DefaultDiversifyOptions()
	opts.MaxTotal = e.opts.BroadLimit
	selected := Diversify(passages, opts)
	if len(selected) == 0 {
		if guarded != "" {
			return AskResult{
				Mode:      ModeBroad,
				Answer:    guarded,
				Citations: CitationTokens(ExtractCitations(guarded), 8),
			}, nil
		}
		return e.noMatch(ModeBroad), nil
	}

	block := BuildContext(selected, DefaultContextOptions())
	system := "You are a Bhagavad Gita tutor. Answer ONLY from the provided context. " +
		"Keep it concise, plain text, no markup. Weave in verse citations like [chapter:verse] when relevant."
	user := "Question: " + q + "\n\n" + block

	answer := NormalizeCitations(e.generate(ctx, system, user))
	refs := ExtractCitations(answer)

	contextChapters := DistinctChapters(passageRefs(selected))
	if !e.groundingOK(answer, refs, contextChapters) {
		logger.InfoContext(ctx, "broad answer under-grounded, regenerating",
			"citations", len(refs), "context_chapters", contextChapters)
		retry := NormalizeCitations(e.generate(ctx,
			system+" Cite at least "+fmt.Sprint(e.opts.MinCitations)+" verses, drawn from different chapters where the context allows.",
			user,
		))
		// Best-effort gate: keep the retry when it produced anything,
		// otherwise fall back to the first attempt.
		if retry != "" {
			answer = retry
			refs = ExtractCitations(retry)
		}
	}

	if answer == "" {
		if guarded != "" {
			answer = guarded
			refs = ExtractCitations(guarded)
		} else {
			return e.noMatch(ModeBroad), nil
		}
	}

	return AskResult{
		Mode:      ModeBroad,
		Answer:    answer,
		Citations: CitationTokens(refs, 8),
	}, nil
}

// groundingOK checks the minimum citation count and, when the context
// spanned multiple chapters, a minimum chapter spread.
func (e *engine) groundingOK(answer string, refs []VerseRef, contextChapters int) bool {
	if answer == "" {
		return false
	}
	if len(refs) < e.opts.MinCitations {
		return false
	}
	if contextChapters >= 2 && DistinctChapters(refs) < 2 {
		return false
	}
	return true
}

// searchPassages runs the sanitized full-text query and appends
// embedding-store hits, deduplicating by (chapter, verse). Full-text hits
// come first; either source failing is soft.
func (e *engine) searchPassages(ctx context.Context, q, topic string) []CandidatePassage {
	logger := contextutil.LoggerFromContext(ctx)

	var out []CandidatePassage
	seen := make(map[VerseRef]bool)

	query := BuildQuery(q)
	if query != "" {
		rows, err := e.verses.SearchFTS(ctx, query, e.opts.SearchLimit)
		if err != nil {
			logger.WarnContext(ctx, "full-text search failed", "error", err)
		}
		for _, row := range rows {
			p := passageFromRecord(row)
			if seen[p.Ref()] {
				continue
			}
			seen[p.Ref()] = true
			out = append(out, p)
		}
	}

	if e.embed != nil {
		refs, err := e.embed.Search(ctx, q, topic, 8)
		if err != nil {
			logger.WarnContext(ctx, "embedding search failed", "error", err)
			refs = nil
		}
		for _, ref := range refs {
			if seen[ref] {
				continue
			}
			row, err := e.verses.GetByRef(ctx, ref.Chapter, ref.Verse)
			if err != nil {
				continue
			}
			seen[ref] = true
			out = append(out, passageFromRecord(*row))
		}
	}

	return out
}

// generate calls the generator, treating nil clients, transport errors and
// blank output uniformly as "".
func (e *engine) generate(ctx context.Context, system, user string) string {
	if e.gen == nil {
		return ""
	}
	out, err := e.gen.Generate(ctx, system, user)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "generation failed", "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

func (e *engine) noMatch(mode Mode) AskResult {
	suggestions := e.opts.Suggestions
	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	return AskResult{
		Mode:        mode,
		Answer:      e.opts.NoMatchMessage,
		Citations:   []string{},
		Suggestions: suggestions,
	}
}

func passageFromRecord(v storage.VerseRecord) CandidatePassage {
	return CandidatePassage{
		Chapter:      v.Chapter,
		Verse:        v.Verse,
		Title:        v.Title,
		Translation:  v.Translation,
		Roman:        v.Roman,
		Colloquial:   v.Colloquial,
		WordMeanings: v.WordMeanings,
	}
}

func passageRefs(passages []CandidatePassage) []VerseRef {
	out := make([]VerseRef, 0, len(passages))
	for _, p := range passages {
		out = append(out, p.Ref())
	}
	return out
}

func mergeRefs(first, rest []VerseRef) []VerseRef {
	seen := make(map[VerseRef]bool, len(first)+len(rest))
	var out []VerseRef
	for _, r := range append(first, rest...) {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
