package qa

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Boolean operators recognized by the full-text engine.
var operatorRe = regexp.MustCompile(`(?i)\b(and|or|not|near)\b`)

// Punctuation allowed through sanitization alongside letters, digits and
// whitespace. Covers FTS operators, phrase quotes and verse references.
const allowedPunct = `:"'-()/.*+|`

// Stop words dropped by the keyword fallback: articles, auxiliaries and
// corpus-generic terms that match everything.
var queryStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "do": true,
	"does": true, "did": true, "have": true, "has": true, "had": true,
	"what": true, "which": true, "who": true, "whom": true, "how": true,
	"why": true, "when": true, "where": true, "of": true, "in": true,
	"on": true, "to": true, "for": true, "about": true, "with": true,
	"that": true, "this": true, "these": true, "those": true, "there": true,
	"verse": true, "verses": true, "chapter": true, "chapters": true,
	"mention": true, "mentions": true, "mentioned": true, "talk": true,
	"talks": true, "say": true, "says": true, "said": true, "tell": true,
	"tells": true, "list": true, "show": true, "gita": true,
}

// themeSynonyms broadens recall for a small set of recognized English theme
// words, including transliterated equivalents.
var themeSynonyms = map[string][]string{
	"anger":      {"krodha", "wrath"},
	"desire":     {"kama", "craving"},
	"devotion":   {"bhakti", "bhakta", "devotee"},
	"detachment": {"vairagya", "renunciation", "nonattachment"},
	"surrender":  {"saranagati", "prapatti", "refuge"},
	"meditation": {"dhyana", "dhyan"},
	"duty":       {"dharma", "svadharma"},
	"knowledge":  {"jnana", "wisdom"},
	"equanimity": {"samatva", "samatvam"},
	"food":       {"sattvic", "rajasic", "tamasic"},
	"death":      {"mrityu", "rebirth"},
	"mind":       {"manas", "chanchala"},
}

// Sanitize normalizes raw user text into a safe full-text search expression.
// Returns "" when nothing usable remains; callers must treat that as "no
// searchable query" and skip the search step.
//
// Sanitizing an already-sanitized expression returns it unchanged.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Case-normalize boolean operators so the engine recognizes them.
	s = operatorRe.ReplaceAllStringFunc(s, strings.ToUpper)

	// Allow-list filter. Letters from all scripts pass, to preserve
	// transliteration diacritics.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(allowedPunct, r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	s = strings.Join(strings.Fields(b.String()), " ")
	if s == "" {
		return ""
	}

	// Expressions that already carry an operator or a quoted phrase pass
	// through; anything else gets the any-keyword treatment.
	if hasSearchStructure(s) {
		return s
	}
	keywords := keywordTokens(s)
	if len(keywords) == 0 {
		return s
	}
	return strings.Join(keywords, " OR ")
}

// BuildQuery expands theme words in the raw question, then sanitizes.
func BuildQuery(raw string) string {
	return Sanitize(ExpandThemes(raw))
}

// ExpandThemes appends OR-joined synonyms for any recognized theme word
// present in the raw question, broadening recall before sanitization.
// Themes are visited in sorted order so the expanded query is stable.
func ExpandThemes(raw string) string {
	lower := strings.ToLower(raw)

	themes := make([]string, 0, len(themeSynonyms))
	for theme := range themeSynonyms {
		themes = append(themes, theme)
	}
	sort.Strings(themes)

	expanded := raw
	for _, theme := range themes {
		if !containsWord(lower, theme) {
			continue
		}
		for _, syn := range themeSynonyms[theme] {
			expanded += " OR " + syn
		}
	}
	return expanded
}

func hasSearchStructure(s string) bool {
	if strings.Contains(s, `"`) {
		return true
	}
	for _, tok := range strings.Fields(s) {
		switch tok {
		case "AND", "OR", "NOT", "NEAR":
			return true
		}
	}
	return false
}

// keywordTokens tokenizes on non-word boundaries, drops stop words and short
// tokens, and lowercases the survivors.
func keywordTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, f := range fields {
		tok := strings.ToLower(f)
		if len([]rune(tok)) < 4 || queryStopwords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
