package qa

import (
	"regexp"
	"strconv"
	"strings"
)

// Chapter:verse reference: chapter 1-18 with ':', '.' or ' ' separator and a
// 1-3 digit verse number.
var cvRe = regexp.MustCompile(`\b(1[0-8]|[1-9])[:. ](\d{1,3})\b`)

var (
	listingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwhich\s+verses?\b`),
		regexp.MustCompile(`(?i)\bverses?\s+(that|on|about)\b`),
	}
	listVerbRe  = regexp.MustCompile(`(?i)\b(list|show)\b`)
	verseWordRe = regexp.MustCompile(`(?i)\bverses\b`)

	definitionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwhat\s+is\b`),
		regexp.MustCompile(`(?i)\bwhat\s+are\b`),
		regexp.MustCompile(`(?i)\bdefine\b`),
		regexp.MustCompile(`(?i)\bwho\s+is\b`),
		regexp.MustCompile(`(?i)\bmeaning\s+of\b`),
	}
)

// Classification is the routing decision for one question.
type Classification struct {
	Mode   Mode
	Ref    VerseRef // Set for direct-lookup modes
	HasRef bool
}

// classifierRule pairs a predicate with the mode it selects. Rules are
// evaluated in a fixed priority order; the first match wins.
type classifierRule struct {
	mode  Mode
	match func(q string) bool
}

var broadRules = []classifierRule{
	{ModeListing, isListingQuery},
	{ModeDefinition, isDefinitionQuery},
}

// Classify assigns exactly one mode to the question.
//
// A chapter:verse pattern anywhere in the text routes to direct lookup even
// inside a listing-style sentence. The canonical fast-path sits between
// direct lookup and the remaining rules and is applied by the orchestrator,
// since it needs the store.
func Classify(question string) Classification {
	q := strings.TrimSpace(question)

	if ref, ok := ExtractRef(q); ok {
		mode := ModeExplain
		if isWordMeaningQuery(q) {
			mode = ModeWordMeaning
		}
		return Classification{Mode: mode, Ref: ref, HasRef: true}
	}

	for _, rule := range broadRules {
		if rule.match(q) {
			return Classification{Mode: rule.mode}
		}
	}
	return Classification{Mode: ModeBroad}
}

// ExtractRef extracts the first chapter:verse pair from the text.
func ExtractRef(text string) (VerseRef, bool) {
	m := cvRe.FindStringSubmatch(text)
	if m == nil {
		return VerseRef{}, false
	}
	chapter, err := strconv.Atoi(m[1])
	if err != nil {
		return VerseRef{}, false
	}
	verse, err := strconv.Atoi(m[2])
	if err != nil {
		return VerseRef{}, false
	}
	return VerseRef{Chapter: chapter, Verse: verse}, true
}

func isWordMeaningQuery(q string) bool {
	ql := strings.ToLower(q)
	if strings.Contains(ql, "word meaning") {
		return true
	}
	return strings.Contains(ql, "meaning") && cvRe.MatchString(ql)
}

func isListingQuery(q string) bool {
	for _, re := range listingRes {
		if re.MatchString(q) {
			return true
		}
	}
	return listVerbRe.MatchString(q) && verseWordRe.MatchString(q)
}

func isDefinitionQuery(q string) bool {
	for _, re := range definitionRes {
		if re.MatchString(q) {
			return true
		}
	}
	// Very short questions read like term lookups.
	return len(strings.Fields(q)) <= 3
}
