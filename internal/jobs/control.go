package jobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/indepthg/gita-qa/internal/qa"
)

// ControlRow describes one canonical question to (re)generate: the question
// text and the whitelist of verses its answers may draw on.
type ControlRow struct {
	QuestionText string
	MicroTopicID int64
	Style        string
	Whitelist    []qa.VerseRef
}

// Whitelist entry: "2:47" or a range "2:55-58". Separators between entries
// are semicolons, commas or whitespace.
var whitelistEntryRe = regexp.MustCompile(`^(\d{1,2})\s*[:.]\s*(\d{1,3})(?:\s*[-–]\s*(\d{1,3}))?$`)

// ParseControlSheet reads the canonical control CSV. Required columns:
// question_text and verse_whitelist; micro_topic_id and style are optional.
// Rows with no question text or no usable whitelist are skipped.
func ParseControlSheet(r io.Reader) ([]ControlRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty control sheet")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, rc := range []string{"question_text", "verse_whitelist"} {
		if _, ok := cols[rc]; !ok {
			return nil, fmt.Errorf("missing required column: %s", rc)
		}
	}

	var out []ControlRow
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		question := cell("question_text")
		if question == "" {
			continue
		}
		whitelist := ExpandWhitelist(cell("verse_whitelist"))
		if len(whitelist) == 0 {
			continue
		}

		microTopicID, _ := strconv.ParseInt(cell("micro_topic_id"), 10, 64)
		style := strings.ToLower(cell("style"))
		if style == "" {
			style = "doctrinal"
		}

		out = append(out, ControlRow{
			QuestionText: question,
			MicroTopicID: microTopicID,
			Style:        style,
			Whitelist:    whitelist,
		})
	}
	return out, nil
}

// ExpandWhitelist parses a whitelist expression like "2:55-58; 12:13" into
// unique, sorted verse references. Unparseable entries are dropped.
func ExpandWhitelist(s string) []qa.VerseRef {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	seen := make(map[qa.VerseRef]bool)
	for _, part := range splitWhitelist(s) {
		m := whitelistEntryRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		chapter, _ := strconv.Atoi(m[1])
		lo, _ := strconv.Atoi(m[2])
		hi := lo
		if m[3] != "" {
			hi, _ = strconv.Atoi(m[3])
			if hi < lo {
				lo, hi = hi, lo
			}
		}
		for v := lo; v <= hi; v++ {
			seen[qa.VerseRef{Chapter: chapter, Verse: v}] = true
		}
	}

	out := make([]qa.VerseRef, 0, len(seen))
	for ref := range seen {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chapter != out[j].Chapter {
			return out[i].Chapter < out[j].Chapter
		}
		return out[i].Verse < out[j].Verse
	})
	return out
}

func splitWhitelist(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
