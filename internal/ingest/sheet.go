package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indepthg/gita-qa/internal/storage"
)

// requiredColumns are the sheet columns every verse upload must carry.
// Commentary columns are optional.
var requiredColumns = []string{
	"rownum", "audio_id", "chapter", "verse", "sanskrit", "roman", "colloquial",
	"translation", "capsule_url", "word_meanings", "title",
}

// ParseSheet reads a verse CSV into records. Header matching is
// case-insensitive on trimmed names. Rows with a malformed chapter or verse
// number are skipped rather than failing the whole upload.
func ParseSheet(r io.Reader) ([]storage.VerseRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty sheet")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, rc := range requiredColumns {
		if _, ok := cols[rc]; !ok {
			return nil, fmt.Errorf("missing required column: %s", rc)
		}
	}

	var out []storage.VerseRecord
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

		chapter, chOK := coerceInt(cell("chapter"))
		verse, vOK := coerceInt(cell("verse"))
		if !chOK || !vOK {
			continue
		}

		rownum, _ := coerceInt(cell("rownum"))
		out = append(out, storage.VerseRecord{
			RowNum:       rownum,
			AudioID:      cell("audio_id"),
			Chapter:      chapter,
			Verse:        verse,
			Sanskrit:     cell("sanskrit"),
			Roman:        cell("roman"),
			Colloquial:   cell("colloquial"),
			Translation:  cell("translation"),
			Commentary1:  cell("commentary1"),
			Commentary2:  cell("commentary2"),
			Commentary3:  cell("commentary3"),
			CapsuleURL:   cell("capsule_url"),
			WordMeanings: cell("word_meanings"),
			Title:        cell("title"),
		})
	}
	return out, nil
}

func coerceInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
