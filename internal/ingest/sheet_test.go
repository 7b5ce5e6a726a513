package ingest

import (
	"strings"
	"testing"
)

const sheetHeader = "rownum,audio_id,chapter,verse,sanskrit,roman,colloquial,translation,capsule_url,word_meanings,title"

func TestParseSheet(t *testing.T) {
	csvData := sheetHeader + ",commentary1\n" +
		`1,a-2-47,2,47,sanskrit text,karmany evadhikaras te,plain telling,"You have a right to action alone.",http://audio/247,"karmani — in duties",Karma yoga,first commentary` + "\n" +
		`2,a-2-48,2,48,,,,Perform your duty established in yoga.,,,Equanimity,` + "\n"

	rows, err := ParseSheet(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseSheet() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Chapter != 2 || first.Verse != 47 {
		t.Errorf("ref = %d:%d, want 2:47", first.Chapter, first.Verse)
	}
	if first.RowNum != 1 || first.AudioID != "a-2-47" {
		t.Errorf("rownum/audio = %d/%s", first.RowNum, first.AudioID)
	}
	if first.Translation != "You have a right to action alone." {
		t.Errorf("Translation = %q", first.Translation)
	}
	if first.Commentary1 != "first commentary" {
		t.Errorf("Commentary1 = %q, want optional column captured", first.Commentary1)
	}
	if rows[1].Commentary1 != "" {
		t.Errorf("Commentary1 = %q, want empty", rows[1].Commentary1)
	}
}

func TestParseSheet_HeaderCaseInsensitive(t *testing.T) {
	csvData := "RowNum, Audio_ID ,CHAPTER,Verse,Sanskrit,Roman,Colloquial,Translation,Capsule_URL,Word_Meanings,Title\n" +
		"1,x,2,47,,,,text,,,t\n"

	rows, err := ParseSheet(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseSheet() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Chapter != 2 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseSheet_MissingColumn(t *testing.T) {
	csvData := "rownum,audio_id,chapter,verse\n1,x,2,47\n"

	_, err := ParseSheet(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("ParseSheet() expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required column") {
		t.Errorf("error = %v, want missing column message", err)
	}
}

func TestParseSheet_MalformedRowsSkipped(t *testing.T) {
	csvData := sheetHeader + "\n" +
		"1,x,2,47,,,,good row,,,t\n" +
		"2,x,two,47,,,,bad chapter,,,t\n" +
		"3,x,2,,,,,bad verse,,,t\n"

	rows, err := ParseSheet(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseSheet() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (malformed rows skipped)", len(rows))
	}
	if rows[0].Translation != "good row" {
		t.Errorf("Translation = %q", rows[0].Translation)
	}
}

func TestParseSheet_Empty(t *testing.T) {
	if _, err := ParseSheet(strings.NewReader("")); err == nil {
		t.Error("ParseSheet() expected error for empty input")
	}
}
