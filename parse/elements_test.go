package parse

import (
	"testing"

	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

func TestDetectHeadersATX(t *testing.T) {
	text := "# Title\n\nsome text\n\n## Sub\n\nmore"
	lines := textnorm.Lines(text)
	headers := DetectHeaders(lines, nil)

	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d: %+v", len(headers), headers)
	}
	if headers[0].Level != 1 || headers[0].Text != "Title" {
		t.Errorf("got %+v", headers[0])
	}
	if headers[1].Level != 2 || headers[1].Text != "Sub" {
		t.Errorf("got %+v", headers[1])
	}
}

func TestDetectHeadersSetext(t *testing.T) {
	text := "Title\n=====\n\ntext\n\nSub\n---\n"
	lines := textnorm.Lines(text)
	headers := DetectHeaders(lines, nil)

	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d: %+v", len(headers), headers)
	}
	if headers[0].Level != 1 || headers[1].Level != 2 {
		t.Errorf("got levels %d, %d", headers[0].Level, headers[1].Level)
	}
}

// Headers inside fenced code blocks are not headers (spec §4.2).
func TestDetectHeadersSkipsFencedContent(t *testing.T) {
	text := "# Real\n\n```\n# Not a header\n```\n"
	lines := textnorm.Lines(text)
	fences, _ := ScanFences(lines)
	headers := DetectHeaders(lines, fences)

	if len(headers) != 1 {
		t.Fatalf("expected 1 header, got %d: %+v", len(headers), headers)
	}
	if headers[0].Text != "Real" {
		t.Errorf("got %+v", headers[0])
	}
}

func TestDetectTables(t *testing.T) {
	text := "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n"
	lines := textnorm.Lines(text)
	tables := DetectTables(lines, nil)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tb := tables[0]
	if tb.ColumnCount != 2 {
		t.Errorf("ColumnCount = %d, want 2", tb.ColumnCount)
	}
	if tb.DataRowCount != 2 {
		t.Errorf("DataRowCount = %d, want 2", tb.DataRowCount)
	}
}

func TestDetectTablesAlignment(t *testing.T) {
	text := "| A | B | C |\n|:---|:---:|---:|\n| 1 | 2 | 3 |\n"
	lines := textnorm.Lines(text)
	tables := DetectTables(lines, nil)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	want := []string{"left", "center", "right"}
	for i, a := range tables[0].Alignments {
		if string(a) != want[i] {
			t.Errorf("alignment[%d] = %s, want %s", i, a, want[i])
		}
	}
}

// A pipe-row table without a following data row is not a table (spec §4.2).
func TestDetectTablesRejectsHeaderOnly(t *testing.T) {
	text := "| A | B |\n|---|---|\n"
	lines := textnorm.Lines(text)
	tables := DetectTables(lines, nil)
	if len(tables) != 0 {
		t.Fatalf("expected 0 tables, got %d", len(tables))
	}
}

func TestDetectListsUnordered(t *testing.T) {
	text := "- one\n- two\n- three\n"
	lines := textnorm.Lines(text)
	blocks, _ := DetectLists(lines, nil)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 list, got %d", len(blocks))
	}
	if blocks[0].ListType != "unordered" {
		t.Errorf("ListType = %s, want unordered", blocks[0].ListType)
	}
	if blocks[0].ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", blocks[0].ItemCount)
	}
}

func TestDetectListsNestedDepth(t *testing.T) {
	text := "- one\n  - nested\n    - double nested\n"
	lines := textnorm.Lines(text)
	blocks, _ := DetectLists(lines, nil)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 list, got %d", len(blocks))
	}
	if blocks[0].MaxNestingDepth < 2 {
		t.Errorf("MaxNestingDepth = %d, want >= 2", blocks[0].MaxNestingDepth)
	}
}

func TestDetectListsTask(t *testing.T) {
	text := "- [ ] todo\n- [x] done\n"
	lines := textnorm.Lines(text)
	blocks, _ := DetectLists(lines, nil)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 list, got %d", len(blocks))
	}
	if blocks[0].ListType != "task" {
		t.Errorf("ListType = %s, want task", blocks[0].ListType)
	}
}

func TestDetectURLRuns(t *testing.T) {
	text := "https://a.com\nhttps://b.com\nhttps://c.com\nnot a url\n"
	lines := textnorm.Lines(text)
	runs := DetectURLRuns(lines)

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].StartLine != 1 || runs[0].EndLine != 3 {
		t.Errorf("got %+v", runs[0])
	}
}

func TestDetectURLRunsRequiresThree(t *testing.T) {
	text := "https://a.com\nhttps://b.com\nno url here\n"
	lines := textnorm.Lines(text)
	runs := DetectURLRuns(lines)
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs (only 2 consecutive), got %d", len(runs))
	}
}
