package evaluator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadEntriesSkipsBlankAndComments(t *testing.T) {
	input := "# deadlines\n2d 4h\n\n   \n  # indented comment\n  30m \r\n5\n"

	entries, err := ReadEntries("inline", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d (%+v)", len(entries), entries)
	}

	wantLines := []int{2, 6, 7}
	wantInputs := []string{"2d 4h", "  30m ", "5"}
	for i, entry := range entries {
		if entry.Source != "inline" {
			t.Fatalf("expected source inline, got %q", entry.Source)
		}
		if entry.Line != wantLines[i] {
			t.Fatalf("entry %d: expected line %d, got %d", i, wantLines[i], entry.Line)
		}
		if entry.Input != wantInputs[i] {
			t.Fatalf("entry %d: expected input %q, got %q", i, wantInputs[i], entry.Input)
		}
	}
}

func TestReadSourcesFilesAndStdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.txt")
	if err := os.WriteFile(path, []byte("1h\n2h\n"), 0o644); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	entries, err := ReadSources([]string{path, "-"}, strings.NewReader("3h\n"))
	if err != nil {
		t.Fatalf("ReadSources failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Source != path || entries[2].Source != StdinSource {
		t.Fatalf("unexpected sources: %+v", entries)
	}
}

func TestReadSourcesDefaultsToStdin(t *testing.T) {
	entries, err := ReadSources(nil, strings.NewReader("45s\n"))
	if err != nil {
		t.Fatalf("ReadSources failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Source != StdinSource {
		t.Fatalf("expected one stdin entry, got %+v", entries)
	}
}

func TestReadSourcesMissingFile(t *testing.T) {
	_, err := ReadSources([]string{filepath.Join(t.TempDir(), "missing.txt")}, nil)
	if err == nil || !strings.Contains(err.Error(), "no such file") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}
