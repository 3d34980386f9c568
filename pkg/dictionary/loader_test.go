package dictionary

import (
	"os"
	"strings"
	"testing"

	"github.com/inetis-oss/autocomplete/pkg/trie"
)

func TestLoadFromParsesWeightAndWord(t *testing.T) {
	tr := trie.New()
	n, err := loadFrom(strings.NewReader("100 houston\n50 dallas\n"), tr)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("loadFrom returned %d entries, want 2", n)
	}
	if err := tr.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestLoadFromStripsTrailingCarriageReturn(t *testing.T) {
	tr := trie.New()
	n, err := loadFrom(strings.NewReader("100 houston\r\n"), tr)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if n != 1 {
		t.Fatalf("loadFrom returned %d entries, want 1", n)
	}
}

func TestLoadFromSkipsBlankLines(t *testing.T) {
	tr := trie.New()
	n, err := loadFrom(strings.NewReader("100 houston\n\n\n50 dallas\n"), tr)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("loadFrom returned %d entries, want 2", n)
	}
}

func TestLoadFromRejectsNonPositiveWeight(t *testing.T) {
	tr := trie.New()
	if _, err := loadFrom(strings.NewReader("0 houston\n"), tr); err == nil {
		t.Fatal("loadFrom with zero weight, want error")
	}

	tr = trie.New()
	if _, err := loadFrom(strings.NewReader("-5 houston\n"), tr); err == nil {
		t.Fatal("loadFrom with negative weight, want error")
	}
}

func TestLoadFromRejectsMalformedLine(t *testing.T) {
	tr := trie.New()
	if _, err := loadFrom(strings.NewReader("notanumber\n"), tr); err == nil {
		t.Fatal("loadFrom with a wordless line, want error")
	}
}

func TestLoadFromRejectsUnparsableWeight(t *testing.T) {
	tr := trie.New()
	if _, err := loadFrom(strings.NewReader("abc houston\n"), tr); err == nil {
		t.Fatal("loadFrom with a non-numeric weight, want error")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	tr := trie.New()
	if err := Load("/nonexistent/path/to/dictionary.txt", tr); err == nil {
		t.Fatal("Load of a missing file, want error")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/empty.txt"
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tr := trie.New()
	if err := Load(path, tr); err == nil {
		t.Fatal("Load of an empty file, want error")
	}
}

func TestLoadPopulatesAndFinalizesTrie(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/dictionary.txt"
	content := "8000 new york\n390 new orleans\n300 newark\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tr := trie.New()
	if err := Load(path, tr); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := tr.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}
