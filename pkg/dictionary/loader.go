/*
Package dictionary reads the line-oriented weighted word list that seeds the
engine's trie. Each line is

	<weight> <word text up to newline>

weights must be strictly positive; a trailing carriage return (as produced
by a Windows-authored file) is stripped. The format and its failure modes
are a direct port of the reference implementation's TTrie::load.
*/
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inetis-oss/autocomplete/pkg/trie"
)

// Load reads path and inserts every entry into t, which must not yet be
// finalized. It returns an error for a missing file, a malformed line, a
// non-positive weight, or a file containing no entries at all.
func Load(path string, t *trie.Trie) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	defer f.Close()

	n, err := loadFrom(f, t)
	if err != nil {
		return fmt.Errorf("dictionary: %s: %w", path, err)
	}
	if n == 0 {
		return fmt.Errorf("dictionary: %s: empty dictionary", path)
	}
	return nil
}

// loadFrom reads weight/word pairs from r into t and returns the number of
// entries read.
func loadFrom(r io.Reader, t *trie.Trie) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}

		weightStr, word, ok := strings.Cut(text, " ")
		if !ok || word == "" {
			return n, fmt.Errorf("line %d: malformed entry %q", line, text)
		}

		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return n, fmt.Errorf("line %d: invalid weight %q: %w", line, weightStr, err)
		}
		if weight <= 0 {
			return n, fmt.Errorf("line %d: weight must be positive, got %v", line, weight)
		}

		if err := t.Add(word, weight); err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read error: %w", err)
	}
	return n, nil
}
