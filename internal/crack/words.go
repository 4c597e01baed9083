package crack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadWords returns the non-blank lines of r, trimmed.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return words, nil
}

func ReadWordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open dictionary: %w", err)
	}
	defer f.Close()
	return ReadWords(f)
}

// Split divides words into at most n contiguous chunks of near-equal size.
// No chunk is empty.
func Split(words []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	if n > len(words) {
		n = len(words)
	}
	out := make([][]string, 0, n)
	for i := range n {
		lo := len(words) * i / n
		hi := len(words) * (i + 1) / n
		out = append(out, words[lo:hi])
	}
	return out
}
