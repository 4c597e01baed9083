package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrUserNotFound = errors.New("username not in credential file")

// LoadHash returns the hash field for username from a shadow-style file
// ("user:hash[:...]" per line).
func LoadHash(path, username string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open credential file: %w", err)
	}
	defer f.Close()
	return FindHash(f, username)
}

// FindHash scans r for the entry of username.
func FindHash(r io.Reader, username string) (string, error) {
	prefix := username + ":"
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 2 || parts[1] == "" {
			return "", ErrUnsupportedAlg
		}
		return parts[1], nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read credential file: %w", err)
	}
	return "", ErrUserNotFound
}
