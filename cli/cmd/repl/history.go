package repl

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrOutOfBounds is returned by GetLine for an index outside the history.
var ErrOutOfBounds = errors.New("history index out of bounds")

const historyFileMode = 0o600

// History is a persistent, line-oriented command history. Entries are
// kept in memory and appended to the backing file as they are written.
// Safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []string
}

// NewHistory returns a history backed by the file at path. Call Load to
// read any existing entries before use.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads the backing file into memory. A missing file is not an
// error; the history simply starts empty.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Write records an entry and appends it to the backing file, returning
// the entry's index. Writing the same entry as the most recent one is a
// no-op, so repeated commands do not pile up.
func (h *History) Write(entry string) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, ErrOutOfBounds
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return n - 1, nil
	}

	h.entries = append(h.entries, entry)

	file, err := os.OpenFile(h.path,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, historyFileMode)
	if err != nil {
		return len(h.entries) - 1, err
	}
	defer file.Close()

	if _, err := file.WriteString(entry + "\n"); err != nil {
		return len(h.entries) - 1, err
	}

	return len(h.entries) - 1, nil
}

// GetLine returns the entry at index i, oldest first.
func (h *History) GetLine(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}
