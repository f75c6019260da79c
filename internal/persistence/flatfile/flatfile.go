// Package flatfile persists entity records as pipe-delimited lines, one file
// per entity kind, matching the layout older exports of the data used.
package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blip-cmd/xpense/internal/persistence"
	"github.com/blip-cmd/xpense/internal/textenc"
)

const delimiter = "|"

// Store reads and writes one "<kind>.txt" file per entity kind under dir.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(kind persistence.Kind) string {
	return filepath.Join(s.dir, string(kind)+".txt")
}

// Load reads the records of a kind in stored order. A missing file is an
// empty collection; blank and malformed lines are skipped with a warning
// rather than failing the whole load.
func (s *Store) Load(_ context.Context, kind persistence.Kind) ([]persistence.Record, error) {
	f, err := os.Open(s.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: opening %s: %v", persistence.ErrPersistence, kind, err)
	}
	defer f.Close()

	// Older exports are routinely Windows-1252 or UTF-16.
	r, err := textenc.DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", persistence.ErrPersistence, kind, err)
	}

	var records []persistence.Record

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		records = append(records, strings.Split(line, delimiter))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", persistence.ErrPersistence, kind, err)
	}

	return records, nil
}

// Save atomically replaces the file for a kind: records are written to a temp
// file which is renamed over the target.
func (s *Store) Save(_ context.Context, kind persistence.Kind, records []persistence.Record) error {
	tmp, err := os.CreateTemp(s.dir, string(kind)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", persistence.ErrPersistence, kind, err)
	}

	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			if rmErr := os.Remove(tmpName); rmErr != nil {
				slog.Warn("leaving stray temp file", "path", tmpName, "error", rmErr)
			}
		}
	}()

	w := bufio.NewWriter(tmp)

	for _, record := range records {
		if _, err := w.WriteString(strings.Join(record, delimiter) + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: writing %s: %v", persistence.ErrPersistence, kind, err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flushing %s: %v", persistence.ErrPersistence, kind, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", persistence.ErrPersistence, kind, err)
	}

	if err := os.Rename(tmpName, s.path(kind)); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", persistence.ErrPersistence, kind, err)
	}

	return nil
}
