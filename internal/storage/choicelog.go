package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	activeLogName     = "selections.csv"
	archivePrefix     = "selection_"
	archiveTimeLayout = "2006_01_02_150405"
)

var csvHeader = []string{"selected", "other"}

// CSVChoiceLog implements domain.ChoiceLog on a directory holding one active
// log file plus timestamped archives.
//
// A single mutex covers Append and ArchiveAndReset, so a record can never be
// appended between the archive copy and the truncation of the active log.
type CSVChoiceLog struct {
	mu    sync.Mutex
	dir   string
	clock clockwork.Clock
}

// NewCSVChoiceLog opens the log in dir, creating a header-only active log if
// none exists yet.
func NewCSVChoiceLog(dir string, clock clockwork.Clock) (*CSVChoiceLog, error) {
	l := &CSVChoiceLog{dir: dir, clock: clock}
	if err := l.ensureActive(); err != nil {
		return nil, err
	}
	return l, nil
}

// ActivePath returns the path of the active log file.
func (l *CSVChoiceLog) ActivePath() string {
	return filepath.Join(l.dir, activeLogName)
}

func (l *CSVChoiceLog) ensureActive() error {
	_, err := os.Stat(l.ActivePath())
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat active log: %w", err)
	}
	return writeHeaderOnly(l.ActivePath())
}

func writeHeaderOnly(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create active log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write log header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write log header: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync active log: %w", err)
	}
	return f.Close()
}

// Append writes one record and fsyncs before returning. Storage errors are
// returned as-is; there are no retries.
func (l *CSVChoiceLog) Append(ctx context.Context, rec domain.ChoiceRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.ActivePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open active log: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{rec.Selected, rec.Other}); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync active log: %w", err)
	}
	return nil
}

// ArchiveAndReset copies the full active log (header included) into a new
// archive named by the current local time, then truncates the active log back
// to header-only. Archiving a header-only log is legal and produces a
// header-only archive.
func (l *CSVChoiceLog) ArchiveAndReset(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	contents, err := os.ReadFile(l.ActivePath())
	if err != nil {
		return "", fmt.Errorf("read active log: %w", err)
	}

	path := l.freeArchivePath()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}

	if err := writeHeaderOnly(l.ActivePath()); err != nil {
		return "", fmt.Errorf("reset active log: %w", err)
	}
	return path, nil
}

// freeArchivePath picks the archive name for the current timestamp. Two
// archives within the same second get a numeric suffix so identifiers stay
// distinct.
func (l *CSVChoiceLog) freeArchivePath() string {
	base := archivePrefix + l.clock.Now().Format(archiveTimeLayout)
	path := filepath.Join(l.dir, base+".csv")
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(l.dir, fmt.Sprintf("%s_%d.csv", base, n))
	}
}

// LatestArchive returns the most recent archive path, or domain.ErrNoArchive
// when no archive exists. The timestamp layout sorts lexicographically, so
// the newest name is the greatest one.
func (l *CSVChoiceLog) LatestArchive() (string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return "", fmt.Errorf("list archives: %w", err)
	}

	var latest string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", domain.ErrNoArchive
	}
	return filepath.Join(l.dir, latest), nil
}

// Records reads back every record in the active log, header excluded.
func (l *CSVChoiceLog) Records() ([]domain.ChoiceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.ActivePath())
	if err != nil {
		return nil, fmt.Errorf("open active log: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read active log: %w", err)
	}

	var records []domain.ChoiceRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) != 2 {
			return nil, fmt.Errorf("malformed record on line %d", i+1)
		}
		records = append(records, domain.ChoiceRecord{Selected: row[0], Other: row[1]})
	}
	return records, nil
}
