package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"
)

const suffixLayout = "2006-01-02"

var backupSuffix = regexp.MustCompile(`\.\d{4}-\d{2}-\d{2}$`)

// DailyRotatingFile is an io.WriteCloser that starts a new file at local
// midnight. The finished file is renamed to <path>.YYYY-MM-DD and only the
// newest maxBackups of those are kept.
type DailyRotatingFile struct {
	path       string
	maxBackups int
	now        func() time.Time

	mu         sync.Mutex
	file       *os.File
	rolloverAt time.Time
}

// OpenDailyRotatingFile opens path for appending, creating parent directories.
func OpenDailyRotatingFile(path string, maxBackups int) (*DailyRotatingFile, error) {
	return openDailyRotatingFile(path, maxBackups, time.Now)
}

func openDailyRotatingFile(path string, maxBackups int, now func() time.Time) (*DailyRotatingFile, error) {
	r := &DailyRotatingFile{
		path:       path,
		maxBackups: maxBackups,
		now:        now,
	}
	if err := r.openFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DailyRotatingFile) openFile() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	// An existing file written on an earlier day rolls over on the first write.
	start := r.now()
	if info.Size() > 0 && info.ModTime().Before(start) {
		start = info.ModTime()
	}

	r.file = f
	r.rolloverAt = nextMidnight(start)
	return nil
}

// Write implements io.Writer, rotating first when midnight has passed.
func (r *DailyRotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.now().Before(r.rolloverAt) {
		// A failed rotation keeps writing to whatever file is open.
		_ = r.rotate()
	}
	if r.file == nil {
		return 0, os.ErrClosed
	}
	return r.file.Write(p)
}

// Close implements io.Closer.
func (r *DailyRotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *DailyRotatingFile) rotate() error {
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return err
		}
		r.file = nil
	}

	day := r.rolloverAt.AddDate(0, 0, -1)
	target := fmt.Sprintf("%s.%s", r.path, day.Format(suffixLayout))
	_ = os.Remove(target)
	if err := os.Rename(r.path, target); err != nil && !os.IsNotExist(err) {
		return err
	}
	r.prune()

	if err := r.openFile(); err != nil {
		return err
	}
	r.rolloverAt = nextMidnight(r.now())
	return nil
}

func (r *DailyRotatingFile) prune() {
	matches, err := filepath.Glob(r.path + ".*")
	if err != nil {
		return
	}
	var backups []string
	for _, m := range matches {
		if backupSuffix.MatchString(m) {
			backups = append(backups, m)
		}
	}
	if len(backups) <= r.maxBackups {
		return
	}
	// Date suffixes sort chronologically.
	sort.Strings(backups)
	for _, old := range backups[:len(backups)-r.maxBackups] {
		_ = os.Remove(old)
	}
}

func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
