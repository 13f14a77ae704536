package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestDailyRotatingFile_RotatesAtMidnight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.log")
	clock := &fakeClock{t: time.Date(2024, 3, 1, 23, 59, 0, 0, time.Local)}

	rf, err := openDailyRotatingFile(path, 3, clock.now)
	require.NoError(t, err)
	defer rf.Close()

	_, err = rf.Write([]byte("before midnight\n"))
	require.NoError(t, err)

	clock.t = time.Date(2024, 3, 2, 0, 0, 1, 0, time.Local)
	_, err = rf.Write([]byte("after midnight\n"))
	require.NoError(t, err)

	rotated, err := os.ReadFile(path + ".2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "before midnight\n", string(rotated))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after midnight\n", string(current))
}

func TestDailyRotatingFile_KeepsBackupCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.log")
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}

	rf, err := openDailyRotatingFile(path, 2, clock.now)
	require.NoError(t, err)
	defer rf.Close()

	for day := 1; day <= 5; day++ {
		clock.t = time.Date(2024, 3, day, 12, 0, 0, 0, time.Local)
		_, err := rf.Write([]byte("line\n"))
		require.NoError(t, err)
	}

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{path + ".2024-03-03", path + ".2024-03-04"}, matches)
}

func TestDailyRotatingFile_WriteAfterClose(t *testing.T) {
	rf, err := OpenDailyRotatingFile(filepath.Join(t.TempDir(), "books.log"), 3)
	require.NoError(t, err)
	require.NoError(t, rf.Close())

	_, err = rf.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
