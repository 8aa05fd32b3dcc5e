package companion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "nested", "tui.json"),
		WithStoreClock(func() time.Time { return t0 }))
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := newTestStore(t)

	c := at(7, 123, 4)
	c.Skills = append(c.Skills, "news_digest")
	c.Outfit = "hacker"
	c.LastVisit = t0.Add(-time.Hour)
	c.Visits = 9
	c.ActiveSeconds = 3600

	require.NoError(t, fs.Save(c))
	got, err := fs.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreMissingRecord(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "tui.json"), WithSpecies(Fox))

	c, err := fs.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Fox, c.Species)
	assert.Equal(t, 1, c.Level)
	assert.True(t, c.HasSkill("greeting"))
}

func TestFileStoreCorruptRecordIsQuarantined(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(fs.Path()), 0o755))
	require.NoError(t, os.WriteFile(fs.Path(), []byte(`{"level": "seven"`), 0o600))

	c, err := fs.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, c.Level)

	_, statErr := os.Stat(fs.Path() + ".corrupt")
	assert.NoError(t, statErr, "corrupt record kept aside")
	_, statErr = os.Stat(fs.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStoreToleratesUnknownAndMissingFields(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(fs.Path()), 0o755))
	record := `{
  "name": "Pip",
  "level": 12,
  "xp": 40,
  "favourite_color": "teal",
  "unlocked_skills": ["greeting", "teleport", "speed_read"],
  "equipped_outfit": "legendary"
}`
	require.NoError(t, os.WriteFile(fs.Path(), []byte(record), 0o600))

	c, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "Pip", c.Name)
	assert.Equal(t, 12, c.Level)
	assert.Equal(t, 40, c.XP)
	assert.Equal(t, Blob, c.Species, "missing species keeps the default")
	assert.Equal(t, []string{"greeting", "speed_read"}, c.Skills)
	assert.Equal(t, DefaultOutfit, c.Outfit, "locked outfit reset")
	assert.Equal(t, RecordVersion, c.Version)
	assert.Equal(t, t0, c.CreatedAt)
}

func TestFileStoreRepairsNegativeCounters(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(fs.Path()), 0o755))
	require.NoError(t, os.WriteFile(fs.Path(),
		[]byte(`{"level": 0, "xp": -5, "skill_points": -1, "unlocked_skills": []}`), 0o600))

	c, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Level)
	assert.Zero(t, c.XP)
	assert.Zero(t, c.SkillPoints)
	assert.Empty(t, c.Skills, "an explicit empty list is respected")
}

func TestFileStoreCrashBeforeReplaceKeepsOldRecord(t *testing.T) {
	fs := newTestStore(t)

	old := at(3, 10, 1)
	require.NoError(t, fs.Save(old))

	fs.rename = func(string, string) error { return errors.New("power lost") }

	next := old.Clone()
	next.Level = 4
	err := fs.Save(next)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power lost")

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level, "old record intact")

	entries, err := os.ReadDir(filepath.Dir(fs.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file %s left behind", e.Name())
	}
}

func TestFileStoreIgnoresStrayTempFile(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, fs.Save(at(5, 0, 0)))

	stray := filepath.Join(filepath.Dir(fs.Path()), ".tui.json.tmp-12345")
	require.NoError(t, os.WriteFile(stray, []byte(`{"level": 99`), 0o600))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, got.Level)

	require.NoError(t, fs.Save(at(6, 0, 0)))
	got, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, got.Level)
}

func TestEngineWithFileStorePersistsEveryEvent(t *testing.T) {
	fs := newTestStore(t)
	e := NewEngine(at(1, 95, 0), fs, WithClock(func() time.Time { return t0 }))

	e.Credit(10)
	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 5, got.XP)

	e.VisitStarted(t0)
	got, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Visits)
	assert.Equal(t, t0, got.LastVisit)
}
