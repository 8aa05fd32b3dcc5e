package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps the companion record as a JSON file. Saves write a
// temporary file in the same directory, fsync it, rename it over the
// record and fsync the directory, so a crash leaves either the old record
// or the new one.
type FileStore struct {
	path    string
	species Species
	now     func() time.Time

	// rename is os.Rename; tests swap it to simulate a crash before the
	// record is replaced.
	rename func(oldpath, newpath string) error
}

// StoreOption configures a FileStore.
type StoreOption func(*FileStore)

// WithSpecies sets the species used when a fresh companion is created.
func WithSpecies(s Species) StoreOption {
	return func(f *FileStore) { f.species = s }
}

// WithStoreClock replaces time.Now for fresh records.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(f *FileStore) { f.now = now }
}

// NewFileStore returns a store for the record at path.
func NewFileStore(path string, opts ...StoreOption) *FileStore {
	f := &FileStore{path: path, species: Blob, now: time.Now, rename: os.Rename}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the record location.
func (f *FileStore) Path() string { return f.path }

// Load reads the record. It always returns a usable companion: when the
// record is missing or unreadable a fresh one is returned together with
// the error that explains why. Unknown fields are ignored and missing
// fields keep their defaults.
func (f *FileStore) Load() (Companion, error) {
	fresh := New(f.species, f.now())

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fresh, fmt.Errorf("%w: %s", ErrNotFound, f.path)
		}
		return fresh, fmt.Errorf("read companion: %w", err)
	}

	c := fresh.Clone()
	c.Skills = nil
	if err := json.Unmarshal(data, &c); err != nil {
		f.quarantine()
		return fresh, fmt.Errorf("decode companion %s: %w", f.path, err)
	}
	if c.Skills == nil {
		c.Skills = fresh.Skills
	}
	c.repair(f.now())
	return c, nil
}

// quarantine moves an unreadable record aside so the next save does not
// destroy it.
func (f *FileStore) quarantine() {
	_ = os.Rename(f.path, f.path+".corrupt")
}

// Save writes c atomically.
func (f *FileStore) Save(c Companion) error {
	c.Version = RecordVersion
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal companion: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create companion dir %s: %w", dir, err)
	}
	return f.atomicWrite(data)
}

func (f *FileStore) atomicWrite(data []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp companion file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp companion file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp companion file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp companion file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp companion file: %w", err)
	}

	if err := f.rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace companion record: %w", err)
	}
	success = true

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
