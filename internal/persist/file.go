package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// fileEnvelope is the on-disk shape of one key.
type fileEnvelope struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// File is a Backend storing one file per key in a directory. It backs the
// securepassctl command line tool.
type File struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewFile creates the data directory if needed. A leading ~/ is expanded
// to the user's home directory.
func NewFile(dir string) (*File, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &File{dir: dir, now: time.Now}, nil
}

// Dir returns the resolved data directory.
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".blob")
}

// Get reads key from disk. Expired files are reported as absent.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", false, fmt.Errorf("parsing %s: %w", key, err)
	}
	if !env.ExpiresAt.IsZero() && !f.now().Before(env.ExpiresAt) {
		return "", false, nil
	}
	return env.Value, true, nil
}

// Set writes key atomically through a temp file and rename.
func (f *File) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	env := fileEnvelope{Value: value}
	if ttl > 0 {
		env.ExpiresAt = f.now().Add(ttl).UTC()
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Delete removes key from disk. Missing files are ignored.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
