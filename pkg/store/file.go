package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
)

// FileStore is a file-based design store for CLI use.
// Designs are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based design store.
// If baseDir is empty, defaults to ~/.config/breadboard/designs/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		baseDir = filepath.Join(cfg, "breadboard", "designs")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create design dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) designPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Save(ctx context.Context, name string, data circuit.Data) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	d := Design{Name: name, Data: data, CreatedAt: now, UpdatedAt: now}
	if prev, err := s.read(name); err == nil {
		d.CreatedAt = prev.CreatedAt
	}

	encoded, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "marshal design")
	}
	if err := os.WriteFile(s.designPath(name), encoded, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write design file")
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*Design, error) {
	if err := errors.ValidateDesignName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (*Design, error) {
	data, err := os.ReadFile(s.designPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read design file")
	}

	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse design file")
	}
	return &d, nil
}

func (s *FileStore) List(ctx context.Context) ([]Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read design dir")
	}

	var designs []Design
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		d, err := s.read(name)
		if err != nil {
			// Skip unreadable files rather than failing the listing.
			continue
		}
		designs = append(designs, *d)
	}

	sort.Slice(designs, func(i, j int) bool { return designs[i].Name < designs[j].Name })
	return designs, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.designPath(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
		}
		return errors.Wrap(errors.ErrCodeStore, err, "remove design file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for design files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
