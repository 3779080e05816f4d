package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/cog/pkg/tokenize"
)

const fileExt = ".yaml"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// document is the on-disk form of a saved command line.
type document struct {
	Name    string    `yaml:"name"`
	Command string    `yaml:"command"`
	SavedAt time.Time `yaml:"saved_at"`
	Schema  string    `yaml:"schema,omitempty"`
}

// Config configures a Store.
type Config struct {
	Dir       string        // directory holding one YAML file per name; required
	CacheSize int           // max cached entries; default 128
	CacheTTL  time.Duration // cache entry lifetime; default 5m
	Log       *logrus.Logger
}

// Store reads and writes saved command lines under a directory.
type Store struct {
	dir    string
	log    *logrus.Logger
	cache  *lru.LRU[string, []string]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewStore creates a store for cfg.Dir, creating the directory if needed.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil || cfg.Dir == "" {
		return nil, fmt.Errorf("store: directory required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}

	return &Store{
		dir:   cfg.Dir,
		log:   log,
		cache: lru.NewLRU[string, []string](size, nil, ttl),
	}, nil
}

// Save persists tokens under name.
func (s *Store) Save(name string, tokens []string) error {
	return s.SaveFor(name, "", tokens)
}

// SaveFor persists tokens under name, recording the schema the command line
// was written for.
func (s *Store) SaveFor(name, schemaName string, tokens []string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	doc := document{
		Name:    name,
		Command: tokenize.Join(tokens),
		SavedAt: time.Now().UTC(),
		Schema:  schemaName,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("store: write %q: %w", name, err)
	}

	s.cache.Add(name, append([]string(nil), tokens...))
	s.log.WithFields(logrus.Fields{
		"name":   name,
		"tokens": len(tokens),
	}).Debug("command saved")
	return nil
}

// Load returns the tokens saved under name, reading through the cache.
func (s *Store) Load(name string) ([]string, error) {
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if tokens, ok := s.cache.Get(name); ok {
		s.hits.Add(1)
		return append([]string(nil), tokens...), nil
	}
	s.misses.Add(1)

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("store: read %q: %w", name, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: unmarshal %q: %w", name, err)
	}

	tokens := tokenize.Split(doc.Command)
	s.cache.Add(name, tokens)
	return append([]string(nil), tokens...), nil
}

// List returns the saved names in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the saved command line for name.
func (s *Store) Delete(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	s.cache.Remove(name)
	return nil
}

// Watch invalidates cache entries as files change on disk. It blocks until
// ctx ends and returns ctx.Err().
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("store: watch %q: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != fileExt {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), fileExt)
			s.cache.Remove(name)
			s.log.WithField("name", name).Debug("cache entry invalidated")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WithError(err).Warn("watch error")
		}
	}
}

// Stats reports cache hit and miss counts.
func (s *Store) Stats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}
