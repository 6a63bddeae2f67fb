package crumbfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
)

// Store holds the current Registry loaded from a definition file. Reload
// publishes a whole new Registry; requests holding the previous one keep
// using it.
type Store struct {
	fsys      fs.FS
	name      string
	watchPath string
	opts      []Option
	current   atomic.Pointer[breadcrumb.Registry]
}

// NewStore loads the definition file at path.
func NewStore(path string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	store := &Store{
		fsys:      os.DirFS(filepath.Dir(abs)),
		name:      filepath.Base(abs),
		watchPath: abs,
		opts:      opts,
	}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewStoreFS loads name from fsys. Stores built this way cannot be watched.
func NewStoreFS(fsys fs.FS, name string, opts ...Option) (*Store, error) {
	store := &Store{fsys: fsys, name: name, opts: opts}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

// Registry returns the current Registry.
func (s *Store) Registry() *breadcrumb.Registry {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Reload parses the file again. On failure the current Registry stays.
func (s *Store) Reload() error {
	registry, err := Load(s.fsys, s.name, s.opts...)
	if err != nil {
		return err
	}
	s.current.Store(registry)
	return nil
}

// Watch reloads the store whenever its file changes until ctx is done.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.watchPath == "" {
		return fmt.Errorf("breadcrumb store %s is not backed by a file", s.name)
	}
	watcher, err := NewWatcher(WatcherConfig{Path: s.watchPath, Debounce: debounce})
	if err != nil {
		return err
	}
	changes, err := watcher.Start()
	if err != nil {
		_ = watcher.Stop()
		return err
	}
	go func() {
		defer func() {
			if err := watcher.Stop(); err != nil {
				log.Printf("stop breadcrumb watcher path=%s err=%v", s.watchPath, err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				if err := s.Reload(); err != nil {
					log.Printf("reload breadcrumbs path=%s err=%v", s.watchPath, err)
					continue
				}
				log.Printf("reloaded breadcrumbs path=%s keys=%d", s.watchPath, s.Registry().Len())
			}
		}
	}()
	return nil
}
