// Package fswatch mirrors a directory on disk into a project.
//
// The fsnotify watcher goroutine only queues events. They are applied to the
// project by [Mirror.Apply], which must run on the same goroutine as the
// tree view ticks.
package fswatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/phanxgames/arbor/project"
)

var kindByExt = map[string]project.Kind{
	".png":      project.KindImage,
	".jpg":      project.KindImage,
	".jpeg":     project.KindImage,
	".gltf":     project.KindMesh,
	".glb":      project.KindMesh,
	".obj":      project.KindMesh,
	".fbx":      project.KindMesh,
	".scn":      project.KindScene,
	".scene":    project.KindScene,
	".tscn":     project.KindScene,
	".mat":      project.KindMaterial,
	".material": project.KindMaterial,
}

// KindOf returns the project kind of a file named name.
func KindOf(name string) project.Kind {
	if k, ok := kindByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return k
	}
	return project.KindFile
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Mirror keeps a project in step with a directory tree.
type Mirror struct {
	root    string
	project *project.Project
	logger  *slog.Logger

	paths map[string]uuid.UUID // slash-separated path relative to root

	mu      sync.Mutex
	queue   []fsnotify.Event
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a mirror of root into p. A nil logger discards output.
func New(root string, p *project.Project, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Mirror{
		root:    filepath.Clean(root),
		project: p,
		logger:  logger.With("root", root),
		paths:   make(map[string]uuid.UUID),
	}
}

// Lookup returns the item mirroring rel, a slash-separated path relative to
// the root.
func (m *Mirror) Lookup(rel string) (uuid.UUID, bool) {
	id, ok := m.paths[rel]
	return id, ok
}

// Len returns the number of mirrored entries.
func (m *Mirror) Len() int {
	return len(m.paths)
}

// Scan walks the directory and creates an item for every entry not yet
// mirrored. Hidden entries are skipped.
func (m *Mirror) Scan() error {
	return m.scan(m.root)
}

func (m *Mirror) scan(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == m.root {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return m.add(path, d.IsDir())
	})
	if err != nil {
		return fmt.Errorf("scan %q: %w", dir, err)
	}
	return nil
}

func (m *Mirror) rel(path string) (string, bool) {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (m *Mirror) add(path string, dir bool) error {
	rel, ok := m.rel(path)
	if !ok {
		return nil
	}
	if _, ok := m.paths[rel]; ok {
		return nil
	}
	var parent uuid.UUID
	if pdir := filepath.Dir(path); pdir != m.root {
		prel, _ := m.rel(pdir)
		if _, ok := m.paths[prel]; !ok {
			if err := m.add(pdir, true); err != nil {
				return err
			}
		}
		parent = m.paths[prel]
	}

	c := project.Create{Name: filepath.Base(path), Parent: parent, Kind: project.KindFolder}
	if !dir {
		c.Kind = KindOf(c.Name)
		c.Source = rel
	}
	id, err := m.project.Create(c)
	if err != nil {
		return fmt.Errorf("mirror %q: %w", rel, err)
	}
	m.paths[rel] = id
	if dir && m.watcher != nil {
		if err := m.watcher.Add(path); err != nil {
			m.logger.Warn("cannot watch directory", "path", rel, "error", err)
		}
	}
	return nil
}

func (m *Mirror) remove(path string) {
	rel, ok := m.rel(path)
	if !ok {
		return
	}
	id, ok := m.paths[rel]
	if !ok {
		return
	}
	if err := m.project.Delete(id); err != nil && !errors.Is(err, project.ErrUnknownItem) {
		m.logger.Warn("cannot remove mirrored item", "path", rel, "error", err)
	}
	prefix := rel + "/"
	for p := range m.paths {
		if p == rel || strings.HasPrefix(p, prefix) {
			delete(m.paths, p)
		}
	}
}

// Watch starts watching the directory tree until ctx is done or Close is
// called. Call Scan first so existing entries are mirrored.
func (m *Mirror) Watch(ctx context.Context) error {
	if m.watcher != nil {
		return errors.New("fswatch: already watching")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %q: %w", m.root, err)
	}
	dirs := []string{m.root}
	for rel, id := range m.paths {
		if it, ok := m.project.Item(id); ok && it.Kind == project.KindFolder {
			dirs = append(dirs, filepath.Join(m.root, filepath.FromSlash(rel)))
		}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return fmt.Errorf("watch %q: %w", dir, err)
		}
	}
	m.watcher = w

	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.loop(ctx, w)
	return nil
}

func (m *Mirror) loop(ctx context.Context, w *fsnotify.Watcher) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			m.enqueue(ev)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watcher error", "error", err)
		}
	}
}

func (m *Mirror) enqueue(ev fsnotify.Event) {
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()
}

// Apply mirrors every queued filesystem event into the project and returns
// how many events were drained from the queue, skipped ones included.
func (m *Mirror) Apply() int {
	m.mu.Lock()
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, ev := range queue {
		if hidden(filepath.Base(ev.Name)) {
			continue
		}
		switch {
		case ev.Has(fsnotify.Create):
			info, err := os.Stat(ev.Name)
			if err != nil {
				// already gone again
				continue
			}
			if err := m.add(ev.Name, info.IsDir()); err != nil {
				m.logger.Warn("cannot mirror entry", "path", ev.Name, "error", err)
				continue
			}
			if info.IsDir() {
				// entries created before the directory was watched
				if err := m.scan(ev.Name); err != nil {
					m.logger.Warn("cannot scan directory", "path", ev.Name, "error", err)
				}
			}
		case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
			// a rename arrives as the old name here and a Create for the new one
			m.remove(ev.Name)
		}
	}
	if len(queue) > 0 {
		m.logger.Debug("applied filesystem events", "events", len(queue), "items", len(m.paths))
	}
	return len(queue)
}

// Close stops watching.
func (m *Mirror) Close() error {
	if m.watcher == nil {
		return nil
	}
	m.cancel()
	err := m.watcher.Close()
	m.wg.Wait()
	m.watcher = nil
	return err
}
