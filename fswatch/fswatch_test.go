package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phanxgames/arbor/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func sampleDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "levels", "hub.scn"))
	writeFile(t, filepath.Join(root, "levels", "01", "grass.mat"))
	writeFile(t, filepath.Join(root, "player.png"))
	writeFile(t, filepath.Join(root, "README"))
	writeFile(t, filepath.Join(root, ".git", "config"))
	writeFile(t, filepath.Join(root, "levels", ".hidden"))
	return root
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, project.KindImage, KindOf("a.PNG"))
	assert.Equal(t, project.KindMesh, KindOf("model.gltf"))
	assert.Equal(t, project.KindScene, KindOf("map.scn"))
	assert.Equal(t, project.KindMaterial, KindOf("stone.mat"))
	assert.Equal(t, project.KindFile, KindOf("notes.txt"))
	assert.Equal(t, project.KindFile, KindOf("Makefile"))
}

func TestScan(t *testing.T) {
	root := sampleDir(t)
	p := project.New(nil)
	m := New(root, p, nil)
	require.NoError(t, m.Scan())

	assert.Equal(t, 6, m.Len())
	assert.Equal(t, 6, p.Len())
	_, ok := m.Lookup(".git")
	assert.False(t, ok, "hidden entries are skipped")

	levels, ok := m.Lookup("levels")
	require.True(t, ok)
	grass, ok := m.Lookup("levels/01/grass.mat")
	require.True(t, ok)
	it, ok := p.Item(grass)
	require.True(t, ok)
	assert.Equal(t, project.KindMaterial, it.Kind)
	assert.Equal(t, "levels/01/grass.mat", it.Source)

	folder01, _ := m.Lookup("levels/01")
	parent, ok := p.Parent(folder01)
	require.True(t, ok)
	assert.Equal(t, levels, parent)

	require.NoError(t, m.Scan())
	assert.Equal(t, 6, p.Len(), "rescan adds nothing")
}

func TestApplyQueuedEvents(t *testing.T) {
	root := sampleDir(t)
	p := project.New(nil)
	m := New(root, p, nil)
	require.NoError(t, m.Scan())

	writeFile(t, filepath.Join(root, "levels", "02", "map.scn"))
	m.enqueue(fsnotify.Event{Name: filepath.Join(root, "levels", "02"), Op: fsnotify.Create})
	m.enqueue(fsnotify.Event{Name: filepath.Join(root, "ghost.png"), Op: fsnotify.Create})
	m.enqueue(fsnotify.Event{Name: filepath.Join(root, ".swap"), Op: fsnotify.Create})

	require.NoError(t, os.Remove(filepath.Join(root, "player.png")))
	m.enqueue(fsnotify.Event{Name: filepath.Join(root, "player.png"), Op: fsnotify.Remove})

	assert.Equal(t, 4, m.Apply())
	_, ok := m.Lookup("levels/02/map.scn")
	assert.True(t, ok, "directory contents are scanned on create")
	_, ok = m.Lookup("ghost.png")
	assert.False(t, ok, "entries gone before apply are skipped")
	_, ok = m.Lookup("player.png")
	assert.False(t, ok)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "levels")))
	m.enqueue(fsnotify.Event{Name: filepath.Join(root, "levels"), Op: fsnotify.Remove})
	m.Apply()
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 0, m.Apply())
}

func TestWatch(t *testing.T) {
	root := sampleDir(t)
	p := project.New(nil)
	m := New(root, p, nil)
	require.NoError(t, m.Scan())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Watch(ctx))
	defer m.Close()
	assert.Error(t, m.Watch(ctx))

	writeFile(t, filepath.Join(root, "levels", "boss.scn"))
	require.Eventually(t, func() bool {
		m.Apply()
		_, ok := m.Lookup("levels/boss.scn")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Rename(filepath.Join(root, "README"), filepath.Join(root, "README.md")))
	require.Eventually(t, func() bool {
		m.Apply()
		_, oldOK := m.Lookup("README")
		_, newOK := m.Lookup("README.md")
		return !oldOK && newOK
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}
