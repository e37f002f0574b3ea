package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherPublishesReloadedScene(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.gltf",
		fixtureDocument(t, []fixtureMesh{unitTriangle}, []fixtureNode{{name: "tri", material: -1}}))

	l := NewLoader(BackendTypeGLTF)
	original, err := l.Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(l, path)
	require.NoError(t, err)
	defer w.Close()

	// a broken save is ignored
	writeScene(t, dir, "scene.gltf", []byte(`{"nodes": [{}]}`))
	select {
	case m := <-w.Updates():
		t.Fatalf("unexpected update with %d meshes", m.Len())
	case <-time.After(200 * time.Millisecond):
	}
	assert.Same(t, original, l.Get(path))

	writeScene(t, dir, "scene.gltf",
		fixtureDocument(t, []fixtureMesh{unitTriangle}, []fixtureNode{{name: "a", material: -1}, {name: "b", material: -1}}))

	select {
	case m := <-w.Updates():
		assert.Equal(t, 2, m.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("no update after rewriting the scene")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.gltf", []byte(`{}`))

	w, err := NewWatcher(NewLoader(BackendTypeGLTF), path)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
