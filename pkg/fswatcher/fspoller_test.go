package fswatcher

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/flytaly/mdsite/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var j = path.Join

// return fs with empty files and folders from a slice with filenames
func createFS(files []string) fstest.MapFS {
	ff := fstest.MapFS{}
	for _, v := range files {
		if filepath.Ext(v) == "" { // is dir
			ff[v] = &fstest.MapFile{Mode: fs.ModeDir}
			continue
		}
		ff[v] = &fstest.MapFile{ModTime: time.Unix(1, 0)}
	}
	return ff
}

func TestAdd(t *testing.T) {
	t.Run("add directory", func(t *testing.T) {
		fileList := []string{
			"content",
			j("content", "index.md"),
			j("content", "blog"),
			j("content", "blog", "post.md"),
		}
		fsys := createFS(fileList)
		fsys["static/style.css"] = &fstest.MapFile{}

		p := newPoller(fsys, ".")
		got, err := p.Add("content")
		require.NoError(t, err)

		testutils.CompareMapKeys(t, got, fileList)
		testutils.CompareMapKeys(t, p.WatchedList(), fileList)
		assert.Contains(t, p.watches, "content")
	})

	t.Run("add file", func(t *testing.T) {
		p := newPoller(createFS([]string{"template.html"}), ".")
		got, err := p.Add("template.html")
		require.NoError(t, err)
		testutils.CompareMapKeys(t, got, []string{"template.html"})
	})

	t.Run("absolute path", func(t *testing.T) {
		root := filepath.Join(string(filepath.Separator), "home", "user", "site")
		p := newPoller(createFS([]string{"content", "content/a.md"}), root)
		got, err := p.Add(filepath.Join(root, "content"))
		require.NoError(t, err)
		testutils.CompareMapKeys(t, got, []string{"content", "content/a.md"})
	})

	t.Run("skip hook", func(t *testing.T) {
		fsys := createFS([]string{"content", "content/a.md", "content/.git/HEAD.md"})
		fsys["content/.git"] = &fstest.MapFile{Mode: fs.ModeDir}
		p := newPoller(fsys, ".")
		p.AddShouldSkipHook(func(fi fs.FileInfo) bool { return strings.HasPrefix(fi.Name(), ".") })
		got, err := p.Add("content")
		require.NoError(t, err)
		testutils.CompareMapKeys(t, got, []string{"content", "content/a.md"})
	})

	t.Run("error if closed", func(t *testing.T) {
		p := newPoller(fstest.MapFS{}, ".")
		require.NoError(t, p.Close())
		_, err := p.Add("file")
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("file does not exist", func(t *testing.T) {
		p := newPoller(fstest.MapFS{}, ".")
		_, err := p.Add("some_folder")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestScan(t *testing.T) {
	setup := func(t *testing.T) (fstest.MapFS, *fsPoller) {
		fsys := createFS([]string{"content", "content/a.md", "content/b.md"})
		p := newPoller(fsys, ".")
		_, err := p.Add("content")
		require.NoError(t, err)
		return fsys, p
	}

	t.Run("no changes", func(t *testing.T) {
		_, p := setup(t)
		events, errs := p.scan()
		assert.Empty(t, events)
		assert.Empty(t, errs)
	})

	t.Run("create, write and remove", func(t *testing.T) {
		fsys, p := setup(t)
		fsys["content/c.md"] = &fstest.MapFile{}
		fsys["content/a.md"] = &fstest.MapFile{ModTime: time.Unix(2, 0)}
		delete(fsys, "content/b.md")

		events, errs := p.scan()
		assert.Empty(t, errs)
		assert.Equal(t, []Event{
			{Op: Write, Name: "content/a.md"},
			{Op: Remove, Name: "content/b.md"},
			{Op: Create, Name: "content/c.md"},
		}, events)

		events, _ = p.scan()
		assert.Empty(t, events, "changes are reported once")
	})

	t.Run("size change is a write", func(t *testing.T) {
		fsys, p := setup(t)
		fsys["content/a.md"] = &fstest.MapFile{Data: []byte("# new"), ModTime: time.Unix(1, 0)}
		events, _ := p.scan()
		assert.Equal(t, []Event{{Op: Write, Name: "content/a.md"}}, events)
	})

	t.Run("removed watch", func(t *testing.T) {
		fsys, p := setup(t)
		for name := range fsys {
			delete(fsys, name)
		}
		events, errs := p.scan()
		assert.Empty(t, errs)
		assert.Len(t, events, 3)
		assert.NotContains(t, p.watches, "content")
	})
}

func TestRemove(t *testing.T) {
	fsys := createFS([]string{"path1", "path2"})
	p := newPoller(fsys, ".")
	_, err := p.Add("path1")
	require.NoError(t, err)
	_, err = p.Add("path2")
	require.NoError(t, err)
	require.NoError(t, p.Remove("path1"))
	assert.Contains(t, p.files, "path2")
	assert.NotContains(t, p.files, "path1")
	assert.NotContains(t, p.watches, "path1")
}

func TestStart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# a"), 0644))

	w := NewFsPoller(os.DirFS(dir), dir)
	_, err := w.Add(".")
	require.NoError(t, err)

	go func() { _ = w.Start(MinInterval) }()
	defer w.Close()

	// wait for the first empty scan so the new file lands in a later one
	select {
	case <-w.ScanComplete():
	case <-time.After(2 * time.Second):
		t.Fatal("no scan")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# b"), 0644))

	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-w.Events():
			assert.Equal(t, Event{Op: Create, Name: "b.md"}, e)
			return
		case <-w.ScanComplete():
		case err := <-w.Errors():
			t.Fatal(err)
		case <-timeout:
			t.Fatal("no event")
		}
	}
}

func TestStartTwice(t *testing.T) {
	p := newPoller(fstest.MapFS{}, ".")
	go func() { _ = p.Start(MinInterval) }()
	defer p.Close()
	assert.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.running
	}, time.Second, time.Millisecond*5)
	assert.Error(t, p.Start(MinInterval))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "CREATE", Create.String())
	assert.Equal(t, "WRITE", Write.String())
	assert.Equal(t, "REMOVE", Remove.String())
	assert.Equal(t, "?", Op(0).String())
}
