package fswatcher

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const MinInterval = time.Millisecond * 20

var ErrClosed = errors.New("poller is closed")

// fsPoller is polling implementation of FsWatcher interface
type fsPoller struct {
	// watched files and dirs
	watches map[string]struct{}
	// stores info about files and dirs inside watched paths
	files      map[string]fs.FileInfo
	events     chan Event
	errors     chan error
	done       chan struct{}
	scanDone   chan struct{}
	shouldSkip func(fs.FileInfo) bool
	fsys       fs.FS
	// path to the root directory
	root    string
	running bool

	mu     sync.Mutex
	closed bool
}

func newPoller(fsys fs.FS, root string) *fsPoller {
	return &fsPoller{
		events:   make(chan Event),
		errors:   make(chan error),
		done:     make(chan struct{}),
		scanDone: make(chan struct{}),
		fsys:     fsys,
		root:     root,
		watches:  map[string]struct{}{},
		files:    map[string]fs.FileInfo{},
	}
}

func (p *fsPoller) AddShouldSkipHook(fn func(fs.FileInfo) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shouldSkip = fn
}

// Add adds name into the list of the watched paths and returns the FileInfo
// of name and, for a directory, of everything inside it.
func (p *fsPoller) Add(name string) (map[string]fs.FileInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	relativePath := name
	if filepath.IsAbs(name) {
		rel, err := filepath.Rel(p.root, name)
		if err != nil {
			return nil, err
		}
		relativePath = filepath.ToSlash(rel)
	}

	list, err := p.listFiles(relativePath)
	if err != nil {
		return nil, err
	}

	for fname, fi := range list {
		p.files[fname] = fi
	}
	p.watches[relativePath] = struct{}{}

	return list, nil
}

// listFiles returns FileInfo of name and of all nested files if it is a
// directory
func (p *fsPoller) listFiles(name string) (map[string]fs.FileInfo, error) {
	files := map[string]fs.FileInfo{}

	fInfo, err := fs.Stat(p.fsys, name)
	if err != nil {
		return nil, err
	}
	files[name] = fInfo

	if !fInfo.IsDir() {
		return files, nil
	}

	err = fs.WalkDir(p.fsys, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == name {
			return nil
		}
		stat, err := d.Info()
		if err != nil {
			return err
		}
		if p.shouldSkip != nil && p.shouldSkip(stat) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		files[path] = stat
		return nil
	})

	return files, err
}

// scan compares the watched paths with the last snapshot and returns the
// changes sorted by name. Paths that disappeared stop being watched.
func (p *fsPoller) scan() ([]Event, []error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	current := map[string]fs.FileInfo{}
	for path := range p.watches {
		files, err := p.listFiles(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
				continue
			}
			delete(p.watches, path)
		}
		for name, fi := range files {
			current[name] = fi
		}
	}

	var events []Event
	for name, old := range p.files {
		fi, ok := current[name]
		switch {
		case !ok:
			events = append(events, Event{Op: Remove, Name: name})
		case !fi.IsDir() && (fi.ModTime() != old.ModTime() || fi.Size() != old.Size()):
			events = append(events, Event{Op: Write, Name: name})
		}
	}
	for name := range current {
		if _, ok := p.files[name]; !ok {
			events = append(events, Event{Op: Create, Name: name})
		}
	}
	p.files = current

	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })
	return events, errs
}

func (p *fsPoller) sendEvent(e Event) error {
	select {
	case p.events <- e:
	case <-p.done:
		return ErrClosed
	}
	return nil
}

func (p *fsPoller) sendError(err error) bool {
	select {
	case p.errors <- err:
		return true
	case <-p.done:
		return false
	}
}

// WatchedList returns a copy of the last snapshot
func (p *fsPoller) WatchedList() map[string]fs.FileInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	files := make(map[string]fs.FileInfo, len(p.files))
	for k, v := range p.files {
		files[k] = v
	}
	return files
}

// Start scans the watched paths every interval until Close is called
func (p *fsPoller) Start(interval time.Duration) error {
	if interval < MinInterval {
		interval = MinInterval
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("watcher is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
		}

		events, errs := p.scan()
		for _, err := range errs {
			if !p.sendError(fmt.Errorf("scan: %w", err)) {
				return nil
			}
		}
		for _, e := range events {
			if err := p.sendEvent(e); err != nil {
				return nil
			}
		}
		select {
		case p.scanDone <- struct{}{}:
		case <-p.done:
			return nil
		}
	}
}

func (p *fsPoller) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watches, name)
	delete(p.files, name)
	return nil
}

func (p *fsPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	close(p.done)
	p.closed = true
	p.running = false
	return nil
}

func (p *fsPoller) Errors() <-chan error {
	return p.errors
}

func (p *fsPoller) Events() <-chan Event {
	return p.events
}

func (p *fsPoller) ScanComplete() <-chan struct{} {
	return p.scanDone
}
