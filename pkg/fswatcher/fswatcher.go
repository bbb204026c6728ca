// Package fswatcher polls a file system for changes of watched paths.
package fswatcher

import (
	"io/fs"
	"time"
)

// Event represents a single file system notification
type Event struct {
	Name string // Path to the file or directory
	Op   Op     // File operation that triggered the event.
}

// Op describes a type of event
type Op uint32

// Operations
const (
	Create Op = 1 << iota
	Write
	Remove
)

func (op Op) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Write:
		return "WRITE"
	case Remove:
		return "REMOVE"
	}
	return "?"
}

// FsWatcher is fsnotify-like interface for implementing file watchers
type FsWatcher interface {
	Events() <-chan Event
	Errors() <-chan error
	// ScanComplete receives after every scan, once its events were sent
	ScanComplete() <-chan struct{}
	Add(name string) (map[string]fs.FileInfo, error)
	Remove(name string) error
	Close() error
	Start(interval time.Duration) error
	AddShouldSkipHook(func(fi fs.FileInfo) bool)
}

// NewFsPoller creates a polling watcher over fsys. root is used to turn
// absolute names given to Add into paths inside fsys.
func NewFsPoller(fsys fs.FS, root string) FsWatcher {
	return newPoller(fsys, root)
}
