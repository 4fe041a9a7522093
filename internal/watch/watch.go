// Package watch reruns a callback when a source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// WatchOp indicates a change operation in the filesystem.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op WatchOp) String() string {
	names := []string{"CREATE", "WRITE", "REMOVE", "RENAME", "CHMOD"}
	out := ""
	for i, name := range names {
		if op&(1<<uint(i)) != 0 {
			if out != "" {
				out += "|"
			}
			out += name
		}
	}
	if out == "" {
		return "NONE"
	}
	return out
}

// Event describes a filesystem change event.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher provides a platform-independent file watching API.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}

// File watches path with OS notifications until ctx is done. See Run.
func File(ctx context.Context, path string, debounce time.Duration, fn func(Event)) error {
	fw, err := NewFSWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()

	return Run(ctx, fw, path, debounce, fn)
}

// Run calls fn after path is created or written. Events arriving within
// debounce of each other are coalesced into one call carrying the last
// event. The directory holding path is watched so editors that replace the
// file are still seen. Run returns nil when ctx is done and an error when
// the watcher reports one.
func Run(ctx context.Context, w Watcher, path string, debounce time.Duration, fn func(Event)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op&(OpCreate|OpWrite) == 0 || !samePath(ev.Path, target) {
				continue
			}
			pending = ev
			if debounce <= 0 {
				fn(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			fn(pending)

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

func samePath(name, target string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == target
}
