package watcher

import (
	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/scanner"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// FileWatcher reports session-file changes in the data directory.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	events  chan model.FileEvent
	done    chan struct{}
}

// NewFileWatcher starts watching dir. The directory itself is watched, not its
// sub-directories.
func NewFileWatcher(dir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		dir:     dir,
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !scanner.IsSessionFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			fe := model.FileEvent{Path: event.Name, Operation: eventOperation(event)}
			select {
			case fw.events <- fe:
			default:
				// The consumer drains on its own tick; a full buffer already
				// guarantees a pending refresh.
				util.LogDebug("File event dropped, buffer full", util.F("file", event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func eventOperation(event fsnotify.Event) string {
	if event.Has(fsnotify.Create) {
		return "CREATE"
	}
	return "WRITE"
}

// Events delivers CREATE and WRITE events of session files.
func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Drain returns every pending event without blocking.
func (fw *FileWatcher) Drain() []model.FileEvent {
	var pending []model.FileEvent
	for {
		select {
		case e := <-fw.events:
			pending = append(pending, e)
		default:
			return pending
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
