package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says which loader a changed file feeds.
type ChangeKind int

const (
	ChangePrefab ChangeKind = iota
	ChangeStage
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeStage:
		return "stage"
	case ChangeScript:
		return "script"
	}
	return "prefab"
}

// Change is one debounced file event.
type Change struct {
	Path string
	Kind ChangeKind
}

// WatchDirs are the on-disk override directories the tools watch.
var WatchDirs = []string{"levels", "prefabs", "prefabs/scripts"}

const defaultDebounce = 100 * time.Millisecond

// Watcher reports changed stage, prefab and script files, debounced per
// path. Other files are ignored.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Changes  chan Change
	Errors   chan error
	debounce time.Duration
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher:  fw,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		debounce: defaultDebounce,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the pump and closes Changes and Errors. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := Classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Classify maps a path to the loader it feeds. YAML under a "levels"
// directory is a stage, any other YAML a prefab, and .tengo a script.
func Classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tengo":
		return ChangeScript, true
	case ".yaml", ".yml":
		if filepath.Base(filepath.Dir(path)) == "levels" {
			return ChangeStage, true
		}
		return ChangePrefab, true
	}
	return 0, false
}
