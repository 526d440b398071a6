package dlwatch

import (
	"io/fs"
	"time"
)

func (w *Watcher) SetBirthTime(fn func(path string) (time.Time, error)) {
	w.birthTime = fn
}

func (w *Watcher) SetReadDir(fn func(dir string) ([]fs.DirEntry, error)) {
	w.readDir = fn
}

func (w *Watcher) SelectLatest(dir string, names []string) (string, bool) {
	return w.selectLatest(dir, names)
}
