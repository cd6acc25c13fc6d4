package token

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileProvider is a Provider for a token which is backed by a file.
// It reads the value once up front, then watches the file and re-reads
// it whenever it is rewritten.
//
// This suits deployments where an external agent rotates a credential
// file in place while the process keeps running.
type FileProvider struct {
	mutex sync.RWMutex
	token string
}

func NewFileProvider(filename string) (*FileProvider, error) {
	value, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	fp := &FileProvider{
		token: string(value),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					value, err := os.ReadFile(filename)
					if err == nil {
						fp.mutex.Lock()
						fp.token = string(value)
						fp.mutex.Unlock()
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	if err := watcher.Add(filename); err != nil {
		watcher.Close()
		return nil, err
	}

	return fp, nil
}

func (t *FileProvider) Token() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.token
}
