package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/trungnghia224/meeting-digest/internal/logger"
)

// New creates a Watcher over inboxDir with bounded concurrent processing.
func New(inboxDir string, formats []string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inboxDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	exts := make(map[string]bool, len(formats))
	for _, f := range formats {
		exts["."+f] = true
	}

	return &implWatcher{
		inboxDir:      inboxDir,
		extensions:    exts,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
