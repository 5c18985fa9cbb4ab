package watcher

import "context"

// Watcher monitors the inbox directory for dropped audio clips.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one dropped audio file.
type EventHandler func(ctx context.Context, filePath string) error
