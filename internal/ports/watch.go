package ports

import "context"

// WatchPort calls onChange after any of paths is written, until ctx is done.
type WatchPort interface {
	Watch(ctx context.Context, paths []string, onChange func(changed string) error) error
}
