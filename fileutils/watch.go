package fileutils

import (
	"context"
)

// WatchFile polls the file at path on every tick and emits on the returned
// channel when its content hash changes. The channel closes when ctx ends.
func WatchFile(ctx context.Context, path string, ticker <-chan struct{}, onErr func(err error)) (chan struct{}, error) {
	ch := make(chan struct{})

	lastHash, err := HashFile(path)
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker:
				newHash, err := HashFile(path)
				if err != nil {
					onErr(err)
				}
				if newHash != 0 &&
					lastHash != newHash {
					lastHash = newHash
					ch <- struct{}{}
				}
			}
		}
	}()

	return ch, nil
}
