package client

import (
	"context"
	"errors"
	"time"
)

// Poll calls fetch immediately and then once per interval until ctx is done.
// Calls never overlap, so each result supersedes the previous one. A fetch
// error is passed to onErr (when set) and polling continues. Poll returns
// ctx.Err() once the context is cancelled.
func Poll[T any](ctx context.Context, interval time.Duration, fetch func(context.Context) (T, error), onResult func(T), onErr func(error)) error {
	if interval <= 0 {
		return errors.New("poll interval must be positive")
	}

	run := func() {
		result, err := fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		onResult(result)
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			run()
		}
	}
}
