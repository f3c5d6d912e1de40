package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettle lets editors finish an atomic save before the file is read.
const reloadSettle = 100 * time.Millisecond

// Watch reloads the catalog at path whenever it is written. New catalogs
// arrive on the first channel; load failures arrive on the second and the
// caller keeps its previous catalog. Both channels close when ctx ends.
//
// The parent directory is watched rather than the file, so editors that
// save by rename keep triggering reloads.
func Watch(ctx context.Context, path string) (<-chan *Catalog, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create content watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("resolve content path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch content dir: %w", err)
	}

	catalogs := make(chan *Catalog, 1)
	errs := make(chan error, 1)

	go func() {
		defer watcher.Close()
		defer close(catalogs)
		defer close(errs)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				select {
				case <-time.After(reloadSettle):
				case <-ctx.Done():
					return
				}

				c, err := Load(abs)
				if err != nil {
					send(ctx, errs, err)
					continue
				}
				send(ctx, catalogs, c)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(ctx, errs, fmt.Errorf("content watcher: %w", err))
			}
		}
	}()

	return catalogs, errs, nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
