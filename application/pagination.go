package application

import (
	"context"
	"fmt"

	"github.com/fazlanhoxton/hxt-events/domain/event"
)

const maxPages = 10000

type pageFetcher[T any] func(ctx context.Context, page event.Page) ([]T, error)

// collectPages walks pages from 1 until one comes back shorter than size. A
// full final page costs one extra, empty round trip.
func collectPages[T any](ctx context.Context, size int, fetch pageFetcher[T]) ([]T, error) {
	if size < 1 {
		size = event.DefaultPageSize
	}

	all := make([]T, 0, size)
	page := event.Page{Number: 1, Size: size}
	for page.Number <= maxPages {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < size {
			return all, nil
		}
		page = page.Next()
	}

	return nil, fmt.Errorf("pagination did not terminate after %d pages", maxPages)
}
