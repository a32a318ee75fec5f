package transport

import (
	"context"
	"iter"
)

// FetchPage fetches one page of a collection. Pages are numbered from 1.
type FetchPage[T any] func(ctx context.Context, page int) ([]T, error)

// Pages returns a lazy sequence over the pages of a collection. Pages are
// fetched one at a time, each only when the consumer asks for it, and the
// sequence ends after the first page holding fewer than pageSize items or
// after the first error. Ranging over the sequence again starts over from
// the first page.
func Pages[T any](ctx context.Context, pageSize int, fetch FetchPage[T]) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			items, err := fetch(ctx, page)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(items, nil) || len(items) < pageSize {
				return
			}
		}
	}
}

// Collect drains pages into a single slice, stopping at the first error.
func Collect[T any](pages iter.Seq2[[]T, error]) ([]T, error) {
	all := []T{}
	for items, err := range pages {
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}
