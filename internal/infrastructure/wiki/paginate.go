package wiki

import (
	"context"
	"fmt"
)

// DefaultMaxPages caps a single paginated query.
const DefaultMaxPages = 1000

// Page is one response of a paginated query. Next is the continuation token
// to echo back; empty means the listing is exhausted.
type Page[T any] struct {
	Items []T
	Next  string
}

// PageFunc issues the query once. token is empty on the first call.
type PageFunc[T any] func(ctx context.Context, token string) (Page[T], error)

// Paginate follows continuation tokens until the source stops returning one
// and accumulates every chunk in order. A token identical to the one just sent
// ends the walk, as does reaching maxPages (<= 0 means DefaultMaxPages).
// Any page error aborts the walk with no partial result.
func Paginate[T any](ctx context.Context, maxPages int, fetch PageFunc[T]) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var (
		acc   []T
		token string
	)
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := fetch(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page+1, err)
		}
		acc = append(acc, resp.Items...)

		if resp.Next == "" || resp.Next == token {
			return acc, nil
		}
		token = resp.Next
	}
	return acc, nil
}
