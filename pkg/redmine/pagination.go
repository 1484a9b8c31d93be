package redmine

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
)

// ListFunc fetches one page of a collection. query carries the caller's
// filters plus the offset and limit of the page being requested.
type ListFunc func(ctx context.Context, query *Group) (JSON, error)

// All drains a collection page by page and returns every item in server order.
// It stops once the number of collected items reaches the total_count of the
// latest page, or when a page comes back empty. pageSize <= 0 uses the default
// and sizes above 100 are capped.
func All(ctx context.Context, list ListFunc, key string, query *Group, pageSize int) ([]any, error) {
	iterator := NewPaginationIterator(ctx, list, key, query, pageSize)

	return iterator.All()
}

// PaginationIterator walks a collection one page at a time.
type PaginationIterator struct {
	ctx      context.Context //nolint:containedctx
	list     ListFunc
	key      string
	query    *Group
	pageSize int

	offset  int
	seen    int
	total   int
	started bool
	done    bool
}

// NewPaginationIterator creates an iterator over the collection stored under
// key in every page returned by list.
func NewPaginationIterator(ctx context.Context, list ListFunc, key string, query *Group, pageSize int) *PaginationIterator {
	if pageSize <= 0 {
		pageSize = constants.DefaultAggregatePageSize
	}

	// Redmine caps limit at 100; a larger step would skip items.
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return &PaginationIterator{
		ctx:      ctx,
		list:     list,
		key:      key,
		query:    query,
		pageSize: pageSize,
	}
}

// HasNext reports whether another page may be fetched.
func (p *PaginationIterator) HasNext() bool {
	if p.done {
		return false
	}

	return !p.started || p.seen < p.total
}

// Next fetches the next page and returns its items.
func (p *PaginationIterator) Next() ([]any, error) {
	if !p.HasNext() {
		return nil, nil
	}

	err := p.ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("fetching page at offset %d: %w", p.offset, err)
	}

	query := p.query.Clone().
		Set(OffsetKey, p.offset).
		Set(LimitKey, p.pageSize)

	envelope, err := p.list(p.ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetching page at offset %d: %w", p.offset, err)
	}

	page, err := CollectionOf(envelope, p.key)
	if err != nil {
		return nil, err
	}

	p.started = true
	p.total = page.TotalCount
	p.seen += len(page.Items)
	p.offset += p.pageSize

	if len(page.Items) == 0 || p.seen >= p.total {
		p.done = true
	}

	return page.Items, nil
}

// All fetches every remaining page.
func (p *PaginationIterator) All() ([]any, error) {
	items := make([]any, 0)

	for p.HasNext() {
		page, err := p.Next()
		if err != nil {
			return nil, err
		}

		items = append(items, page...)
	}

	return items, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (p *PaginationIterator) ForEach(fn func(item any) error) error {
	for p.HasNext() {
		page, err := p.Next()
		if err != nil {
			return err
		}

		for _, item := range page {
			err = fn(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
