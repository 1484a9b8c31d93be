package redmine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var errBoom = errors.New("boom")

// fakeCollection serves total numbered items and records the requested offsets.
type fakeCollection struct {
	total   int
	offsets []int
	limits  []int
	queries []string
}

func (f *fakeCollection) list(_ context.Context, query *redmine.Group) (redmine.JSON, error) {
	offsetValue, _ := query.Get(redmine.OffsetKey)
	limitValue, _ := query.Get(redmine.LimitKey)

	offset := offsetValue.(int)
	limit := limitValue.(int)

	f.offsets = append(f.offsets, offset)
	f.limits = append(f.limits, limit)
	f.queries = append(f.queries, redmine.BuildQueryParameters(query).Encode())

	items := make([]any, 0, limit)
	for id := offset + 1; id <= f.total && id <= offset+limit; id++ {
		items = append(items, redmine.JSON{"id": float64(id)})
	}

	return redmine.JSON{
		"issues":      items,
		"total_count": float64(f.total),
		"offset":      float64(offset),
		"limit":       float64(limit),
	}, nil
}

func TestAll(t *testing.T) {
	t.Parallel()

	t.Run("collects every page", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCollection{total: 250}

		items, err := redmine.All(context.Background(), fake.list, "issues", redmine.NewGroup().Set("project_id", 1), 0)
		require.NoError(t, err)
		require.Len(t, items, 250)
		assert.Equal(t, []int{0, 100, 200}, fake.offsets)
		assert.Equal(t, []int{100, 100, 100}, fake.limits)
		assert.Equal(t, "project_id=1&offset=0&limit=100", fake.queries[0])

		for i, item := range items {
			assert.InDelta(t, float64(i+1), item.(redmine.JSON)["id"], 0)
		}
	})

	t.Run("page size is capped", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCollection{total: 150}

		items, err := redmine.All(context.Background(), fake.list, "issues", nil, 500)
		require.NoError(t, err)
		assert.Len(t, items, 150)
		assert.Equal(t, []int{0, 100}, fake.offsets)
		assert.Equal(t, []int{100, 100}, fake.limits)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCollection{total: 0}

		items, err := redmine.All(context.Background(), fake.list, "issues", nil, 50)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
		assert.Equal(t, []int{0}, fake.offsets)
	})

	t.Run("stops on an empty page", func(t *testing.T) {
		t.Parallel()

		calls := 0
		list := func(_ context.Context, _ *redmine.Group) (redmine.JSON, error) {
			calls++
			if calls == 1 {
				return redmine.JSON{"issues": []any{redmine.JSON{"id": float64(1)}}, "total_count": float64(500)}, nil
			}

			return redmine.JSON{"issues": []any{}, "total_count": float64(500)}, nil
		}

		items, err := redmine.All(context.Background(), list, "issues", nil, 10)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 2, calls)
	})

	t.Run("caller query is not modified", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCollection{total: 3}
		query := redmine.NewGroup().Set("status_id", "*")

		_, err := redmine.All(context.Background(), fake.list, "issues", query, 0)
		require.NoError(t, err)
		assert.False(t, query.Has(redmine.OffsetKey))
		assert.Equal(t, 1, query.Len())
	})

	t.Run("page error", func(t *testing.T) {
		t.Parallel()

		list := func(_ context.Context, _ *redmine.Group) (redmine.JSON, error) {
			return nil, errBoom
		}

		_, err := redmine.All(context.Background(), list, "issues", nil, 0)
		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "offset 0")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCollection{total: 10}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := redmine.All(ctx, fake.list, "issues", nil, 0)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, fake.offsets)
	})
}

func TestPaginationIterator(t *testing.T) {
	t.Parallel()

	fake := &fakeCollection{total: 5}
	iterator := redmine.NewPaginationIterator(context.Background(), fake.list, "issues", nil, 2)

	var pages [][]any

	for iterator.HasNext() {
		page, err := iterator.Next()
		require.NoError(t, err)

		pages = append(pages, page)
	}

	require.Len(t, pages, 3)
	assert.Len(t, pages[2], 1)

	page, err := iterator.Next()
	require.NoError(t, err)
	assert.Nil(t, page)

	var ids []float64

	err = redmine.NewPaginationIterator(context.Background(), (&fakeCollection{total: 4}).list, "issues", nil, 3).
		ForEach(func(item any) error {
			ids = append(ids, item.(redmine.JSON)["id"].(float64))

			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, ids)
}
