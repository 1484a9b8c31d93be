package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// listQuery flattens list options as filters, page, sort, include. When
// paged is set and no page is given, the default page is applied unless the
// filters already carry offset or limit.
func listQuery(opts *redmine.ListOptions, paged bool) *redmine.Params {
	if opts == nil {
		opts = &redmine.ListOptions{}
	}

	var page *redmine.Group

	switch {
	case opts.Page != nil:
		page = opts.Page.Group()
	case paged && !opts.Filters.Has(redmine.OffsetKey) && !opts.Filters.Has(redmine.LimitKey):
		page = redmine.DefaultPage().Group()
	}

	return redmine.BuildQueryParameters(
		opts.Filters,
		page,
		redmine.NewGroup().Set("sort", opts.Sort),
		redmine.NewGroup().Set("include", opts.Include),
	)
}

// includeQuery builds the include parameter, or nothing when empty.
func includeQuery(include []string) *redmine.Params {
	return redmine.BuildQueryParameters(redmine.NewGroup().Set("include", include))
}

// pageQuery builds offset/limit, falling back to the default page.
func pageQuery(page *redmine.Page) *redmine.Params {
	if page == nil {
		defaultPage := redmine.DefaultPage()
		page = &defaultPage
	}

	return redmine.BuildQueryParameters(page.Group())
}

// wrap puts a payload in the singular envelope the REST API expects.
func wrap(key string, payload redmine.JSON) redmine.JSON {
	if payload == nil {
		payload = redmine.JSON{}
	}

	return redmine.JSON{key: payload}
}

// unwrap returns the object stored under key.
func unwrap(response redmine.JSON, key string) (redmine.JSON, error) {
	object, err := redmine.GetObjectByKey(response, key)
	if err != nil {
		return nil, fmt.Errorf("unwrapping %s: %w", key, err)
	}

	return object, nil
}

// pagedList adapts a collection path to a redmine.ListFunc.
func pagedList(httpClient *http.Client, path string) redmine.ListFunc {
	return func(ctx context.Context, query *redmine.Group) (redmine.JSON, error) {
		return httpClient.Get(ctx, path, redmine.BuildQueryParameters(query))
	}
}

// escape encodes a caller supplied path segment such as a project identifier
// or wiki title.
func escape(segment string) string {
	return url.PathEscape(segment)
}

// itoa formats a numeric path segment.
func itoa(id int) string {
	return strconv.Itoa(id)
}
