package redmine

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
)

// Group is an ordered set of caller-supplied query parameters.
type Group struct {
	entries *orderedmap.OrderedMap[string, any]
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{entries: orderedmap.New[string, any]()}
}

// GroupOf builds a group from a map. Keys are sorted so the result is stable.
func GroupOf(values map[string]any) *Group {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	group := NewGroup()
	for _, key := range keys {
		group.Set(key, values[key])
	}

	return group
}

// Set adds or replaces a parameter and returns the group for chaining.
func (g *Group) Set(key string, value any) *Group {
	g.entries.Set(key, value)

	return g
}

// Get returns the raw value stored under key.
func (g *Group) Get(key string) (any, bool) {
	if g == nil {
		return nil, false
	}

	return g.entries.Get(key)
}

// Has reports whether key is present.
func (g *Group) Has(key string) bool {
	_, ok := g.Get(key)

	return ok
}

// Len returns the number of parameters.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}

	return g.entries.Len()
}

// Clone returns a shallow copy of the group.
func (g *Group) Clone() *Group {
	clone := NewGroup()
	if g == nil {
		return clone
	}

	for pair := g.entries.Oldest(); pair != nil; pair = pair.Next() {
		clone.Set(pair.Key, pair.Value)
	}

	return clone
}

// Page is an offset/limit window over a collection.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage is the window used by list operations when none is given.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: constants.DefaultListLimit}
}

// Group returns the page as query parameters.
func (p Page) Group() *Group {
	return NewGroup().Set("offset", p.Offset).Set("limit", p.Limit)
}

// Params is the flattened, ordered and percent-encoded query of a request.
type Params struct {
	values *orderedmap.OrderedMap[string, string]
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: orderedmap.New[string, string]()}
}

// Get returns the encoded value stored under key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}

	return p.values.Get(key)
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return p.values.Len()
}

// Keys returns the parameter names in order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}

	keys := make([]string, 0, p.values.Len())
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Encode renders the parameters as a query string, preserving order. Values
// are already percent-encoded and are not escaped again.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}

	var builder strings.Builder

	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		if builder.Len() > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(pair.Key))
		builder.WriteByte('=')
		builder.WriteString(pair.Value)
	}

	return builder.String()
}

// BuildQueryParameters flattens groups into one parameter set. Groups are
// applied in order and later groups overwrite earlier keys. Slice values are
// joined with "," and every value is percent-encoded. Nil values and empty
// slices are skipped.
func BuildQueryParameters(groups ...*Group) *Params {
	params := NewParams()

	for _, group := range groups {
		if group == nil {
			continue
		}

		for pair := group.entries.Oldest(); pair != nil; pair = pair.Next() {
			value, ok := stringify(pair.Value)
			if !ok {
				continue
			}

			params.values.Set(pair.Key, url.QueryEscape(value))
		}
	}

	return params
}

// stringify renders a query value. It reports false for values that must not
// reach the wire.
func stringify(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case []string:
		if len(typed) == 0 {
			return "", false
		}

		return strings.Join(typed, ","), true
	case int:
		return strconv.Itoa(typed), true
	case bool:
		return strconv.FormatBool(typed), true
	case fmt.Stringer:
		return typed.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return "", false
		}

		parts := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			part, ok := stringify(rv.Index(i).Interface())
			if ok {
				parts = append(parts, part)
			}
		}

		return strings.Join(parts, ","), true
	}

	return fmt.Sprint(value), true
}
