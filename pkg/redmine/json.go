package redmine

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// JSON is a decoded JSON object, the shape of every response envelope.
type JSON = map[string]any

// Collection is the typed view of a collection envelope.
type Collection struct {
	Items      []any
	TotalCount int
	Offset     int
	Limit      int
}

// Envelope keys shared by every collection response.
const (
	TotalCountKey = "total_count"
	OffsetKey     = "offset"
	LimitKey      = "limit"
)

// GetDataByKey unwraps a singular envelope.
func GetDataByKey(response JSON, key string) (any, error) {
	value, ok := response[key]
	if !ok {
		return nil, NewValidationError(ErrMissingEnvelopeKey, fmt.Sprintf("response doesn't contain '%s'", key))
	}

	return value, nil
}

// GetObjectByKey unwraps a singular envelope whose payload must be an object.
func GetObjectByKey(response JSON, key string) (JSON, error) {
	value, err := GetDataByKey(response, key)
	if err != nil {
		return nil, err
	}

	object, ok := value.(JSON)
	if !ok {
		return nil, NewValidationError(ErrUnexpectedType, fmt.Sprintf("'%s' is not an object", key))
	}

	return object, nil
}

// CollectionOf reads the items stored under key and the paging counters of a
// collection envelope. A missing total_count defaults to the number of items.
func CollectionOf(envelope JSON, key string) (*Collection, error) {
	raw, err := GetDataByKey(envelope, key)
	if err != nil {
		return nil, err
	}

	items, ok := raw.([]any)
	if !ok && raw != nil {
		return nil, NewValidationError(ErrUnexpectedType, fmt.Sprintf("'%s' is not an array", key))
	}

	collection := &Collection{
		Items:      items,
		TotalCount: len(items),
	}

	if total, ok := intValue(envelope[TotalCountKey]); ok {
		collection.TotalCount = total
	}

	if offset, ok := intValue(envelope[OffsetKey]); ok {
		collection.Offset = offset
	}

	if limit, ok := intValue(envelope[LimitKey]); ok {
		collection.Limit = limit
	}

	return collection, nil
}

// intValue converts the numeric forms a JSON decoder produces into an int.
func intValue(value any) (int, bool) {
	switch typed := value.(type) {
	case float64:
		return int(typed), true
	case int:
		return typed, true
	case int64:
		return int(typed), true
	default:
		return 0, false
	}
}

// FloatValue converts the numeric forms a caller or JSON decoder produces into
// a float64.
func FloatValue(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	default:
		return 0, false
	}
}

// Decode converts a decoded JSON value into a typed model using json tags.
func Decode(src any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			emptyTimeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", dst, err)
	}

	return nil
}

// DecodeAll converts aggregated collection items into typed models.
func DecodeAll[T any](items []any) ([]T, error) {
	result := make([]T, 0, len(items))

	for i, item := range items {
		var value T

		err := Decode(item, &value)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		result = append(result, value)
	}

	return result, nil
}

// emptyTimeHook leaves time fields zero when the server sends an empty string.
func emptyTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	if s, ok := data.(string); ok && s == "" {
		return time.Time{}, nil
	}

	return data, nil
}
