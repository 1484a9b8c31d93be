package redmine

import "strings"

// Permitted is a whitelist of payload fields. A nil or empty child marks a
// leaf; a non-empty child restricts the nested object to its own fields.
type Permitted map[string]Permitted

// Permit builds a whitelist from field paths. Nested fields use dots, so
// "parent.title" permits only the title of the parent object.
func Permit(paths ...string) Permitted {
	permitted := Permitted{}

	for _, path := range paths {
		permitted.add(strings.Split(path, "."))
	}

	return permitted
}

// With returns a copy of p that also permits paths.
func (p Permitted) With(paths ...string) Permitted {
	merged := p.clone()

	for _, path := range paths {
		merged.add(strings.Split(path, "."))
	}

	return merged
}

// Allows reports whether a top-level field is permitted.
func (p Permitted) Allows(field string) bool {
	_, ok := p[field]

	return ok
}

func (p Permitted) add(segments []string) {
	if len(segments) == 0 || segments[0] == "" {
		return
	}

	child, ok := p[segments[0]]
	if len(segments) == 1 {
		if !ok {
			p[segments[0]] = nil
		}

		return
	}

	if child == nil {
		child = Permitted{}
		p[segments[0]] = child
	}

	child.add(segments[1:])
}

func (p Permitted) clone() Permitted {
	if p == nil {
		return Permitted{}
	}

	clone := make(Permitted, len(p))
	for key, child := range p {
		if child == nil {
			clone[key] = nil

			continue
		}

		clone[key] = child.clone()
	}

	return clone
}

// SanitizeData keeps only the permitted fields of data. Nil values are
// dropped. An empty whitelist returns data unchanged.
func SanitizeData(data JSON, permitted Permitted) JSON {
	if len(permitted) == 0 {
		return data
	}

	values := JSON{}

	for field, nested := range permitted {
		value, ok := data[field]
		if !ok || value == nil {
			continue
		}

		if len(nested) > 0 {
			object, isObject := asObject(value)
			if !isObject {
				continue
			}

			filtered := SanitizeData(object, nested)
			if len(filtered) == 0 {
				continue
			}

			values[field] = filtered

			continue
		}

		values[field] = value
	}

	return values
}

// asObject accepts both JSON and plain map values.
func asObject(value any) (JSON, bool) {
	switch typed := value.(type) {
	case JSON:
		return typed, true
	case map[string]string:
		object := make(JSON, len(typed))
		for key, v := range typed {
			object[key] = v
		}

		return object, true
	default:
		return nil, false
	}
}
