package yaml

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// Extension is the file extension of YAML documents.
const Extension = ".yaml"

// ErrNotDocument is returned when the top-level YAML value is not a mapping.
var ErrNotDocument = errors.New("top-level value is not a mapping")

// Codec implements store.Codec for YAML documents.
type Codec struct{}

// NewCodec creates a new YAML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Extension returns the file extension used for YAML documents.
func (c *Codec) Extension() string {
	return Extension
}

// Marshal encodes the document with sorted keys.
func (c *Codec) Marshal(doc map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(sorted(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// Unmarshal decodes data into a document.
func (c *Codec) Unmarshal(data []byte) (map[string]any, error) {
	var raw any

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if raw == nil {
		return make(map[string]any), nil
	}

	doc, isMap := normalize(raw).(map[string]any)
	if !isMap {
		return nil, fmt.Errorf("%w: got %T", ErrNotDocument, raw)
	}

	return doc, nil
}

// sorted converts every map into a yaml.MapSlice ordered by key.
func sorted(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		slice := make(yaml.MapSlice, 0, len(keys))
		for _, key := range keys {
			slice = append(slice, yaml.MapItem{Key: key, Value: sorted(typed[key])})
		}

		return slice
	case []any:
		items := make([]any, len(typed))
		for idx, item := range typed {
			items[idx] = sorted(item)
		}

		return items
	default:
		return value
	}
}

// normalize turns decoded mappings into map[string]any, recursively.
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}

		return typed
	case map[any]any:
		doc := make(map[string]any, len(typed))
		for key, item := range typed {
			doc[fmt.Sprint(key)] = normalize(item)
		}

		return doc
	case []any:
		for idx, item := range typed {
			typed[idx] = normalize(item)
		}

		return typed
	default:
		return value
	}
}

// ParseValue decodes a single YAML or JSON value, such as `5`, `true`, `"text"` or
// `{a: 1}`. Mappings are returned as map[string]any.
func ParseValue(data []byte) (any, error) {
	var value any

	err := yaml.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}

	return normalize(value), nil
}
