package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edi-build/edi/internal/errors"
	"github.com/edi-build/edi/internal/logging"
)

// Values holds the settings of a flat section.
type Values map[string]any

// Item is one record of a nested section.
type Item map[string]any

// Skip reports whether the item is switched off.
func (i Item) Skip() bool {
	skip, _ := parseSkip(i[ItemSkip])
	return skip
}

// parseSkip accepts booleans and the usual YAML 1.1 spellings of them.
// nil means "not skipped".
func parseSkip(v any) (bool, bool) {
	switch s := v.(type) {
	case nil:
		return false, true
	case bool:
		return s, true
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "on":
			return true, true
		case "false", "no", "n", "off", "":
			return false, true
		}
	}
	return false, false
}

// Path returns the item's path, or "" when it has none.
func (i Item) Path() string {
	switch p := i[ItemPath].(type) {
	case nil:
		return ""
	case string:
		return p
	default:
		return fmt.Sprint(p)
	}
}

// Parameters returns the item's parameter mapping, or nil.
func (i Item) Parameters() Values {
	params, _ := i[ItemParameters].(map[string]any)
	return params
}

// Items holds the records of a nested section keyed by item name.
type Items map[string]Item

// Names returns the item names in sorted order.
func (it Items) Names() []string {
	names := make([]string, 0, len(it))
	for name := range it {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Document is a configuration split into its known sections. A section
// that is absent or null in the source is simply missing from the maps.
type Document struct {
	Flat   map[Section]Values
	Nested map[Section]Items
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Flat:   make(map[Section]Values),
		Nested: make(map[Section]Items),
	}
}

// Values returns the flat section s, or nil.
func (d *Document) Values(s Section) Values {
	return d.Flat[s]
}

// Items returns the nested section s, or nil.
func (d *Document) Items(s Section) Items {
	return d.Nested[s]
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for s, v := range d.Flat {
		out.Flat[s] = Values(cloneMap(v))
	}
	for s, items := range d.Nested {
		cloned := make(Items, len(items))
		for name, item := range items {
			cloned[name] = Item(cloneMap(item))
		}
		out.Nested[s] = cloned
	}
	return out
}

// Map converts d back into plain nested maps, sections in document order.
func (d *Document) Map() map[string]any {
	out := make(map[string]any)
	for _, s := range FlatSections {
		if v, ok := d.Flat[s]; ok {
			out[string(s)] = cloneMap(v)
		}
	}
	for _, s := range NestedSections {
		items, ok := d.Nested[s]
		if !ok {
			continue
		}
		section := make(map[string]any, len(items))
		for name, item := range items {
			section[name] = cloneMap(item)
		}
		out[string(s)] = section
	}
	return out
}

// FromMap splits a decoded document into its sections. Unknown sections
// are dropped; a known section of the wrong shape is a configuration error.
func FromMap(raw map[string]any) (*Document, error) {
	doc := NewDocument()
	for key, value := range raw {
		section := Section(key)
		shape, known := section.Shape()
		if !known {
			logging.Debug("ignoring unknown configuration section", "section", key)
			continue
		}
		if value == nil {
			continue
		}

		m, ok := asMap(value)
		if !ok {
			return nil, errors.ConfigError(fmt.Sprintf("section '%s' must be a mapping, got %T", key, value), nil)
		}

		if shape == Flat {
			doc.Flat[section] = Values(m)
			continue
		}

		items := make(Items, len(m))
		for name, record := range m {
			if record == nil {
				items[name] = nil
				continue
			}
			rm, ok := asMap(record)
			if !ok {
				return nil, errors.ConfigError(fmt.Sprintf("item '%s' in section '%s' must be a mapping, got %T", name, key, record), nil)
			}
			if v := rm[ItemSkip]; v != nil {
				skip, ok := parseSkip(v)
				if !ok {
					return nil, errors.ConfigError(fmt.Sprintf("item '%s' in section '%s' has invalid skip value %v", name, key, v), nil)
				}
				rm[ItemSkip] = skip
			}
			items[name] = Item(rm)
		}
		doc.Nested[section] = items
	}
	return doc, nil
}

// asMap normalizes the map types decoders produce into map[string]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Values:
		return m, true
	case Item:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// cloneMap deep-copies m. A nil map stays nil.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
