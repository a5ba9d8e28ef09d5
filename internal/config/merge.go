package config

// MergeFlat merges two flat mappings. Keys of overlay win, keys present on
// one side only pass through, and a nil side yields the other side. The
// result is always a fresh, non-nil mapping; inputs are never modified.
func MergeFlat(base, overlay Values) Values {
	merged := make(Values, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = cloneValue(v)
	}
	for k, v := range overlay {
		merged[k] = cloneValue(v)
	}
	return merged
}

// MergeNested merges two nested sections. Item names are combined as in
// MergeFlat, then each item's fields are merged flat, and finally the
// item's parameters are merged flat on their own so that an overlay can
// override a single parameter. Merged parameters are stored on the item
// only when they are not empty.
//
// Nothing is ever removed: an overlay disables an item with skip: true.
func MergeNested(base, overlay Items) Items {
	merged := make(Items, len(base)+len(overlay))
	for _, name := range unionNames(base, overlay) {
		b, o := base[name], overlay[name]

		item := Item(MergeFlat(Values(b), Values(o)))
		if params := MergeFlat(b.Parameters(), o.Parameters()); len(params) > 0 {
			item[ItemParameters] = map[string]any(params)
		}
		merged[name] = item
	}
	return merged
}

// MergeDocuments merges overlay onto base section by section. Every known
// section is present in the result, empty when neither side had it.
func MergeDocuments(base, overlay *Document) *Document {
	if base == nil {
		base = NewDocument()
	}
	if overlay == nil {
		overlay = NewDocument()
	}

	merged := NewDocument()
	for _, s := range FlatSections {
		merged.Flat[s] = MergeFlat(base.Flat[s], overlay.Flat[s])
	}
	for _, s := range NestedSections {
		merged.Nested[s] = MergeNested(base.Nested[s], overlay.Nested[s])
	}
	return merged
}

// Fold merges the layers in order, each one overriding the ones before it.
func Fold(base *Document, layers ...*Document) *Document {
	merged := MergeDocuments(base, nil)
	for _, layer := range layers {
		merged = MergeDocuments(merged, layer)
	}
	return merged
}

func unionNames(base, overlay Items) []string {
	seen := make(map[string]bool, len(base)+len(overlay))
	names := make([]string, 0, len(base)+len(overlay))
	for name := range base {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range overlay {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
