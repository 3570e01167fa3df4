package config

// MergeDocuments folds documents in precedence order, lowest first. Mapping
// nodes at the same path are unioned recursively; any other pair of values at
// the same path (scalars and sequences included) is fully replaced by the
// later layer. Neither input tree is mutated.
func MergeDocuments(docs ...*Document) *Mapping {
	merged := NewMapping()
	for _, doc := range docs {
		merged = mergeMappings(merged, doc.root)
	}
	return merged
}

func mergeMappings(base, overlay *Mapping) *Mapping {
	out := base.Clone()
	for _, key := range overlay.keys {
		overlayValue := overlay.values[key]
		if existing, ok := out.Get(key); ok {
			baseChild, baseIsMapping := existing.(*Mapping)
			overlayChild, overlayIsMapping := overlayValue.(*Mapping)
			if baseIsMapping && overlayIsMapping {
				out.Set(key, mergeMappings(baseChild, overlayChild))
				continue
			}
		}
		out.Set(key, cloneValue(overlayValue))
	}
	return out
}
