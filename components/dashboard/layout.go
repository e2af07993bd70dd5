package dashboard

// applyOrderOverride reorders widgets by the saved id list. Ids that no longer
// correspond to a rendered widget are ignored; widgets missing from the list
// keep their declared order after the ordered ones.
func applyOrderOverride(widgets []WidgetInstance, order []string) []WidgetInstance {
	if len(order) == 0 {
		return widgets
	}
	index := make(map[string]WidgetInstance, len(widgets))
	for _, w := range widgets {
		index[w.ID] = w
	}
	result := make([]WidgetInstance, 0, len(widgets))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if w, ok := index[id]; ok {
			result = append(result, w)
			seen[id] = struct{}{}
		}
	}
	for _, w := range widgets {
		if _, ok := seen[w.ID]; !ok {
			result = append(result, w)
		}
	}
	return result
}

func applyHiddenFilter(widgets []WidgetInstance, hidden []string) []WidgetInstance {
	if len(hidden) == 0 {
		return widgets
	}
	hiddenSet := make(map[string]struct{}, len(hidden))
	for _, id := range hidden {
		hiddenSet[id] = struct{}{}
	}
	result := make([]WidgetInstance, 0, len(widgets))
	for _, w := range widgets {
		if _, ok := hiddenSet[w.ID]; ok {
			continue
		}
		result = append(result, w)
	}
	return result
}

// SwapWidgetOrder returns ids with a and b exchanged. Dropping a widget onto
// itself, or naming an id not present in the list, returns the input order
// unchanged. The result is always a permutation of the input.
func SwapWidgetOrder(ids []string, a, b string) []string {
	if a == b {
		return ids
	}
	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case a:
			posA = i
		case b:
			posB = i
		}
	}
	if posA < 0 || posB < 0 {
		return ids
	}
	out := append([]string(nil), ids...)
	out[posA], out[posB] = out[posB], out[posA]
	return out
}
