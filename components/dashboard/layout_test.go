package dashboard

import (
	"reflect"
	"testing"
)

func TestApplyOrderOverride(t *testing.T) {
	widgets := []WidgetInstance{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	ordered := applyOrderOverride(widgets, []string{"c", "a"})
	got := widgetIDs(ordered)
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}

	ordered = applyOrderOverride(widgets, []string{"gone", "b"})
	got = widgetIDs(ordered)
	want = []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected stale ids skipped, got %v", got)
	}

	if out := applyOrderOverride(widgets, nil); len(out) != 3 {
		t.Fatalf("expected input unchanged without override, got %v", widgetIDs(out))
	}
}

func TestApplyHiddenFilter(t *testing.T) {
	widgets := []WidgetInstance{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	visible := applyHiddenFilter(widgets, []string{"b"})
	got := widgetIDs(visible)
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("expected hidden widget removed, got %v", got)
	}

	if out := applyHiddenFilter(widgets, nil); len(out) != 3 {
		t.Fatalf("expected all widgets without hidden list, got %v", widgetIDs(out))
	}
}

func TestSwapWidgetOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	swapped := SwapWidgetOrder(ids, "a", "d")
	if !reflect.DeepEqual(swapped, []string{"d", "b", "c", "a"}) {
		t.Fatalf("expected endpoints swapped, got %v", swapped)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c", "d"}) {
		t.Fatalf("expected input untouched, got %v", ids)
	}

	if out := SwapWidgetOrder(ids, "a", "a"); !reflect.DeepEqual(out, ids) {
		t.Fatalf("expected self-swap no-op, got %v", out)
	}
	if out := SwapWidgetOrder(ids, "a", "zzz"); !reflect.DeepEqual(out, ids) {
		t.Fatalf("expected unknown id no-op, got %v", out)
	}
}

func widgetIDs(widgets []WidgetInstance) []string {
	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = w.ID
	}
	return ids
}
