package pending

import "mediapair/internal/mediafiles"

// Item is one pending file. Name is its identity within a list.
type Item struct {
	Name   string
	Handle mediafiles.Handle
}

// FromHandles wraps file handles as pending items.
func FromHandles(handles []mediafiles.Handle) []Item {
	items := make([]Item, len(handles))
	for i, h := range handles {
		items[i] = Item{Name: h.Name, Handle: h}
	}
	return items
}

func handles(items []Item) []mediafiles.Handle {
	out := make([]mediafiles.Handle, len(items))
	for i, item := range items {
		out[i] = item.Handle
	}
	return out
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

// dedupe drops items whose name already appeared earlier in the slice.
func dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		out = append(out, item)
	}
	return out
}
