package works

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// Item is one portfolio entry.
type Item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// SortDescending orders items by id, highest first, keeping the source
// order of equal ids.
func SortDescending(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(b.ID, a.ID)
	})
}

// Decode parses a JSON array of items and returns it sorted.
func Decode(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if items == nil {
		items = []Item{}
	}
	SortDescending(items)
	return items, nil
}
