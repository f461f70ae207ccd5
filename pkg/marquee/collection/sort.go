package collection

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// newCollator is created per sort; a Collator is not safe for concurrent
// use and sorting happens on the loader goroutine as well as the main one.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.Loose)
}

// ItemLess orders items for display:
//
//   - leaf items before non-leaf items
//   - with SubsSplit, items of different collections by collection name
//   - non-leaf items keep their order when the collection disables MenuSort
//   - by sortType value when given (descending for lastplayed)
//   - by lowercase full title
func ItemLess(sortType string) func(a, b *Item) bool {
	col := newCollator()
	return itemLess(sortType, col)
}

func itemLess(sortType string, col *collate.Collator) func(a, b *Item) bool {
	desc := SortDescending(sortType)
	return func(a, b *Item) bool {
		if a.Leaf != b.Leaf {
			return a.Leaf
		}
		ac, bc := a.Collection, b.Collection
		if ac != nil && ac.SubsSplit && ac != bc {
			return col.CompareString(ac.LowercaseName(), collectionLowerName(bc)) < 0
		}
		if ac != nil && !ac.MenuSort && !a.Leaf && !b.Leaf {
			return false
		}
		if sortType != "" {
			av, bv := a.MetaAttribute(sortType), b.MetaAttribute(sortType)
			if av != bv {
				if desc {
					return av > bv
				}
				return av < bv
			}
		}
		return col.CompareString(a.LowercaseFullTitle(), b.LowercaseFullTitle()) < 0
	}
}

func collectionLowerName(c *Collection) string {
	if c == nil {
		return ""
	}
	return c.LowercaseName()
}

// SortItems orders Items with the collection's SortType.
func (c *Collection) SortItems() {
	sortItems(c.Items, ItemLess(c.SortType))
}

func sortItems(items []*Item, less func(a, b *Item) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// SortPlaylists orders every playlist except "all". A playlist named after
// a sort field is ordered by that field.
func (c *Collection) SortPlaylists() {
	col := newCollator()
	for name, items := range c.playlists {
		if name == constants.PlaylistAll {
			continue
		}
		sortType := ""
		if ValidSortType(name) {
			sortType = name
		}
		sortItems(items, itemLess(sortType, col))
	}
}
