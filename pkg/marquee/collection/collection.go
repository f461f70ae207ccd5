// Package collection owns the items a page shows. A Collection is an arena:
// it owns every Item it lists, playlists hold borrowed pointers into it,
// and releasing the collection releases them all.
package collection

import (
	"sort"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// Collection is a named, ordered set of items plus the playlists derived
// from them.
type Collection struct {
	Name         string
	ListPath     string
	Extensions   []string
	MetadataType string
	MetadataPath string
	Launcher     string
	SortType     string

	// Items is the "all" playlist unless exclude_all.txt filtered it.
	Items []*Item

	// PlaylistItems are synthetic non-leaf items, one per playlist, used by
	// playlist menus.
	PlaylistItems []*Item

	MenuSort    bool
	SubsSplit   bool
	HasSubs     bool
	SortDesc    bool
	SaveRequest bool

	// Root is the frontend root; playlists are written below
	// Root/collections. GlobalFavLast redirects them to the shared
	// Favorites collection.
	Root          string
	GlobalFavLast bool

	playlists map[string][]*Item
	allIsOwn  bool
}

// New returns an empty collection with the "all" and "favorites"
// playlists present.
func New(name string) *Collection {
	c := &Collection{
		Name:      name,
		MenuSort:  true,
		playlists: make(map[string][]*Item),
		allIsOwn:  true,
	}
	c.playlists[constants.PlaylistFavorites] = nil
	return c
}

func (c *Collection) LowercaseName() string {
	return strings.ToLower(c.Name)
}

// Add appends an item to the collection and takes ownership of it.
func (c *Collection) Add(items ...*Item) {
	for _, i := range items {
		if i.Collection == nil {
			i.Collection = c
		}
	}
	c.Items = append(c.Items, items...)
}

// Find returns the first item named name.
func (c *Collection) Find(name string) *Item {
	for _, i := range c.Items {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// AddSubcollection prepends the items of sub. The items keep sub as their
// owning collection, so sub must outlive c.
func (c *Collection) AddSubcollection(sub *Collection) {
	merged := make([]*Item, 0, len(sub.Items)+len(c.Items))
	merged = append(merged, sub.Items...)
	c.Items = append(merged, c.Items...)
}

// Playlist returns the named playlist.
func (c *Collection) Playlist(name string) ([]*Item, bool) {
	if name == constants.PlaylistAll && c.allIsOwn {
		return c.Items, true
	}
	items, ok := c.playlists[name]
	return items, ok
}

// SetPlaylist replaces or creates a playlist. Setting "all" detaches it
// from Items.
func (c *Collection) SetPlaylist(name string, items []*Item) {
	if name == constants.PlaylistAll {
		c.allIsOwn = false
	}
	c.playlists[name] = items
}

func (c *Collection) store(name string, items []*Item) {
	if name == constants.PlaylistAll && c.allIsOwn {
		c.Items = items
		return
	}
	c.playlists[name] = items
}

// HasPlaylist reports whether name exists.
func (c *Collection) HasPlaylist(name string) bool {
	_, ok := c.Playlist(name)
	return ok
}

// PlaylistNames returns every playlist name in order, "all" included.
func (c *Collection) PlaylistNames() []string {
	names := make([]string, 0, len(c.playlists)+1)
	if c.allIsOwn {
		names = append(names, constants.PlaylistAll)
	}
	for name := range c.playlists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddToPlaylist appends item to name unless it is already there. It
// reports whether the playlist changed.
func (c *Collection) AddToPlaylist(name string, item *Item) bool {
	items, _ := c.Playlist(name)
	for _, i := range items {
		if i == item {
			return false
		}
	}
	c.store(name, append(items, item))
	if name == constants.PlaylistFavorites {
		item.IsFavorite = true
	}
	return true
}

// RemoveFromPlaylist removes item from name. It reports whether the
// playlist changed.
func (c *Collection) RemoveFromPlaylist(name string, item *Item) bool {
	items, ok := c.Playlist(name)
	if !ok {
		return false
	}
	for idx, i := range items {
		if i == item {
			out := make([]*Item, 0, len(items)-1)
			out = append(out, items[:idx]...)
			c.store(name, append(out, items[idx+1:]...))
			if name == constants.PlaylistFavorites {
				item.IsFavorite = false
			}
			return true
		}
	}
	return false
}

// Contains reports whether item is in playlist name.
func (c *Collection) Contains(name string, item *Item) bool {
	items, _ := c.Playlist(name)
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}

// Release drops every item and playlist. Borrowed pointers must not be
// used afterwards.
func (c *Collection) Release() {
	for _, i := range c.Items {
		i.Collection = nil
	}
	c.Items = nil
	c.PlaylistItems = nil
	c.playlists = make(map[string][]*Item)
}
