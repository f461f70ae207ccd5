package page

import (
	"slices"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// PlaylistName is the active playlist of the top collection.
func (p *Page) PlaylistName() string {
	if len(p.collections) == 0 {
		return ""
	}
	return p.playlist
}

func (p *Page) setPlaylist(name string) {
	p.playlist = name
	if info := p.top(); info != nil {
		info.playlist = name
	}
}

// PlaylistChange propagates the playlist name and moves the playlist list
// onto it.
func (p *Page) PlaylistChange() {
	name := p.PlaylistName()
	for _, l := range p.activeMenu {
		l.SetPlaylistName(name)
	}
	for _, c := range p.components {
		c.SetPlaylistName(name)
	}
	if p.playlistMenu != nil && name != "" {
		p.playlistMenu.SelectItemByName(name)
	}
}

// bindPlaylist shows the active playlist in l. Playlist lists keep showing
// the playlist entries.
func (p *Page) bindPlaylist(l *component.ScrollingList) {
	c := p.Collection()
	if l.IsPlaylist() && len(c.PlaylistItems) > 0 {
		l.SetItems(c.PlaylistItems)
		return
	}
	items, _ := c.Playlist(p.playlist)
	l.SetItems(items)
}

func (p *Page) bindActiveMenus() {
	for _, l := range p.activeMenu {
		p.bindPlaylist(l)
	}
	p.PlaylistChange()
}

// step moves the playlist cursor by dir through the sorted playlist names
// to the next non-empty playlist, wrapping around.
func (p *Page) step(dir int) {
	c := p.Collection()
	names := c.PlaylistNames()
	if len(names) == 0 {
		return
	}
	i := slices.Index(names, p.playlist)
	if i < 0 && dir < 0 {
		i = len(names)
	}
	for range len(names) {
		i = component.LoopIncrement(i, dir, len(names))
		if items, _ := c.Playlist(names[i]); len(items) > 0 {
			break
		}
	}
	p.setPlaylist(names[i])
}

// NextPlaylist switches to the next non-empty playlist.
func (p *Page) NextPlaylist() {
	if p.Collection() == nil {
		return
	}
	p.RememberSelectedItem()
	p.step(1)
	p.PlaylistNextEnter()
	p.bindActiveMenus()
}

// PrevPlaylist switches to the previous non-empty playlist.
func (p *Page) PrevPlaylist() {
	if p.Collection() == nil {
		return
	}
	p.RememberSelectedItem()
	p.step(-1)
	p.bindActiveMenus()
}

// SelectPlaylist switches to name when it exists and has items.
func (p *Page) SelectPlaylist(name string) {
	c := p.Collection()
	if c == nil {
		return
	}
	if err := c.Save(); err != nil {
		logging.GetInternalLogger().Warn("Could not save collection", "collection", c.Name, "error", err)
	}
	p.RememberSelectedItem()
	if p.PlaylistExists(name) {
		p.setPlaylist(name)
	}
	p.bindActiveMenus()
}

// FavPlaylist toggles between the favorites and all playlists.
func (p *Page) FavPlaylist() {
	if p.PlaylistName() == constants.PlaylistFavorites {
		p.SelectPlaylist(constants.PlaylistAll)
		return
	}
	p.SelectPlaylist(constants.PlaylistFavorites)
}

// NextCyclePlaylist advances through list, skipping missing or empty
// playlists. When the active playlist is not in list the first usable
// entry is selected.
func (p *Page) NextCyclePlaylist(list []string) {
	if len(list) == 0 {
		return
	}
	p.PlaylistNextEnter()
	p.cycle(list, 1)
}

// PrevCyclePlaylist is NextCyclePlaylist in reverse.
func (p *Page) PrevCyclePlaylist(list []string) {
	if len(list) == 0 {
		return
	}
	p.cycle(list, -1)
}

func (p *Page) cycle(list []string, dir int) {
	i := slices.Index(list, p.PlaylistName())
	if i < 0 {
		for _, name := range list {
			if p.PlaylistExists(name) {
				p.SelectPlaylist(name)
				return
			}
		}
		return
	}
	for range len(list) {
		i = component.LoopIncrement(i, dir, len(list))
		if p.PlaylistExists(list[i]) {
			p.SelectPlaylist(list[i])
			return
		}
	}
}

// PlaylistExists reports whether the top collection has a non-empty
// playlist called name.
func (p *Page) PlaylistExists(name string) bool {
	c := p.Collection()
	if c == nil {
		return false
	}
	items, ok := c.Playlist(name)
	return ok && len(items) > 0
}

// RememberSelectedItem records the selection offset for the active
// playlist.
func (p *Page) RememberSelectedItem() {
	l := p.primaryMenu()
	if l == nil || l.Size() == 0 {
		return
	}
	if name := p.PlaylistName(); name != "" && p.selectedItem != nil {
		p.lastPlaylistOffsets[name] = l.ScrollOffsetIndex()
	}
}

// ReturnToRememberSelectedItem restores the offset recorded for the active
// playlist.
func (p *Page) ReturnToRememberSelectedItem() {
	if p.primaryMenu() == nil {
		return
	}
	if offset := p.lastPlaylistOffsets[p.PlaylistName()]; offset != 0 {
		p.SetScrollOffsetIndex(offset)
	}
	p.OnNewItemSelected()
}

// AddPlaylist adds the selection to favorites unless favorites is showing.
func (p *Page) AddPlaylist() {
	c := p.Collection()
	if c == nil || p.SelectedItem() == nil {
		return
	}
	if p.PlaylistName() != constants.PlaylistFavorites && !c.Contains(constants.PlaylistFavorites, p.selectedItem) {
		c.AddToPlaylist(constants.PlaylistFavorites, p.selectedItem)
		c.SortPlaylists()
		c.SaveRequest = true
	}
	if err := c.Save(); err != nil {
		logging.GetInternalLogger().Warn("Could not save favorites", "collection", c.Name, "error", err)
	}
}

// RemovePlaylist removes the selection from favorites. While favorites is
// showing the list keeps its position.
func (p *Page) RemovePlaylist() {
	c := p.Collection()
	if c == nil || p.SelectedItem() == nil {
		return
	}
	if c.Contains(constants.PlaylistFavorites, p.selectedItem) {
		var l *component.ScrollingList
		var index int
		if p.PlaylistName() == constants.PlaylistFavorites {
			if l = p.primaryMenu(); l != nil {
				index = l.ScrollOffsetIndex()
			}
		}
		c.RemoveFromPlaylist(constants.PlaylistFavorites, p.selectedItem)
		c.SortPlaylists()
		c.SaveRequest = true
		if l != nil {
			for _, m := range p.activeMenu {
				if !m.IsPlaylist() {
					p.bindPlaylist(m)
				}
			}
			l.SetScrollOffsetIndex(index)
		}
	}
	if err := c.Save(); err != nil {
		logging.GetInternalLogger().Warn("Could not save favorites", "collection", c.Name, "error", err)
	}
}

// TogglePlaylist flips the favorite state of the selection.
func (p *Page) TogglePlaylist() {
	if p.SelectedItem() == nil || p.PlaylistName() == constants.PlaylistFavorites {
		return
	}
	if p.selectedItem.IsFavorite {
		p.RemovePlaylist()
		return
	}
	p.AddPlaylist()
}
