// Package page coordinates one layout: the parallel scrolling lists at every
// menu depth, the stack of collections those lists show, the active
// playlist and the free components drawn around them.
package page

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Sound is a short effect played on page transitions.
type Sound interface {
	Play()
	IsPlaying() bool
	Allocate()
	Free()
}

// ScrollDirection is the scroll state requested by the run loop.
type ScrollDirection int

const (
	ScrollIdle ScrollDirection = iota
	ScrollForward
	ScrollBack
)

// Sounds are the optional effects a layout declares.
type Sounds struct {
	Load      Sound
	Unload    Sound
	Highlight Sound
	Select    Sound
}

func (s Sounds) all() []Sound {
	out := make([]Sound, 0, 4)
	for _, sound := range []Sound{s.Load, s.Unload, s.Highlight, s.Select} {
		if sound != nil {
			out = append(out, sound)
		}
	}
	return out
}

// menuInfo is one entry of the collection stack.
type menuInfo struct {
	collection *collection.Collection
	playlist   string
}

// Page is one loaded layout.
type Page struct {
	conf      *config.Store
	renderer  component.Renderer
	newPlayer func() component.Player

	layoutWidth  []int
	layoutHeight []int

	menus        [][]*component.ScrollingList
	activeMenu   []*component.ScrollingList
	playlistMenu *component.ScrollingList
	components   []component.Component
	statusText   *component.Text

	collections []menuInfo
	deleteQueue []*collection.Collection
	playlist    string

	menuDepth    int
	selectedItem *collection.Item
	scrollActive bool
	minShowTime  float64
	sounds       Sounds
	locked       bool
	jukebox      bool

	lastPlaylistOffsets  map[string]int
	fromPlaylistNav      bool
	fromPreviousPlaylist bool
}

// New returns an empty page. layoutWidth and layoutHeight hold the layout
// size per monitor.
func New(conf *config.Store, renderer component.Renderer, layoutWidth, layoutHeight []int) *Page {
	return &Page{
		conf:                conf,
		renderer:            renderer,
		layoutWidth:         layoutWidth,
		layoutHeight:        layoutHeight,
		lastPlaylistOffsets: make(map[string]int),
	}
}

// SetPlayerFactory installs the media player constructor used by video
// components.
func (p *Page) SetPlayerFactory(newPlayer func() component.Player) {
	p.newPlayer = newPlayer
}

func (p *Page) SetSounds(s Sounds) { p.sounds = s }
func (p *Page) SetMinShowTime(seconds float64) { p.minShowTime = seconds }
func (p *Page) MinShowTime() float64 { return p.minShowTime }
func (p *Page) SetJukebox() { p.jukebox = true }
func (p *Page) IsJukebox() bool { return p.jukebox }
func (p *Page) SetLocked(locked bool) { p.locked = locked }
func (p *Page) MenuDepth() int { return p.menuDepth }

// SetStatusText designates the text component showing the "status" setting.
func (p *Page) SetStatusText(t *component.Text) { p.statusText = t }

// AddComponent adds a free component. Components on a layer past the last
// one are rejected.
func (p *Page) AddComponent(c component.Component) bool {
	if layer := c.View().Layer; layer < 0 || layer >= constants.NumLayers {
		logging.GetInternalLogger().Error("Component layer too large", "layer", layer)
		return false
	}
	p.components = append(p.components, c)
	return true
}

func (p *Page) Components() []component.Component { return p.components }

// PushMenu adds a list at menu depth index, growing the menu table as
// needed. A negative index appends a new depth.
func (p *Page) PushMenu(l *component.ScrollingList, index int) {
	if index < 0 {
		index = len(p.menus)
	}
	for index >= len(p.menus) {
		p.menus = append(p.menus, nil)
	}
	p.menus[index] = append(p.menus[index], l)
	if l.IsPlaylist() && p.playlistMenu == nil {
		p.playlistMenu = l
	}
}

// Menus returns the lists at every depth.
func (p *Page) Menus() [][]*component.ScrollingList { return p.menus }

// MenusAtDepth is the number of depths the layout defines.
func (p *Page) MenusAtDepth() int { return len(p.menus) }

// primaryMenu is the first non-playlist list at the active depth.
func (p *Page) primaryMenu() *component.ScrollingList {
	for _, l := range p.activeMenu {
		if !l.IsPlaylist() {
			return l
		}
	}
	return nil
}

func (p *Page) eachMenu(fn func(depth int, l *component.ScrollingList)) {
	for depth, lists := range p.menus {
		for _, l := range lists {
			fn(depth, l)
		}
	}
}

func (p *Page) top() *menuInfo {
	if len(p.collections) == 0 {
		return nil
	}
	return &p.collections[len(p.collections)-1]
}

// PushCollection shows c one level deeper, cloning the active lists when
// the layout has no lists for the new depth.
func (p *Page) PushCollection(c *collection.Collection) {
	if len(p.menus) <= p.menuDepth && p.primaryMenu() != nil {
		for _, l := range p.activeMenu {
			clone := l.Clone()
			if clone.IsPlaylist() {
				p.playlistMenu = clone
			}
			p.PushMenu(clone, p.menuDepth)
		}
	}

	if p.menuDepth < len(p.menus) {
		p.activeMenu = p.menus[p.menuDepth]
		p.selectedItem = nil
		for _, l := range p.activeMenu {
			l.SetCollectionName(c.Name)
			if l.IsPlaylist() && len(c.PlaylistItems) > 0 {
				l.SetItems(c.PlaylistItems)
			} else {
				l.SetItems(c.Items)
			}
		}
	} else if len(p.menus) == 0 {
		logging.GetInternalLogger().Warn("Layout has no menus", "collection", c.Name)
	}

	p.playlist = ""
	if names := c.PlaylistNames(); len(names) > 0 {
		p.playlist = names[0]
	}
	p.collections = append(p.collections, menuInfo{collection: c, playlist: p.playlist})
	p.PlaylistChange()

	if p.menuDepth < len(p.menus) {
		p.menuDepth++
	}
	for _, comp := range p.components {
		comp.SetCollectionName(c.Name)
	}
}

// PopCollection returns to the parent collection. The popped collection is
// released by the next Cleanup, so items borrowed from it stay valid until
// then.
func (p *Page) PopCollection() bool {
	if p.primaryMenu() == nil || p.menuDepth <= 1 || len(p.collections) <= 1 {
		return false
	}

	p.deleteQueue = append(p.deleteQueue, p.top().collection)
	p.collections = p.collections[:len(p.collections)-1]
	info := p.top()

	if p.playlistMenu != nil && len(info.collection.PlaylistItems) > 0 {
		p.playlistMenu.SetItems(info.collection.PlaylistItems)
	}
	p.playlist = info.playlist
	p.PlaylistChange()

	p.menuDepth--
	p.activeMenu = p.menus[p.menuDepth-1]
	p.selectedItem = nil
	for _, comp := range p.components {
		comp.SetCollectionName(info.collection.Name)
	}
	return true
}

// Cleanup saves and releases collections popped since the last call.
func (p *Page) Cleanup() {
	for _, c := range p.deleteQueue {
		if err := c.Save(); err != nil {
			logging.GetInternalLogger().Warn("Could not save collection", "collection", c.Name, "error", err)
		}
		c.Release()
	}
	p.deleteQueue = nil
}

// Collection is the collection on top of the stack.
func (p *Page) Collection() *collection.Collection {
	if info := p.top(); info != nil {
		return info.collection
	}
	return nil
}

func (p *Page) CollectionName() string {
	if info := p.top(); info != nil {
		return info.collection.Name
	}
	return ""
}

// HasSubs reports whether the top collection merges subcollections.
func (p *Page) HasSubs() bool {
	if info := p.top(); info != nil {
		return info.collection.HasSubs
	}
	return false
}

// SelectedItem is the selection cached by the last item change, filled
// from the active list when nothing is cached.
func (p *Page) SelectedItem() *collection.Item {
	if p.selectedItem == nil {
		p.setSelectedItem()
	}
	return p.selectedItem
}

func (p *Page) setSelectedItem() {
	if l := p.primaryMenu(); l != nil {
		p.selectedItem = l.SelectedItem()
		return
	}
	p.selectedItem = nil
}

func (p *Page) ItemByOffset(offset int) *collection.Item {
	if l := p.primaryMenu(); l != nil {
		return l.ItemByOffset(offset)
	}
	return nil
}

func (p *Page) SelectedIndex() int {
	if l := p.primaryMenu(); l != nil {
		return l.SelectedIndex()
	}
	return 0
}

func (p *Page) CollectionSize() int {
	if l := p.primaryMenu(); l != nil {
		return l.Size()
	}
	return 0
}

func (p *Page) Renderer() component.Renderer { return p.renderer }

func (p *Page) NewPlayer() component.Player {
	if p.newPlayer == nil {
		return nil
	}
	return p.newPlayer()
}

func (p *Page) LayoutWidth(monitor int) int {
	if monitor < 0 || monitor >= len(p.layoutWidth) {
		return 0
	}
	return p.layoutWidth[monitor]
}

func (p *Page) LayoutHeight(monitor int) int {
	if monitor < 0 || monitor >= len(p.layoutHeight) {
		return 0
	}
	return p.layoutHeight[monitor]
}

func (p *Page) IsMenuScrolling() bool { return p.scrollActive }
func (p *Page) IsLocked() bool { return p.locked }

// IsPaused reports whether any component's media is paused.
func (p *Page) IsPaused() bool {
	for _, c := range p.components {
		if c.IsPaused() {
			return true
		}
	}
	return false
}

// Update advances every list and component by dt seconds.
func (p *Page) Update(dt float64) {
	name := p.PlaylistName()
	p.eachMenu(func(_ int, l *component.ScrollingList) {
		l.SetPlaylistName(name)
		l.Update(dt)
	})
	if p.statusText != nil {
		p.statusText.SetText(p.conf.StringOr("status", ""), p.statusText.ID())
	}
	for _, c := range p.components {
		c.SetPlaylistName(name)
		c.Update(dt)
	}
}

// UpdateReloadables lets components reload after the selection changed
// without advancing the lists.
func (p *Page) UpdateReloadables(dt float64) {
	for _, c := range p.components {
		c.Update(dt)
	}
}

// Draw renders layer by layer, components before lists on each layer.
func (p *Page) Draw() {
	for layer := range constants.NumLayers {
		for _, c := range p.components {
			if c.View().Layer == layer {
				c.Draw()
			}
		}
		p.eachMenu(func(_ int, l *component.ScrollingList) {
			l.DrawLayer(layer)
		})
	}
}

func (p *Page) FreeGraphicsMemory() {
	p.eachMenu(func(_ int, l *component.ScrollingList) {
		l.FreeGraphicsMemory()
	})
	for _, s := range p.sounds.all() {
		s.Free()
	}
	for _, c := range p.components {
		c.FreeGraphicsMemory()
	}
}

// AllocateGraphicsMemory allocates the lists up to the current depth, the
// sounds and the components.
func (p *Page) AllocateGraphicsMemory() {
	logging.GetInternalLogger().Debug("Allocating graphics memory")
	p.eachMenu(func(depth int, l *component.ScrollingList) {
		if depth < p.menuDepth {
			l.AllocateGraphicsMemory()
		}
	})
	for _, s := range p.sounds.all() {
		s.Allocate()
	}
	for _, c := range p.components {
		c.AllocateGraphicsMemory()
	}
}

// ReallocateMenuSpritePoints rebuilds the slots of the active lists.
// Playlist lists are rebuilt only when updatePlaylistMenu is set.
func (p *Page) ReallocateMenuSpritePoints(updatePlaylistMenu bool) {
	for _, l := range p.activeMenu {
		if !l.IsPlaylist() || updatePlaylistMenu {
			l.DeallocateSpritePoints()
			l.AllocateSpritePoints()
		}
	}
}

func (p *Page) PlaySelect() {
	if p.sounds.Select != nil {
		p.sounds.Select.Play()
	}
}

func (p *Page) IsSelectPlaying() bool {
	return p.sounds.Select != nil && p.sounds.Select.IsPlaying()
}

// IsPlaying reports whether media on the primary monitor is playing.
func (p *Page) IsPlaying() bool {
	for _, c := range p.components {
		if c.View().Monitor == 0 && c.IsPlaying() {
			return true
		}
	}
	return false
}

func (p *Page) IsMenuIdle() bool {
	for _, lists := range p.menus {
		for _, l := range lists {
			if !l.IsIdle() {
				return false
			}
		}
	}
	return true
}

func (p *Page) IsIdle() bool {
	return p.IsMenuIdle() && p.IsGraphicsIdle()
}

// IsAttractIdle is IsIdle with the attract animation counted as busy.
func (p *Page) IsAttractIdle() bool {
	for _, lists := range p.menus {
		for _, l := range lists {
			if !l.IsAttractIdle() {
				return false
			}
		}
	}
	for _, c := range p.components {
		if !c.IsAttractIdle() {
			return false
		}
	}
	return true
}

// IsGraphicsIdle considers only the free components.
func (p *Page) IsGraphicsIdle() bool {
	for _, c := range p.components {
		if !c.IsIdle() {
			return false
		}
	}
	return true
}

func (p *Page) IsJukeboxPlaying() bool {
	for _, c := range p.components {
		if c.IsJukeboxPlaying() {
			return true
		}
	}
	return false
}

func (p *Page) SkipForward() {
	for _, c := range p.components {
		c.SkipForward()
	}
}

func (p *Page) SkipBackward() {
	for _, c := range p.components {
		c.SkipBackward()
	}
}

func (p *Page) SkipForwardP() {
	for _, c := range p.components {
		c.SkipForwardP()
	}
}

func (p *Page) SkipBackwardP() {
	for _, c := range p.components {
		c.SkipBackwardP()
	}
}

func (p *Page) Pause() {
	for _, c := range p.components {
		c.Pause()
	}
}

func (p *Page) Restart() {
	for _, c := range p.components {
		c.Restart()
	}
}

// SetText sets the text of every component with the given id.
func (p *Page) SetText(text string, id int) {
	for _, c := range p.components {
		c.SetText(text, id)
	}
}

// SetImage swaps the image of every component with the given id.
func (p *Page) SetImage(path string, id int) {
	for _, c := range p.components {
		c.SetImage(path, id)
	}
}
