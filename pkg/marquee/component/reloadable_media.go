package component

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

// positionImages is how many images a "position" artwork set holds.
const positionImages = 27

// MediaOptions configure a ReloadableMedia.
type MediaOptions struct {
	// Type names the artwork directory (or video type).
	Type string
	// ImageType is the image fallback for video components.
	ImageType string

	Video         bool
	SystemMode    bool
	LayoutMode    bool
	CommonMode    bool
	DisplayOffset int
	TextFallback  bool

	Jukebox      bool
	JukeboxLoops int

	// RandomSelect > 1 picks one of "<name>", "<name> - 1" ...
	RandomSelect int
}

// ReloadableMedia shows artwork for the selected item, reloading it when
// the selection changes.
type ReloadableMedia struct {
	Base
	conf   *config.Store
	font   Font
	opts   MediaOptions
	art    artSource
	loaded Component
}

func NewReloadableMedia(host Host, conf *config.Store, font Font, opts MediaOptions) *ReloadableMedia {
	return &ReloadableMedia{
		Base: NewBase(host),
		conf: conf,
		font: font,
		opts: opts,
		art:  artSource{conf: conf, layoutMode: opts.LayoutMode, commonMode: opts.CommonMode},
	}
}

// Loaded is the component currently shown, if any.
func (m *ReloadableMedia) Loaded() Component {
	return m.loaded
}

func (m *ReloadableMedia) alwaysReload() bool {
	switch strings.ToLower(m.opts.Type) {
	case "ispaused", "playcount":
		return true
	}
	return false
}

func (m *ReloadableMedia) Update(dt float64) {
	if m.newItemSelected || (m.newScrollItemSelected && m.menuScrollReload) || m.alwaysReload() {
		m.reload()
		m.newItemSelected = false
		m.newScrollItemSelected = false
	}
	if m.loaded != nil {
		if m.info.ImageWidth == 0 && m.info.ImageHeight == 0 {
			lv := m.loaded.View()
			m.info.ImageWidth, m.info.ImageHeight = lv.ImageWidth, lv.ImageHeight
		}
		m.loaded.Update(dt)
	}
	m.Base.Update(dt)
}

func (m *ReloadableMedia) AllocateGraphicsMemory() {
	if m.loaded != nil {
		m.loaded.AllocateGraphicsMemory()
	}
	m.Base.AllocateGraphicsMemory()
}

func (m *ReloadableMedia) FreeGraphicsMemory() {
	m.Base.FreeGraphicsMemory()
	if m.loaded != nil {
		m.loaded.FreeGraphicsMemory()
	}
}

func (m *ReloadableMedia) drop() {
	if m.loaded != nil {
		m.loaded.FreeGraphicsMemory()
		m.loaded = nil
	}
}

func (m *ReloadableMedia) reload() {
	item := m.host.ItemByOffset(m.opts.DisplayOffset)
	playlistType := isPlaylistType(m.opts.Type)
	if m.loaded != nil {
		keep := item != nil && playlistType && m.host.PlaylistName() == m.loaded.PlaylistName()
		if !keep {
			m.drop()
		}
	}
	if item == nil || m.loaded != nil {
		return
	}

	names := m.names(item)
	if m.opts.Video {
		for _, name := range names {
			if name != "default" && playlistType {
				name = m.host.PlaylistName()
			}
			if m.loaded = m.find(item, m.opts.Type, name, true); m.loaded != nil {
				break
			}
		}
	}

	mediaType := m.opts.Type
	if m.opts.Video {
		mediaType = m.opts.ImageType
	}
	for _, name := range names {
		if m.loaded != nil {
			break
		}
		m.loaded = m.find(item, mediaType, m.imageName(item, mediaType, name), false)
	}

	if m.loaded == nil && m.opts.TextFallback {
		m.loaded = NewText(m.host, item.FullTitle, m.font, m.info.Monitor)
	}
	if m.loaded == nil {
		return
	}
	m.loaded.SetPlaylistName(m.host.PlaylistName())
	m.loaded.AllocateGraphicsMemory()
	lv := m.loaded.View()
	m.info.ImageWidth, m.info.ImageHeight = lv.ImageWidth, lv.ImageHeight
}

// names is the clone list: name, full title, clone-of, the yes/no state
// for flag types, then "default".
func (m *ReloadableMedia) names(item *collection.Item) []string {
	names := []string{item.Name, item.FullTitle}
	if item.CloneOf != "" {
		names = append(names, item.CloneOf)
	}
	switch strings.ToLower(m.opts.Type) {
	case "isfavorite":
		names = append(names, yesNo(item.IsFavorite))
	case "ispaused":
		names = append(names, yesNo(m.host.IsPaused()))
	case "islocked":
		names = append(names, yesNo(m.host.IsLocked()))
	}
	return append(names, "default")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// imageName maps a candidate name to the file name searched for. Typed
// artwork (year, genre, ...) is named after the item's value.
func (m *ReloadableMedia) imageName(item *collection.Item, mediaType, name string) string {
	defined := name == "default"
	if !defined {
		switch lc := strings.ToLower(mediaType); {
		case isPlaylistType(lc):
			name, defined = m.host.PlaylistName(), true
		case lc == "firstletter":
			name, defined = string(firstRune(item.FullTitle)), true
		case lc == "position":
			if size := m.host.CollectionSize(); size > 0 {
				name, defined = positionName(m.host.SelectedIndex()+1, size), true
			}
		default:
			if v, ok := fieldValue(item, mediaType); ok && lc != "lastplayed" {
				name, defined = v, true
			}
		}
	}
	if !item.Leaf {
		if v, ok := m.conf.String("collections." + item.Name + "." + mediaType); ok {
			name = v
		}
	}
	if !defined || m.conf.BoolOr("overwriteXML", false) {
		if v, ok := item.GetInfo(mediaType); ok && v != "" {
			name = v
		}
	}
	name = safeName(name)
	if m.opts.RandomSelect > 0 {
		if n := rand.IntN(m.opts.RandomSelect); n != 0 {
			name += " - " + strconv.Itoa(n)
		}
	}
	return name
}

// positionName buckets a 1-based position into positionImages steps.
func positionName(position, size int) string {
	switch position {
	case 1:
		return "1"
	case size:
		return strconv.Itoa(positionImages)
	}
	return strconv.Itoa(int(math.Ceil(float64(position) / float64(size) * positionImages)))
}

// find walks the lookup chain for one name: the page collection, the
// item's own collection, then the rom directory (leaf) or the
// sub-collection's system artwork (menu entry). System mode only looks at
// system artwork.
func (m *ReloadableMedia) find(item *collection.Item, mediaType, name string, video bool) Component {
	open := func(dir, file string) Component {
		if video {
			loops := 0
			if m.opts.Jukebox {
				loops = m.opts.JukeboxLoops
			}
			return openVideo(m.host, dir, file, loops, m.info.Monitor)
		}
		return openImage(m.host, dir, file, m.info.Monitor)
	}

	if m.opts.SystemMode {
		if c := open(m.art.systemDir(m.collectionName, mediaType), mediaType); c != nil {
			return c
		}
		return open(m.art.systemDir(item.CollectionName(), mediaType), mediaType)
	}

	if c := open(m.art.mediaDir(m.collectionName, mediaType), name); c != nil {
		return c
	}
	if c := open(m.art.mediaDir(item.CollectionName(), mediaType), name); c != nil {
		return c
	}
	if item.Leaf {
		if item.Filepath == "" {
			return nil
		}
		return open(item.Filepath, mediaType)
	}
	return open(m.art.systemDir(item.Name, mediaType), mediaType)
}

func (m *ReloadableMedia) Draw() {
	m.Base.Draw()
	if m.loaded == nil {
		return
	}
	lv := m.loaded.View()
	m.info.ImageWidth, m.info.ImageHeight = lv.ImageWidth, lv.ImageHeight
	*lv = m.info
	m.loaded.Draw()
}

func (m *ReloadableMedia) IsPlaying() bool {
	return m.loaded != nil && m.loaded.IsPlaying()
}

func (m *ReloadableMedia) jukebox() Component {
	if m.opts.Jukebox {
		return m.loaded
	}
	return nil
}

func (m *ReloadableMedia) IsJukeboxPlaying() bool {
	c := m.jukebox()
	return c != nil && c.IsPlaying()
}

func (m *ReloadableMedia) SkipForward() {
	if c := m.jukebox(); c != nil {
		c.SkipForward()
	}
}

func (m *ReloadableMedia) SkipBackward() {
	if c := m.jukebox(); c != nil {
		c.SkipBackward()
	}
}

func (m *ReloadableMedia) SkipForwardP() {
	if c := m.jukebox(); c != nil {
		c.SkipForwardP()
	}
}

func (m *ReloadableMedia) SkipBackwardP() {
	if c := m.jukebox(); c != nil {
		c.SkipBackwardP()
	}
}

func (m *ReloadableMedia) Pause() {
	if c := m.jukebox(); c != nil {
		c.Pause()
	}
}

func (m *ReloadableMedia) Restart() {
	if c := m.jukebox(); c != nil {
		c.Restart()
	}
}

func (m *ReloadableMedia) IsPaused() bool {
	c := m.jukebox()
	return c != nil && c.IsPaused()
}
