package component

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

const (
	defaultScrollTime = 0.5
	videoLoops        = 0
)

// LoopIncrement is (offset+i) mod size, and 0 for an empty list.
func LoopIncrement(offset, i, size int) int {
	if size == 0 {
		return 0
	}
	return ((offset+i)%size + size) % size
}

// LoopDecrement is (offset-i) mod size, and 0 for an empty list.
func LoopDecrement(offset, i, size int) int {
	if size == 0 {
		return 0
	}
	return ((offset%size)-(i%size)+size+size) % size
}

// ListOptions select where a ScrollingList finds its artwork.
type ListOptions struct {
	ImageType    string
	VideoType    string
	LayoutMode   bool
	CommonMode   bool
	PlaylistType bool

	// Horizontal lists scroll with left and right.
	Horizontal bool
}

// ScrollingList maps a fixed ring of slot components onto a circular item
// index. Slot i shows items[LoopIncrement(itemIndex, i, len(items))] at
// points[i].
type ScrollingList struct {
	Base
	conf *config.Store
	font Font
	opts ListOptions
	art  artSource

	points      []view.Info
	tweenPoints []*animate.Events
	slots       []Component

	items          []*collection.Item
	itemIndex      int
	selectedOffset int

	scrollAcceleration float64
	startScrollTime    float64
	minScrollTime      float64
	scrollPeriod       float64
}

func NewScrollingList(host Host, conf *config.Store, font Font, opts ListOptions) *ScrollingList {
	if opts.VideoType == "" {
		opts.VideoType = "null"
	}
	return &ScrollingList{
		Base:            NewBase(host),
		conf:            conf,
		font:            font,
		opts:            opts,
		art:             artSource{conf: conf, layoutMode: opts.LayoutMode, commonMode: opts.CommonMode},
		startScrollTime: defaultScrollTime,
		minScrollTime:   defaultScrollTime,
	}
}

// Clone returns an unbound list sharing this list's points and animation
// definitions, for use at another menu depth.
func (l *ScrollingList) Clone() *ScrollingList {
	c := NewScrollingList(l.host, l.conf, l.font, l.opts)
	c.info = l.info
	c.tweens = l.tweens
	c.menuScrollReload = l.menuScrollReload
	c.selectedOffset = l.selectedOffset
	c.scrollAcceleration = l.scrollAcceleration
	c.startScrollTime = l.startScrollTime
	c.minScrollTime = l.minScrollTime
	c.SetPoints(l.points, l.tweenPoints)
	return c
}

func (l *ScrollingList) Options() ListOptions { return l.opts }

// IsPlaylist reports whether the list shows playlists instead of items.
func (l *ScrollingList) IsPlaylist() bool { return l.opts.PlaylistType }

func (l *ScrollingList) SetSelectedOffset(offset int) { l.selectedOffset = offset }
func (l *ScrollingList) SelectedOffset() int { return l.selectedOffset }
func (l *ScrollingList) SetScrollAcceleration(v float64) { l.scrollAcceleration = v }
func (l *ScrollingList) SetStartScrollTime(v float64) { l.startScrollTime = v }
func (l *ScrollingList) SetMinScrollTime(v float64) { l.minScrollTime = v }
func (l *ScrollingList) ScrollPeriod() float64 { return l.scrollPeriod }

// SetPoints installs the slot layout. The slot ring is resized to match.
func (l *ScrollingList) SetPoints(points []view.Info, tweenPoints []*animate.Events) {
	l.points = points
	l.tweenPoints = tweenPoints
	for i := len(points); i < len(l.slots); i++ {
		if l.slots[i] != nil {
			l.slots[i].FreeGraphicsMemory()
		}
	}
	slots := make([]Component, len(points))
	copy(slots, l.slots)
	l.slots = slots
}

func (l *ScrollingList) Points() []view.Info { return l.points }

// Slots returns the live slot components, nil where unallocated.
func (l *ScrollingList) Slots() []Component { return l.slots }

// SetItems rebinds the list and puts the first item at the selected
// offset.
func (l *ScrollingList) SetItems(items []*collection.Item) {
	l.items = items
	l.itemIndex = LoopDecrement(0, l.selectedOffset, len(items))
}

func (l *ScrollingList) Items() []*collection.Item { return l.items }

func (l *ScrollingList) Size() int { return len(l.items) }

func (l *ScrollingList) SelectedIndex() int {
	return LoopIncrement(l.itemIndex, l.selectedOffset, len(l.items))
}

func (l *ScrollingList) SetSelectedIndex(index int) {
	l.itemIndex = LoopDecrement(index, l.selectedOffset, len(l.items))
}

func (l *ScrollingList) ScrollOffsetIndex() int {
	return l.SelectedIndex()
}

func (l *ScrollingList) SetScrollOffsetIndex(index int) {
	l.SetSelectedIndex(index)
}

// SelectedItem is nil for an empty list.
func (l *ScrollingList) SelectedItem() *collection.Item {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[l.SelectedIndex()]
}

// ItemByOffset returns the item offset positions away from the selection.
func (l *ScrollingList) ItemByOffset(offset int) *collection.Item {
	n := len(l.items)
	if n == 0 {
		return nil
	}
	index := l.SelectedIndex()
	if offset >= 0 {
		index = LoopIncrement(index, offset, n)
	} else {
		index = LoopDecrement(index, -offset, n)
	}
	return l.items[index]
}

// SelectItemByName selects the first item called name.
func (l *ScrollingList) SelectItemByName(name string) bool {
	for i, item := range l.items {
		if item.Name == name {
			l.SetSelectedIndex(i)
			return true
		}
	}
	return false
}

// Random selects a uniformly random item.
func (l *ScrollingList) Random() {
	if n := len(l.items); n > 0 {
		l.itemIndex = rand.IntN(n)
	}
}

func (l *ScrollingList) PageUp() {
	if len(l.slots) > 0 {
		l.itemIndex = LoopDecrement(l.itemIndex, len(l.slots), len(l.items))
	}
}

func (l *ScrollingList) PageDown() {
	if len(l.slots) > 0 {
		l.itemIndex = LoopIncrement(l.itemIndex, len(l.slots), len(l.items))
	}
}

func (l *ScrollingList) LetterUp() { l.letterChange(true) }
func (l *ScrollingList) LetterDown() { l.letterChange(false) }
func (l *ScrollingList) SubUp() { l.subChange(true) }
func (l *ScrollingList) SubDown() { l.subChange(false) }

func (l *ScrollingList) letterChange(increment bool) {
	l.jump(increment, func(a, b *collection.Item) bool {
		return groupChanged(firstRune(a.LowercaseFullTitle()), firstRune(b.LowercaseFullTitle()))
	})
}

// subChange groups items by their whole lowercase collection name.
func (l *ScrollingList) subChange(increment bool) {
	l.jump(increment, func(a, b *collection.Item) bool {
		return strings.ToLower(a.CollectionName()) != strings.ToLower(b.CollectionName())
	})
}

// CfwLetterSubUp jumps to the next sub-collection while outside the home
// collection, else to the next letter.
func (l *ScrollingList) CfwLetterSubUp() {
	if selected := l.SelectedItem(); selected != nil && l.inHome(selected) {
		l.letterChange(true)
		return
	}
	l.subChange(true)
}

// CfwLetterSubDown mirrors CfwLetterSubUp, stepping back across the
// boundary between the home collection and its sub-collections.
func (l *ScrollingList) CfwLetterSubDown() {
	selected := l.SelectedItem()
	if selected == nil {
		return
	}
	if !l.inHome(selected) {
		l.subChange(false)
		if l.inHome(l.SelectedItem()) {
			l.subChange(true)
			l.letterChange(false)
		}
		return
	}
	l.letterChange(false)
	if !l.inHome(l.SelectedItem()) {
		l.letterChange(true)
		l.subChange(false)
	}
}

func (l *ScrollingList) inHome(item *collection.Item) bool {
	return strings.EqualFold(item.CollectionName(), l.collectionName)
}

func (l *ScrollingList) itemAt(index int) *collection.Item {
	return l.items[LoopIncrement(index, l.selectedOffset, len(l.items))]
}

// jump moves to the nearest item outside the selection's group, as told
// by changed. Going backwards it lands on the first item of the previous
// group unless prevLetterSubToCurrent asks for the start of the current
// group.
func (l *ScrollingList) jump(increment bool, changed func(a, b *collection.Item) bool) {
	n := len(l.items)
	if n == 0 {
		return
	}
	start := l.itemAt(l.itemIndex)

	for i := 0; i < n; i++ {
		index := LoopDecrement(l.itemIndex, i, n)
		if increment {
			index = LoopIncrement(l.itemIndex, i, n)
		}
		if changed(start, l.itemAt(index)) {
			l.itemIndex = index
			break
		}
	}

	if increment {
		return
	}
	prevToCurrent := l.conf != nil && l.conf.BoolOr("prevLetterSubToCurrent", false)
	if !prevToCurrent || l.itemAt(l.itemIndex+1) == start {
		landed := l.itemAt(l.itemIndex)
		for i := 0; i < n; i++ {
			index := LoopDecrement(l.itemIndex, i, n)
			if changed(landed, l.itemAt(index)) {
				l.itemIndex = LoopIncrement(index, 1, n)
				break
			}
		}
	} else {
		l.itemIndex = LoopIncrement(l.itemIndex, 1, n)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// groupChanged is true across a letter/non-letter boundary or between two
// different letters. Non-letters form one group.
func groupChanged(a, b rune) bool {
	al, bl := unicode.IsLetter(a), unicode.IsLetter(b)
	return al != bl || (al && a != b)
}

// Scroll moves the selection by one item and animates every slot to its
// neighbouring point. Only the slot whose item changed is reloaded.
func (l *ScrollingList) Scroll(forward bool) {
	n, np := len(l.items), len(l.points)
	if l.opts.PlaylistType || n == 0 || np == 0 {
		return
	}
	if l.scrollPeriod < l.minScrollTime {
		l.scrollPeriod = l.minScrollTime
	}

	if forward {
		entering := l.items[LoopIncrement(l.itemIndex, np, n)]
		l.itemIndex = LoopIncrement(l.itemIndex, 1, n)
		l.reallocate(0, entering)
	} else {
		entering := l.items[LoopDecrement(l.itemIndex, 1, n)]
		l.itemIndex = LoopDecrement(l.itemIndex, 1, n)
		l.reallocate(np-1, entering)
	}

	for i, c := range l.slots {
		if c == nil {
			continue
		}
		next := LoopIncrement(i, 1, np)
		if forward {
			next = LoopDecrement(i, 1, np)
		}
		l.resetTweens(c, l.tweenPoints[next], l.points[i], l.points[next], l.scrollPeriod)
		c.View().Font = l.points[next].Font
		c.TriggerEvent(animate.EventMenuScroll, -1)
	}

	if forward {
		first := l.slots[0]
		copy(l.slots, l.slots[1:])
		l.slots[np-1] = first
	} else {
		last := l.slots[np-1]
		copy(l.slots[1:], l.slots[:np-1])
		l.slots[0] = last
	}
}

// UpdateScrollPeriod shortens the period by the acceleration, down to the
// minimum.
func (l *ScrollingList) UpdateScrollPeriod() {
	l.scrollPeriod -= l.scrollAcceleration
	if l.scrollPeriod < l.minScrollTime {
		l.scrollPeriod = l.minScrollTime
	}
}

func (l *ScrollingList) ResetScrollPeriod() {
	l.scrollPeriod = l.startScrollTime
}

// resetTweens places c at cur and installs a one-phase linear menuScroll
// animation from cur to next as a private override of sets.
func (l *ScrollingList) resetTweens(c Component, sets *animate.Events, cur, next view.Info, scrollTime float64) {
	v := c.View()
	cur.ImageWidth, cur.ImageHeight = v.ImageWidth, v.ImageHeight
	next.ImageWidth, next.ImageHeight = v.ImageWidth, v.ImageHeight
	next.BackgroundAlpha = v.BackgroundAlpha

	c.SetTweens(sets.With(animate.EventMenuScroll, menuScrollAnimation(cur, next, scrollTime)))
	*v = cur
}

var scrollProperties = []animate.Property{
	animate.PropertyHeight,
	animate.PropertyWidth,
	animate.PropertyAngle,
	animate.PropertyAlpha,
	animate.PropertyX,
	animate.PropertyY,
	animate.PropertyXOrigin,
	animate.PropertyYOrigin,
	animate.PropertyXOffset,
	animate.PropertyYOffset,
	animate.PropertyFontSize,
	animate.PropertyBackgroundAlpha,
	animate.PropertyMaxWidth,
	animate.PropertyMaxHeight,
	animate.PropertyLayer,
	animate.PropertyVolume,
	animate.PropertyMonitor,
}

func menuScrollAnimation(cur, next view.Info, scrollTime float64) *animate.Animation {
	set := animate.NewTweenSet()
	for _, p := range scrollProperties {
		set.Push(animate.NewTween(p, animate.Linear, property(&cur, p), property(&next, p), scrollTime))
	}
	return animate.NewAnimation(set)
}

// AllocateSpritePoints builds a component for every slot. A slot keeps its
// previous view unless a new item was selected.
func (l *ScrollingList) AllocateSpritePoints() {
	n := len(l.items)
	if n == 0 || len(l.points) == 0 {
		return
	}
	for i := range l.slots {
		old := l.slots[i]
		l.allocateTexture(i, l.items[LoopIncrement(l.itemIndex, i, n)])
		c := l.slots[i]
		l.resetTweens(c, l.tweenPoints[i], l.points[i], l.points[i], 0)
		if old != nil && old != c {
			if !l.newItemSelected {
				*c.View() = *old.View()
			}
			old.FreeGraphicsMemory()
		}
	}
}

// DeallocateSpritePoints frees every slot component.
func (l *ScrollingList) DeallocateSpritePoints() {
	for i, c := range l.slots {
		if c != nil {
			c.FreeGraphicsMemory()
			l.slots[i] = nil
		}
	}
}

func (l *ScrollingList) reallocate(index int, item *collection.Item) {
	if c := l.slots[index]; c != nil {
		c.FreeGraphicsMemory()
		l.slots[index] = nil
	}
	l.allocateTexture(index, item)
}

// allocateTexture resolves artwork for item into slot index. Video is
// tried before images when a video type is set; a text label of the title
// is the last resort.
func (l *ScrollingList) allocateTexture(index int, item *collection.Item) {
	if index < 0 || index >= len(l.slots) || item == nil {
		return
	}
	names := artNames(item, l.opts.ImageType)

	var c Component
	if hasMedia(l.opts.VideoType) {
		c = l.searchArt(item, names, l.opts.VideoType, true)
	}
	if c == nil {
		c = l.searchArt(item, names, l.opts.ImageType, false)
	}
	if c == nil {
		c = NewText(l.host, item.Title, l.font, l.info.Monitor)
	}
	c.AllocateGraphicsMemory()
	l.slots[index] = c
}

func (l *ScrollingList) searchArt(item *collection.Item, names []string, mediaType string, video bool) Component {
	open := func(dir, name string) Component {
		if video {
			return openVideo(l.host, dir, name, videoLoops, l.info.Monitor)
		}
		return openImage(l.host, dir, name, l.info.Monitor)
	}
	for _, name := range names {
		name = safeName(name)
		if c := open(l.art.mediaDir(l.collectionName, mediaType), name); c != nil {
			return c
		}
		if !l.opts.CommonMode {
			if c := open(l.art.mediaDir(item.CollectionName(), mediaType), name); c != nil {
				return c
			}
		}
	}
	if c := open(l.art.systemDir(item.Name, mediaType), mediaType); c != nil {
		return c
	}
	if item.Filepath != "" {
		return open(item.Filepath, mediaType)
	}
	return nil
}

// TriggerEventOnAll triggers event on the list and every slot.
func (l *ScrollingList) TriggerEventOnAll(event string, menuIndex int) {
	l.TriggerEvent(event, menuIndex)
	for _, c := range l.slots {
		if c != nil {
			c.TriggerEvent(event, menuIndex)
		}
	}
}

func (l *ScrollingList) SetNewScrollItemSelected() {
	l.Base.SetNewScrollItemSelected()
	for _, c := range l.slots {
		if c != nil {
			c.SetNewScrollItemSelected()
		}
	}
}

func (l *ScrollingList) Update(dt float64) {
	l.Base.Update(dt)
	for _, c := range l.slots {
		if c != nil {
			c.Update(dt)
		}
	}
	l.newItemSelected = false
	l.newScrollItemSelected = false
}

// DrawLayer draws the slots on layer.
func (l *ScrollingList) DrawLayer(layer int) {
	for _, c := range l.slots {
		if c != nil && c.View().Layer == layer {
			c.Draw()
		}
	}
}

func (l *ScrollingList) AllocateGraphicsMemory() {
	l.Base.AllocateGraphicsMemory()
	l.scrollPeriod = l.startScrollTime
	l.AllocateSpritePoints()
}

func (l *ScrollingList) FreeGraphicsMemory() {
	l.Base.FreeGraphicsMemory()
	l.scrollPeriod = 0
	l.DeallocateSpritePoints()
}

func (l *ScrollingList) IsIdle() bool {
	if !l.Base.IsIdle() {
		return false
	}
	for _, c := range l.slots {
		if c != nil && !c.IsIdle() {
			return false
		}
	}
	return true
}

func (l *ScrollingList) IsAttractIdle() bool {
	if !l.Base.IsAttractIdle() {
		return false
	}
	for _, c := range l.slots {
		if c != nil && !c.IsAttractIdle() {
			return false
		}
	}
	return true
}

// IsScrollingListIdle reports whether every slot finished its animation.
func (l *ScrollingList) IsScrollingListIdle() bool {
	for _, c := range l.slots {
		if c != nil && !c.IsIdle() {
			return false
		}
	}
	return true
}
