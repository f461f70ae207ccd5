package layout

import (
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// Menu item positions a vertical menu <item index> may name besides a
// plain slot number.
const (
	menuFirst = 0  // first visible slot
	menuStart = -1 // where the first item goes after scrolling off
	menuEnd   = -2 // where the last item goes after scrolling off
	menuLast  = -3 // last visible slot
)

func menuPosition(s string) int {
	switch s {
	case "start":
		return menuStart
	case "end":
		return menuEnd
	case "last":
		return menuLast
	case "first":
		return menuFirst
	}
	return toInt(s)
}

func (d *doc) menu(n *node) *component.ScrollingList {
	defaults := n.first("itemDefaults")
	if defaults == nil {
		logging.GetInternalLogger().Warn("Menu tag is missing <itemDefaults> tag")
	}

	opts := component.ListOptions{ImageType: "null", VideoType: "null"}
	if v, ok := n.attr("imageType"); ok {
		opts.ImageType = v
		opts.PlaylistType = strings.HasPrefix(v, "playlist")
	}
	if v, ok := n.attr("videoType"); ok {
		opts.VideoType = v
		opts.PlaylistType = opts.PlaylistType || strings.HasPrefix(v, "playlist")
	}
	m := parseMode(n)
	opts.LayoutMode = m.layout && !m.system
	opts.CommonMode = m.common
	if v, _ := n.attr("orientation"); v == "horizontal" {
		opts.Horizontal = true
	}

	l := component.NewScrollingList(d.page, d.conf, d.font(defaults, nil), opts)
	d.viewInfo(n, nil, l.View())

	if n.has("scrollTime") {
		l.SetStartScrollTime(n.floatOr("scrollTime", 0))
	}
	if n.has("scrollAcceleration") {
		v := n.floatOr("scrollAcceleration", 0)
		l.SetScrollAcceleration(v)
		l.SetMinScrollTime(v)
	}
	if n.has("minScrollTime") {
		l.SetMinScrollTime(n.floatOr("minScrollTime", 0))
	}

	if v, _ := n.attr("type"); v == "custom" {
		d.customMenu(l, n, defaults)
	} else {
		d.verticalMenu(l, n, defaults)
	}
	l.SetTweens(d.tweens(n))
	return l
}

// customMenu places one slot per <item>, in document order.
func (d *doc) customMenu(l *component.ScrollingList, n, defaults *node) {
	var (
		points []view.Info
		tweens []*animate.Events
	)
	for i, item := range n.children("item") {
		info := view.New()
		d.viewInfo(item, defaults, &info)
		info.Monitor = l.View().Monitor
		points = append(points, info)
		tweens = append(tweens, d.tweens(item))
		if item.has("selected") {
			l.SetSelectedOffset(i)
		}
	}
	l.SetPoints(points, tweens)
}

// verticalMenu stacks slots from the top of the menu until the next one
// would not fit. Items with an index attribute override the defaults of
// that slot; start and end add an off screen slot on either side.
func (d *doc) verticalMenu(l *component.ScrollingList, n, defaults *node) {
	logger := logging.GetInternalLogger()
	overrides := make(map[int]*node)
	selected := menuFirst
	for _, item := range n.children("item") {
		index, ok := item.attr("index")
		if !ok {
			continue
		}
		pos := menuPosition(index)
		overrides[pos] = item
		if item.has("selected") {
			selected = pos
		}
	}

	var (
		points []view.Info
		tweens []*animate.Events
	)
	push := func(c *node, y float32) view.Info {
		info := view.New()
		d.viewInfo(c, defaults, &info)
		info.Y = y
		points = append(points, info)
		tweens = append(tweens, d.tweens(c))
		return info
	}

	top := l.View().Y
	bottom := l.View().Height
	var height float32

	if c, ok := overrides[menuStart]; ok {
		info := push(c, top+height)
		height += info.Height
		selected++
	}

	for index := 0; ; index++ {
		c := defaults
		if o, ok := overrides[index]; ok {
			c = o
		}
		next := d.slotBottom(c, defaults, height)
		end := next >= bottom
		if c, ok := overrides[menuLast]; ok && end {
			push(c, top+height)
			next = d.slotBottom(c, defaults, height)
		} else {
			push(c, top+height)
		}
		if end {
			height = next
			break
		}
		if next <= height {
			logger.Error("Menu item has no height, stopping", "slots", len(points))
			break
		}
		height = next
	}

	if c, ok := overrides[menuEnd]; ok {
		push(c, top+height)
	}

	if selected < 0 || selected >= len(points) {
		logger.Error("Selected menu item is out of range", "selected", selected, "points", len(points))
		selected = 0
	}
	l.SetSelectedOffset(selected)
	l.SetPoints(points, tweens)
}

// slotBottom is where the slot described by c ends when it starts at
// height, including its spacing.
func (d *doc) slotBottom(c, defaults *node, height float32) float32 {
	info := view.New()
	d.viewInfo(c, defaults, &info)
	return height + info.Height + float32(c.intOr("spacing", 0))
}
