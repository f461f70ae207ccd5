package page

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
)

// eachItemMenu calls fn for the active lists that show items.
func (p *Page) eachItemMenu(fn func(l *component.ScrollingList)) {
	for _, l := range p.activeMenu {
		if !l.IsPlaylist() {
			fn(l)
		}
	}
}

// Scroll moves the item lists one step and plays the highlight sound.
func (p *Page) Scroll(forward bool) {
	p.eachItemMenu(func(l *component.ScrollingList) {
		l.Scroll(forward)
	})
	p.OnNewScrollItemSelected()
	if p.sounds.Highlight != nil {
		p.sounds.Highlight.Play()
	}
}

func (p *Page) ResetScrollPeriod() {
	for _, l := range p.activeMenu {
		l.ResetScrollPeriod()
	}
}

func (p *Page) UpdateScrollPeriod() {
	for _, l := range p.activeMenu {
		l.UpdateScrollPeriod()
	}
}

// PageScroll jumps a page and aligns every active list on the result.
func (p *Page) PageScroll(direction ScrollDirection) {
	primary := p.primaryMenu()
	if primary == nil {
		return
	}
	switch direction {
	case ScrollForward:
		primary.PageDown()
	case ScrollBack:
		primary.PageUp()
	}
	index := primary.ScrollOffsetIndex()
	for _, l := range p.activeMenu {
		l.SetScrollOffsetIndex(index)
	}
}

// SelectRandom picks a random item in every item list.
func (p *Page) SelectRandom() {
	primary := p.primaryMenu()
	if primary == nil {
		return
	}
	primary.Random()
	index := primary.ScrollOffsetIndex()
	p.eachItemMenu(func(l *component.ScrollingList) {
		l.SetScrollOffsetIndex(index)
	})
}

// LetterScroll jumps to the next (forward) or previous letter group.
func (p *Page) LetterScroll(direction ScrollDirection) {
	p.eachItemMenu(func(l *component.ScrollingList) {
		switch direction {
		case ScrollForward:
			l.LetterDown()
		case ScrollBack:
			l.LetterUp()
		}
	})
}

// CfwLetterSubScroll jumps by letter inside the home collection and by
// sub-collection outside it.
func (p *Page) CfwLetterSubScroll(direction ScrollDirection) {
	p.eachItemMenu(func(l *component.ScrollingList) {
		switch direction {
		case ScrollForward:
			l.CfwLetterSubDown()
		case ScrollBack:
			l.CfwLetterSubUp()
		}
	})
}

// SubScroll jumps to the next or previous sub-collection.
func (p *Page) SubScroll(direction ScrollDirection) {
	p.eachItemMenu(func(l *component.ScrollingList) {
		switch direction {
		case ScrollForward:
			l.SubDown()
		case ScrollBack:
			l.SubUp()
		}
	})
}

// IsHorizontalScroll reports whether the active list scrolls sideways.
func (p *Page) IsHorizontalScroll() bool {
	if l := p.primaryMenu(); l != nil {
		return l.Options().Horizontal
	}
	return false
}

// ScrollOffsetIndex is the selection of the active lists, -1 without one.
func (p *Page) ScrollOffsetIndex() int {
	if l := p.primaryMenu(); l != nil {
		return l.ScrollOffsetIndex()
	}
	return -1
}

func (p *Page) SetScrollOffsetIndex(index int) {
	if p.primaryMenu() == nil {
		return
	}
	p.eachItemMenu(func(l *component.ScrollingList) {
		l.SetScrollOffsetIndex(index)
	})
}
