package page

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// broadcast triggers event on every list and component. Lists at the
// active depth receive it at MenuIndexHigh+depth-1 so layouts can address
// the focused column; everything else receives depth-1.
func (p *Page) broadcast(event string) {
	if p.selectedItem == nil {
		return
	}
	index := p.menuDepth - 1
	p.eachMenu(func(depth int, l *component.ScrollingList) {
		i := index
		if depth == index {
			i = constants.MenuIndexHigh + index
		}
		l.TriggerEventOnAll(event, i)
	})
	for _, c := range p.components {
		c.TriggerEvent(event, index)
	}
}

// Start plays the enter animations and the load sound.
func (p *Page) Start() {
	p.eachMenu(func(_ int, l *component.ScrollingList) {
		l.TriggerEventOnAll(animate.EventEnter, -1)
	})
	if p.sounds.Load != nil {
		p.sounds.Load.Play()
	}
	for _, c := range p.components {
		c.TriggerEvent(animate.EventEnter, -1)
	}
}

// Stop plays the exit animations and the unload sound.
func (p *Page) Stop() {
	p.eachMenu(func(_ int, l *component.ScrollingList) {
		l.TriggerEventOnAll(animate.EventExit, -1)
	})
	if p.sounds.Unload != nil {
		p.sounds.Unload.Play()
	}
	for _, c := range p.components {
		c.TriggerEvent(animate.EventExit, -1)
	}
}

// TriggerEvent triggers a named action on the free components only.
func (p *Page) TriggerEvent(event string) {
	for _, c := range p.components {
		c.TriggerEvent(event, p.menuDepth-1)
	}
}

func (p *Page) EnterMenu() { p.broadcast(animate.EventMenuEnter) }
func (p *Page) ExitMenu() { p.broadcast(animate.EventMenuExit) }
func (p *Page) EnterGame() { p.broadcast(animate.EventGameEnter) }
func (p *Page) ExitGame() { p.broadcast(animate.EventGameExit) }
func (p *Page) HighlightEnter() { p.broadcast(animate.EventHighlightEnter) }
func (p *Page) HighlightExit() { p.broadcast(animate.EventHighlightExit) }
func (p *Page) PlaylistExit() { p.broadcast(animate.EventPlaylistExit) }
func (p *Page) MenuJumpExit() { p.broadcast(animate.EventMenuJumpExit) }
func (p *Page) AttractEnter() { p.broadcast(animate.EventAttractEnter) }
func (p *Page) Attract() { p.broadcast(animate.EventAttract) }
func (p *Page) AttractExit() { p.broadcast(animate.EventAttractExit) }
func (p *Page) JukeboxJump() { p.broadcast(animate.EventJukeboxJump) }

// PlaylistEnter refreshes the selection before announcing the playlist.
func (p *Page) PlaylistEnter() {
	p.setSelectedItem()
	p.broadcast(animate.EventPlaylistEnter)
}

func (p *Page) MenuJumpEnter() {
	p.setSelectedItem()
	p.broadcast(animate.EventMenuJumpEnter)
}

func (p *Page) PlaylistNextEnter() {
	p.fromPlaylistNav = true
	p.fromPreviousPlaylist = false
	p.broadcast(animate.EventPlaylistNextEnter)
}

func (p *Page) PlaylistPrevEnter() {
	p.fromPlaylistNav = true
	p.fromPreviousPlaylist = true
	p.broadcast(animate.EventPlaylistPrevEnter)
}

func (p *Page) PlaylistNextExit() {
	p.fromPlaylistNav = false
	p.broadcast(animate.EventPlaylistNextExit)
}

func (p *Page) PlaylistPrevExit() {
	p.fromPlaylistNav = false
	p.broadcast(animate.EventPlaylistPrevExit)
}

// FromPlaylistNav reports whether the last playlist change came from
// next/prev navigation, and if so whether it went backwards.
func (p *Page) FromPlaylistNav() (nav, previous bool) {
	return p.fromPlaylistNav, p.fromPreviousPlaylist
}

// OnNewItemSelected makes every list and component reload for the current
// selection.
func (p *Page) OnNewItemSelected() {
	if p.primaryMenu() == nil {
		return
	}
	p.setSelectedItem()
	p.eachMenu(func(_ int, l *component.ScrollingList) {
		l.SetNewItemSelected()
	})
	for _, c := range p.components {
		c.SetNewItemSelected()
	}
}

// OnNewScrollItemSelected notifies components that reload while scrolling.
func (p *Page) OnNewScrollItemSelected() {
	if p.primaryMenu() == nil {
		return
	}
	for _, c := range p.components {
		c.SetNewScrollItemSelected()
	}
}

// HighlightLoadArt caches the selection and reloads the components for it.
func (p *Page) HighlightLoadArt() {
	if p.primaryMenu() == nil {
		return
	}
	p.setSelectedItem()
	for _, c := range p.components {
		c.SetNewItemSelected()
	}
}

// SetScrolling records the scroll state. Leaving idle triggers menuScroll
// on the components.
func (p *Page) SetScrolling(direction ScrollDirection) {
	if direction == ScrollIdle {
		p.scrollActive = false
		return
	}
	if !p.scrollActive && p.selectedItem != nil {
		for _, c := range p.components {
			c.TriggerEvent(animate.EventMenuScroll, p.menuDepth-1)
		}
	}
	p.scrollActive = true
}
