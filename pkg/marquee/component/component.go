// Package component implements the drawable pieces of a page. Every variant
// embeds Base, which owns the view and the animation playback cursor.
package component

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// Component is the closed set of page elements: Container, Image, Text,
// Video, ReloadableMedia, ReloadableText, ReloadableScrollingText and
// ScrollingList.
type Component interface {
	Update(dt float64)
	Draw()
	AllocateGraphicsMemory()
	FreeGraphicsMemory()

	TriggerEvent(event string, menuIndex int)
	SetMenuIndex(index int)
	IsIdle() bool
	IsAttractIdle() bool
	IsMenuScrolling() bool
	IsPlaying() bool
	IsJukeboxPlaying() bool

	View() *view.Info
	SetTweens(events *animate.Events)
	Tweens() *animate.Events

	SetNewItemSelected()
	SetNewScrollItemSelected()
	SetCollectionName(name string)
	SetPlaylistName(name string)
	PlaylistName() string
	MenuScrollReload() bool
	SetMenuScrollReload(reload bool)

	ID() int
	SetID(id int)
	SetText(text string, id int)
	SetImage(path string, id int)

	SkipForward()
	SkipBackward()
	SkipForwardP()
	SkipBackwardP()
	Pause()
	Restart()
	IsPaused() bool
}
