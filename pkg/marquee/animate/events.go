package animate

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// DefaultIndex keys the animation used when no per-index entry exists.
const DefaultIndex = -1

// Event names triggered by the frontend.
const (
	EventEnter                 = "enter"
	EventExit                  = "exit"
	EventIdle                  = "idle"
	EventMenuIdle              = "menuIdle"
	EventMenuScroll            = "menuScroll"
	EventHighlightEnter        = "highlightEnter"
	EventHighlightExit         = "highlightExit"
	EventMenuEnter             = "menuEnter"
	EventMenuExit              = "menuExit"
	EventGameEnter             = "gameEnter"
	EventGameExit              = "gameExit"
	EventPlaylistEnter         = "playlistEnter"
	EventPlaylistExit          = "playlistExit"
	EventPlaylistNextEnter     = "playlistNextEnter"
	EventPlaylistNextExit      = "playlistNextExit"
	EventPlaylistPrevEnter     = "playlistPrevEnter"
	EventPlaylistPrevExit      = "playlistPrevExit"
	EventMenuJumpEnter         = "menuJumpEnter"
	EventMenuJumpExit          = "menuJumpExit"
	EventAttractEnter          = "attractEnter"
	EventAttract               = "attract"
	EventAttractExit           = "attractExit"
	EventJukeboxJump           = "jukeboxJump"
	EventMenuActionInputEnter  = "menuActionInputEnter"
	EventMenuActionInputExit   = "menuActionInputExit"
	EventMenuActionSelectEnter = "menuActionSelectEnter"
	EventMenuActionSelectExit  = "menuActionSelectExit"
)

// empty is returned for lookups that match nothing. It has no phases and is
// never mutated.
var empty = &Animation{}

// Events maps (event name, menu index) to an Animation.
type Events struct {
	animations map[string]map[int]*Animation
}

// NewEvents returns an empty registry.
func NewEvents() *Events {
	return &Events{animations: make(map[string]map[int]*Animation)}
}

// Set registers anim for event at index. Use DefaultIndex for the fallback.
func (e *Events) Set(event string, index int, anim *Animation) {
	byIndex, ok := e.animations[event]
	if !ok {
		byIndex = make(map[int]*Animation)
		e.animations[event] = byIndex
	}
	byIndex[index] = anim
}

// Get returns the animation for event at index, falling back to the default
// index. It never returns nil: unmatched lookups yield an empty Animation.
func (e *Events) Get(event string, index int) *Animation {
	if e == nil {
		return empty
	}
	byIndex, ok := e.animations[event]
	if !ok {
		return empty
	}
	if a, ok := byIndex[index]; ok && a != nil {
		return a
	}
	if a, ok := byIndex[DefaultIndex]; ok && a != nil {
		return a
	}
	return empty
}

// Default is Get at DefaultIndex.
func (e *Events) Default(event string) *Animation {
	return e.Get(event, DefaultIndex)
}

// Has reports whether anything is registered for event.
func (e *Events) Has(event string) bool {
	if e == nil {
		return false
	}
	return len(e.animations[event]) > 0
}

// With returns a copy of e where event at every index plays anim. The copy
// shares all other definitions with e; e is left untouched.
func (e *Events) With(event string, anim *Animation) *Events {
	out := NewEvents()
	if e != nil {
		for name, byIndex := range e.animations {
			if name == event {
				continue
			}
			out.animations[name] = byIndex
		}
	}
	out.Set(event, DefaultIndex, anim)
	return out
}

// Without returns a copy of e with event removed.
func (e *Events) Without(event string) *Events {
	out := NewEvents()
	if e != nil {
		for name, byIndex := range e.animations {
			if name != event {
				out.animations[name] = byIndex
			}
		}
	}
	return out
}

// ExpandIndex resolves a layout menuIndex selector into concrete indices.
//
//	""   -> [-1]
//	"N"  -> [N]
//	"!N" -> every index in [0, MenuIndexHigh-1) except N
//	"<N" -> every index in [0, MenuIndexHigh-1) below N
//	">N" -> every index in [0, MenuIndexHigh-1) above N
//	"i"  -> [MenuIndexHigh]
//
// Malformed numbers resolve as 0, matching how layouts have always been read.
func ExpandIndex(selector string) []int {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return []int{DefaultIndex}
	}
	var keep func(i, n int) bool
	switch selector[0] {
	case '!':
		keep = func(i, n int) bool { return i != n }
	case '<':
		keep = func(i, n int) bool { return i < n }
	case '>':
		keep = func(i, n int) bool { return i > n }
	case 'i', 'I':
		return []int{constants.MenuIndexHigh}
	default:
		return []int{atoi(selector)}
	}
	n := atoi(selector[1:])
	var out []int
	for i := 0; i < constants.MenuIndexHigh-1; i++ {
		if keep(i, n) {
			out = append(out, i)
		}
	}
	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
