package marquee

import (
	"math/rand/v2"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
)

// AttractResult is what Update asks the run loop to do.
type AttractResult int

const (
	AttractNothing AttractResult = iota
	AttractNextPlaylist
	AttractNextCollection
)

// jukeboxIdle is how long a silent jukebox page waits before attract mode
// starts scrolling, in seconds.
const jukeboxIdle = 10

// attractPage is the part of a page attract mode drives.
type attractPage interface {
	IsJukebox() bool
	IsJukeboxPlaying() bool
	IsMenuIdle() bool
	SetScrolling(direction page.ScrollDirection)
	Scroll(forward bool)
	UpdateScrollPeriod()
	ResetScrollPeriod()
}

// AttractMode scrolls the menu on its own after the frontend sat idle.
// Times are in seconds except MinTime and MaxTime, which bound the random
// length of one scroll burst in milliseconds.
type AttractMode struct {
	IdleTime           float64
	IdleNextTime       float64
	IdlePlaylistTime   float64
	IdleCollectionTime float64
	MinTime            int
	MaxTime            int

	// IsFast accelerates every attract scroll like a held key.
	IsFast bool

	active            bool
	set               bool
	elapsed           float64
	elapsedPlaylist   float64
	elapsedCollection float64
	activeTime        float64
	intn              func(n int) int
}

// NewAttractMode reads the attractMode* settings.
func NewAttractMode(conf *config.Store) *AttractMode {
	return &AttractMode{
		IdleTime:           float64(conf.IntOr("attractModeTime", 0)),
		IdleNextTime:       float64(conf.IntOr("attractModeNextTime", 0)),
		IdlePlaylistTime:   float64(conf.IntOr("attractModePlaylistTime", 0)),
		IdleCollectionTime: float64(conf.IntOr("attractModeCollectionTime", 0)),
		MinTime:            conf.IntOr("attractModeMinTime", 1000),
		MaxTime:            conf.IntOr("attractModeMaxTime", 5000),
		IsFast:             conf.BoolOr("attractModeFast", false),
	}
}

// Reset stops the current burst. With set false attract mode is left
// entirely and the playlist and collection timers restart.
func (a *AttractMode) Reset(set bool) {
	a.elapsed = 0
	a.active = false
	a.set = set
	a.activeTime = 0
	if !set {
		a.elapsedPlaylist = 0
		a.elapsedCollection = 0
	}
}

// Activate starts a scroll burst now.
func (a *AttractMode) Activate() {
	a.active = true
	a.set = true
	a.elapsed = 0
	a.activeTime = a.burst()
}

// IsActive is true during a scroll burst.
func (a *AttractMode) IsActive() bool { return a.active }

// IsSet is true from the first burst until the next Reset(false).
func (a *AttractMode) IsSet() bool { return a.set }

func (a *AttractMode) burst() float64 {
	ms := a.MinTime
	if span := a.MaxTime - a.MinTime; span > 0 {
		intn := a.intn
		if intn == nil {
			intn = rand.IntN
		}
		ms += intn(span)
	}
	return float64(ms) / 1000
}

// Update advances the timers by dt seconds and scrolls p while a burst
// runs.
func (a *AttractMode) Update(dt float64, p attractPage) AttractResult {
	a.elapsed += dt
	a.elapsedPlaylist += dt
	a.elapsedCollection += dt

	if p.IsJukebox() {
		if !a.active && !p.IsJukeboxPlaying() && a.elapsed > jukeboxIdle {
			a.Activate()
		}
	} else {
		if !a.active && a.IdlePlaylistTime > 0 && a.elapsedPlaylist > a.IdlePlaylistTime {
			a.elapsed = 0
			a.elapsedPlaylist = 0
			return AttractNextPlaylist
		}

		if !a.active && a.IdleCollectionTime > 0 && a.elapsedCollection > a.IdleCollectionTime {
			a.elapsed = 0
			a.elapsedPlaylist = 0
			a.elapsedCollection = 0
			return AttractNextCollection
		}

		idle := a.IdleTime > 0 && a.elapsed > a.IdleTime
		next := a.set && a.IdleNextTime > 0 && a.elapsed > a.IdleNextTime
		if !a.active && (idle || next) {
			if !a.set {
				a.elapsedPlaylist = 0
			}
			a.Activate()
			if !a.IsFast {
				p.ResetScrollPeriod()
			}
		}
	}

	if a.active {
		p.SetScrolling(page.ScrollForward)
		if p.IsMenuIdle() {
			p.Scroll(true)
			if a.IsFast {
				p.UpdateScrollPeriod()
			}
		}
		if a.elapsed > a.activeTime {
			a.elapsed = 0
			a.active = false
		}
	}
	return AttractNothing
}
