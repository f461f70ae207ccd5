package component

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// playback is the per-component cursor into a shared Animation.
type playback struct {
	animationType string
	requestedType string
	requested     bool
	menuIndex     int

	current  *animate.Animation
	phase    int
	elapsed  float64
	complete bool

	// store is the view snapshot relative tweens start from.
	store view.Info
}

func newPlayback() playback {
	return playback{menuIndex: -1, complete: true}
}

// Base carries what every component shares: its view, its animation
// definitions and the playback cursor over them.
type Base struct {
	host   Host
	info   view.Info
	tweens *animate.Events
	play   playback

	background Texture

	newItemSelected       bool
	newScrollItemSelected bool
	menuScrollReload      bool
	collectionName        string
	playlistName          string
	id                    int
}

// NewBase returns a Base with default view attributes.
func NewBase(host Host) Base {
	return Base{
		host: host,
		info: view.New(),
		play: newPlayback(),
		id:   -1,
	}
}

func (b *Base) View() *view.Info {
	return &b.info
}

func (b *Base) SetTweens(events *animate.Events) {
	b.tweens = events
}

func (b *Base) Tweens() *animate.Events {
	return b.tweens
}

// TriggerEvent requests event on the next Update. Negative menu indices
// resolve as 0, which falls back to the default animation.
func (b *Base) TriggerEvent(event string, menuIndex int) {
	b.play.requestedType = event
	b.play.requested = true
	b.play.menuIndex = max(menuIndex, 0)
}

func (b *Base) SetMenuIndex(index int) {
	b.play.menuIndex = index
}

// IsIdle is true once the animation finished or while an idle-class
// animation loops.
func (b *Base) IsIdle() bool {
	switch b.play.animationType {
	case animate.EventIdle, animate.EventMenuIdle, animate.EventAttract:
		return true
	}
	return b.play.complete
}

func (b *Base) IsAttractIdle() bool {
	switch b.play.animationType {
	case animate.EventIdle, animate.EventMenuIdle:
		return true
	}
	return b.play.complete
}

func (b *Base) IsMenuScrolling() bool {
	return !b.play.complete && b.play.animationType == animate.EventMenuScroll
}

func (b *Base) IsPlaying() bool { return false }
func (b *Base) IsJukeboxPlaying() bool { return false }

func (b *Base) SetNewItemSelected() { b.newItemSelected = true }
func (b *Base) SetNewScrollItemSelected() { b.newScrollItemSelected = true }

func (b *Base) SetCollectionName(name string) { b.collectionName = name }
func (b *Base) SetPlaylistName(name string) { b.playlistName = name }
func (b *Base) PlaylistName() string { return b.playlistName }

func (b *Base) MenuScrollReload() bool { return b.menuScrollReload }
func (b *Base) SetMenuScrollReload(reload bool) { b.menuScrollReload = reload }

func (b *Base) ID() int { return b.id }
func (b *Base) SetID(id int) { b.id = id }

func (b *Base) SetText(string, int) {}
func (b *Base) SetImage(string, int) {}

func (b *Base) SkipForward() {}
func (b *Base) SkipBackward() {}
func (b *Base) SkipForwardP() {}
func (b *Base) SkipBackwardP() {}
func (b *Base) Pause() {}
func (b *Base) Restart() {}
func (b *Base) IsPaused() bool { return false }

// AllocateGraphicsMemory creates the background quad texture.
func (b *Base) AllocateGraphicsMemory() {
	if b.background != nil || b.host == nil {
		return
	}
	tex, err := b.host.Renderer().CreateSolid(4, 4)
	if err != nil {
		logging.GetInternalLogger().Warn("Could not create background texture", "error", err)
		return
	}
	b.background = tex
}

// FreeGraphicsMemory resets playback and releases the background.
func (b *Base) FreeGraphicsMemory() {
	b.play = newPlayback()
	b.newItemSelected = false
	if b.background != nil {
		b.host.Renderer().Destroy(b.background)
		b.background = nil
	}
}

// Update advances playback by dt seconds.
func (b *Base) Update(dt float64) {
	p := &b.play
	p.elapsed += dt

	if p.requested {
		anim := b.lookup(p.requestedType, p.menuIndex)
		if anim.Len() > 0 {
			p.animationType = p.requestedType
			p.current = anim
			p.phase = 0
			p.elapsed = 0
			p.store = b.info
			p.complete = false
		}
		p.requested = false
	}

	if b.tweens != nil && p.complete {
		p.animationType = animate.EventIdle
		p.current = b.tweens.Get(animate.EventIdle, p.menuIndex)
		if p.current.Len() == 0 && (b.host == nil || !b.host.IsMenuScrolling()) {
			p.current = b.tweens.Get(animate.EventMenuIdle, p.menuIndex)
		}
		p.phase = 0
		p.elapsed = 0
		p.store = b.info
		p.complete = false
		p.requested = false
	}

	p.complete = b.animate()
	if p.complete {
		p.current = nil
		p.phase = 0
	}
}

// lookup resolves event for menuIndex. Indices at or past MenuIndexHigh
// first try the focused-column slot, then the index within the band.
func (b *Base) lookup(event string, menuIndex int) *animate.Animation {
	if menuIndex >= constants.MenuIndexHigh {
		if anim := b.tweens.Get(event, constants.MenuIndexHigh); anim.Len() > 0 {
			return anim
		}
		return b.tweens.Get(event, menuIndex-constants.MenuIndexHigh)
	}
	return b.tweens.Get(event, menuIndex)
}

// animate applies the current phase and reports whether the animation is
// complete.
func (b *Base) animate() bool {
	p := &b.play
	if p.current == nil || p.phase >= p.current.Len() {
		return true
	}

	done := true
	for _, t := range p.current.Set(p.phase).Tweens() {
		elapsed := p.elapsed
		if elapsed < t.Duration {
			done = false
		} else {
			elapsed = t.Duration
		}
		if t.Property == animate.PropertyNop {
			continue
		}
		value := float32(t.End)
		if t.Duration > 0 {
			value = t.Value(elapsed, property(&p.store, t.Property))
		}
		setProperty(&b.info, t.Property, value)
	}

	if done {
		p.phase++
		p.elapsed = 0
		p.store = b.info
	}
	return p.phase >= p.current.Len()
}

// Draw renders the background quad when one is configured.
func (b *Base) Draw() {
	if b.background == nil || b.info.BackgroundAlpha <= 0 {
		return
	}
	v := b.info
	r := b.host.Renderer()
	r.SetColorMod(b.background, channel(v.BackgroundRed), channel(v.BackgroundGreen), channel(v.BackgroundBlue))
	dst := Rect{
		X: int32(v.XRelativeToOrigin()),
		Y: int32(v.YRelativeToOrigin()),
		W: int32(v.ScaledWidth()),
		H: int32(v.ScaledHeight()),
	}
	r.Copy(b.background, v.BackgroundAlpha, nil, dst, v, b.host.LayoutWidth(v.Monitor), b.host.LayoutHeight(v.Monitor))
}

// channel maps a 0..1 colour component to a byte.
func channel(c float32) uint8 {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 255
	}
	return uint8(c * 255)
}

func (b *Base) layoutSize() (int, int) {
	return b.host.LayoutWidth(b.info.Monitor), b.host.LayoutHeight(b.info.Monitor)
}
