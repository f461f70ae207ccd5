package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
)

// ErrNoPoster is returned when a media file has no still image beside it.
var ErrNoPoster = errors.New("player: no poster image")

// DefaultStillDuration is how long one loop of a still frame lasts.
const DefaultStillDuration = 30 * time.Second

// StillPlayer stands in for a video decoder: it shows the poster image
// stored next to the media file (game.mp4 -> game.png) and keeps a clock
// so looping, skipping and pausing behave as they would for a clip of
// fixed length.
type StillPlayer struct {
	renderer component.Renderer
	duration float64

	texture component.Texture
	loops   int
	elapsed float64
	playing bool
	paused  bool
	volume  float32
}

func NewStillPlayer(r component.Renderer, duration time.Duration) *StillPlayer {
	if duration <= 0 {
		duration = DefaultStillDuration
	}
	return &StillPlayer{renderer: r, duration: duration.Seconds(), volume: 1}
}

// posterPath finds the image sharing the media file's base name.
func posterPath(path string) (string, bool) {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return component.FindFile(dir, base, component.ImageExtensions)
}

// Play shows the poster for path. loops <= 0 repeats forever.
func (p *StillPlayer) Play(path string, loops int) error {
	p.Stop()
	poster, ok := posterPath(path)
	if !ok {
		return ErrNoPoster
	}
	tex, err := p.renderer.LoadTexture(poster)
	if err != nil {
		return err
	}
	p.texture = tex
	p.loops = loops
	p.elapsed = 0
	p.playing = true
	p.paused = false
	return nil
}

func (p *StillPlayer) Stop() {
	if p.texture != nil {
		p.renderer.Destroy(p.texture)
		p.texture = nil
	}
	p.playing = false
	p.paused = false
}

func (p *StillPlayer) Update(dt float64) {
	if !p.playing || p.paused {
		return
	}
	p.advance(dt)
}

func (p *StillPlayer) advance(seconds float64) {
	p.elapsed += seconds
	if p.elapsed < 0 {
		p.elapsed = 0
	}
	if p.loops > 0 && p.elapsed >= p.duration*float64(p.loops) {
		p.playing = false
	}
}

func (p *StillPlayer) Texture() component.Texture {
	if !p.playing {
		return nil
	}
	return p.texture
}

func (p *StillPlayer) Size() (w, h int32) {
	if p.texture == nil {
		return 0, 0
	}
	return p.texture.Size()
}

func (p *StillPlayer) IsPlaying() bool { return p.playing }
func (p *StillPlayer) SetVolume(volume float32) { p.volume = volume }

// Pause toggles.
func (p *StillPlayer) Pause() {
	if p.playing {
		p.paused = !p.paused
	}
}

func (p *StillPlayer) IsPaused() bool { return p.paused }

func (p *StillPlayer) Restart() {
	if p.texture != nil {
		p.elapsed = 0
		p.playing = true
	}
}

func (p *StillPlayer) Skip(seconds float64) {
	if p.playing {
		p.advance(seconds)
	}
}

func (p *StillPlayer) SkipPercent(percent float64) {
	if p.playing {
		p.advance(p.duration * percent / 100)
	}
}
