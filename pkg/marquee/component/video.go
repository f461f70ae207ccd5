package component

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

const (
	skipSeconds = 60
	skipPercent = 5
)

// Video plays a media file through the host's Player.
type Video struct {
	Base
	path    string
	loops   int
	player  Player
	playing bool
	started bool
}

func NewVideo(host Host, path string, loops, monitor int) *Video {
	v := &Video{Base: NewBase(host), path: path, loops: loops}
	v.info.Monitor = monitor
	return v
}

// openVideo is nil when dir holds no media named name.
func openVideo(host Host, dir, name string, loops, monitor int) Component {
	path, ok := FindFile(dir, name, VideoExtensions)
	if !ok {
		return nil
	}
	return NewVideo(host, path, loops, monitor)
}

func (v *Video) AllocateGraphicsMemory() {
	if v.player == nil {
		if p := v.host.NewPlayer(); p != nil {
			if err := p.Play(v.path, v.loops); err != nil {
				logging.GetInternalLogger().Debug("Media not played", "path", v.path, "error", err)
			} else {
				v.player = p
			}
		}
	}
	v.Base.AllocateGraphicsMemory()
}

func (v *Video) FreeGraphicsMemory() {
	v.Base.FreeGraphicsMemory()
	if v.player != nil {
		v.player.Stop()
		v.player = nil
	}
	v.playing = false
	v.started = false
}

func (v *Video) Update(dt float64) {
	if v.player != nil {
		v.playing = v.player.IsPlaying()
		if v.playing && !v.started {
			v.started = true
			v.info.Restart = false
		}
		if v.playing {
			if v.info.Restart {
				v.player.Restart()
				v.info.Restart = false
			}
			v.player.SetVolume(v.info.Volume)
			v.player.Update(dt)
			if v.info.ImageWidth == 0 && v.info.ImageHeight == 0 {
				w, h := v.player.Size()
				v.info.ImageWidth = float32(w)
				v.info.ImageHeight = float32(h)
			}
		}
	}
	v.Base.Update(dt)
}

func (v *Video) Draw() {
	v.Base.Draw()
	if v.player == nil {
		return
	}
	tex := v.player.Texture()
	if tex == nil {
		return
	}
	info := v.info
	dst := Rect{
		X: int32(info.XRelativeToOrigin()),
		Y: int32(info.YRelativeToOrigin()),
		W: int32(info.ScaledWidth()),
		H: int32(info.ScaledHeight()),
	}
	lw, lh := v.layoutSize()
	v.host.Renderer().Copy(tex, info.Alpha, nil, dst, info, lw, lh)
}

func (v *Video) IsPlaying() bool {
	return v.playing
}

func (v *Video) SkipForward() {
	if v.player != nil {
		v.player.Skip(skipSeconds)
	}
}

func (v *Video) SkipBackward() {
	if v.player != nil {
		v.player.Skip(-skipSeconds)
	}
}

func (v *Video) SkipForwardP() {
	if v.player != nil {
		v.player.SkipPercent(skipPercent)
	}
}

func (v *Video) SkipBackwardP() {
	if v.player != nil {
		v.player.SkipPercent(-skipPercent)
	}
}

func (v *Video) Pause() {
	if v.player != nil {
		v.player.Pause()
	}
}

func (v *Video) Restart() {
	if v.player != nil {
		v.player.Restart()
	}
}

func (v *Video) IsPaused() bool {
	return v.player != nil && v.player.IsPaused()
}
