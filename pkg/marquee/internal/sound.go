package internal

import (
	"github.com/veandco/go-sdl2/mix"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Sound is a short effect decoded fully into memory.
type Sound struct {
	path    string
	chunk   *mix.Chunk
	channel int
}

// NewSound loads path, or altPath when path cannot be decoded. The result
// stays silent when neither loads or audio is unavailable.
func NewSound(path, altPath string) *Sound {
	s := &Sound{path: path, channel: -1}
	if !audioOpen.Load() {
		return s
	}
	if path != "" && !s.allocate() {
		s.path = altPath
		if altPath != "" && !s.allocate() {
			logging.GetInternalLogger().Warn("Cannot load sound", "path", altPath)
		}
	}
	return s
}

func (s *Sound) allocate() bool {
	if s.chunk == nil && s.path != "" && audioOpen.Load() {
		chunk, err := mix.LoadWAV(s.path)
		if err != nil {
			logging.GetInternalLogger().Debug("Sound not loaded", "path", s.path, "error", err)
			return false
		}
		s.chunk = chunk
	}
	return s.chunk != nil
}

func (s *Sound) Allocate() {
	s.allocate()
}

func (s *Sound) Free() {
	if s.chunk != nil {
		s.chunk.Free()
		s.chunk = nil
		s.channel = -1
	}
}

func (s *Sound) Play() {
	if s.chunk == nil {
		return
	}
	channel, err := s.chunk.Play(-1, 0)
	if err != nil {
		logging.GetInternalLogger().Debug("Sound not played", "path", s.path, "error", err)
		channel = -1
	}
	s.channel = channel
}

func (s *Sound) IsPlaying() bool {
	return s.channel != -1 && mix.Playing(s.channel) != 0
}
