package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/mix"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// audioOpen is false when the mixer could not be opened; sounds then stay
// silent.
var audioOpen atomic.Bool

// InitSDL starts the SDL subsystems and opens the window. Audio failures
// are logged and tolerated.
func InitSDL(settings config.WindowSettings) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")

	if err := img.Init(img.INIT_PNG | img.INIT_JPG | img.INIT_TIF | img.INIT_WEBP); err != nil {
		logging.GetInternalLogger().Warn("Some image formats are unavailable", "error", err)
	}

	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ttf init: %w", err)
	}

	if err := mix.OpenAudio(mix.DEFAULT_FREQUENCY, mix.DEFAULT_FORMAT, mix.DEFAULT_CHANNELS, 4096); err != nil {
		logging.GetInternalLogger().Warn("Audio unavailable", "error", err)
	} else {
		audioOpen.Store(true)
	}

	sdl.ShowCursor(sdl.DISABLE)
	sdl.JoystickEventState(sdl.ENABLE)

	window, err := newWindow(settings)
	if err != nil {
		CleanupSDL(nil)
		return nil, err
	}
	return window, nil
}

// CleanupSDL closes window, when set, and every subsystem InitSDL started.
func CleanupSDL(window *Window) {
	if window != nil {
		window.close()
	}
	if audioOpen.Swap(false) {
		mix.CloseAudio()
	}
	ttf.Quit()
	img.Quit()
	sdl.Quit()
}
