package internal

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

type WindowOptions struct {
	Borderless        bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable         bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	FullscreenDesktop bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Hidden            bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

// windowOptions maps the [window] settings onto SDL window flags. A
// fullscreen frontend never shows decorations.
func windowOptions(ws config.WindowSettings) WindowOptions {
	return WindowOptions{
		Borderless:        ws.Borderless || ws.Fullscreen,
		Resizable:         ws.Resizable && !ws.Fullscreen,
		FullscreenDesktop: ws.Fullscreen,
	}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}

	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if wo.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}
