package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Window wraps the SDL window and renderer the frontend draws into.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	width, height   int32
	hasVSync        bool
	grab            bool
	lastPresentTime uint64
}

// newWindow opens the window described by settings. Fullscreen windows
// take the desktop resolution; in dev mode the size comes from
// WINDOW_WIDTH and WINDOW_HEIGHT.
func newWindow(settings config.WindowSettings) (*Window, error) {
	width, height := int32(settings.Width), int32(settings.Height)
	winOpts := windowOptions(settings)

	if settings.Fullscreen {
		if mode, err := sdl.GetDesktopDisplayMode(0); err == nil {
			width, height = mode.W, mode.H
		} else {
			logging.GetInternalLogger().Error("Failed to get display mode", "error", err)
		}
	}

	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if constants.IsDevMode() {
		winOpts.Borderless = false
		winOpts.FullscreenDesktop = false
		x, y = 50, 50
		width = envSize(constants.WindowWidthEnvVar, width)
		height = envSize(constants.WindowHeightEnvVar, height)
	}

	logging.GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	window, err := sdl.CreateWindow(settings.Title, x, y, width, height, winOpts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED | sdl.RENDERER_TARGETTEXTURE)
	if settings.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, flags)
	if err != nil {
		logging.GetInternalLogger().Warn("Accelerated renderer unavailable, falling back", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	renderer.SetLogicalSize(width, height)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    settings.Title,
		width:    width,
		height:   height,
		hasVSync: vsync,
		grab:     settings.Fullscreen,
	}, nil
}

func envSize(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		logging.GetInternalLogger().Warn("Invalid window size; using default", "name", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

// LogicalSize is the drawing area in pixels, independent of the actual
// window size.
func (w *Window) LogicalSize() (int32, int32) {
	return w.width, w.height
}

func (w *Window) Clear() {
	w.Renderer.SetDrawColor(0, 0, 0, 255)
	w.Renderer.Clear()
}

// Present swaps the render buffer. Without VSync it sleeps out the rest
// of frame.
func (w *Window) Present(frame time.Duration) {
	w.Renderer.Present()
	if !w.hasVSync && frame > 0 {
		budget := uint64(frame.Milliseconds())
		if elapsed := sdl.GetTicks64() - w.lastPresentTime; elapsed < budget {
			sdl.Delay(uint32(budget - elapsed))
		}
	}
	w.lastPresentTime = sdl.GetTicks64()
}

func (w *Window) HasVSync() bool {
	return w.hasVSync
}

// Hide and Show bracket a launched program that needs the screen.
func (w *Window) Hide() {
	w.Window.SetGrab(false)
	w.Window.Hide()
}

func (w *Window) Show() {
	w.Window.Show()
	w.Window.Restore()
	w.Window.Raise()
	w.Window.SetGrab(w.grab)
}

// WarpMouse moves the pointer, usually off screen.
func (w *Window) WarpMouse(x, y int32) {
	w.Window.WarpMouseInWindow(x, y)
}

func (w *Window) close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
}
