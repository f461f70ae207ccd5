// Package marquee is a skinnable arcade frontend. A Frontend shows a splash
// page while the first collection loads, then lets the player browse
// collections and playlists through XML layouts and launch the selected
// item with its configured emulator.
package marquee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/layout"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
	"github.com/BrandonKowalski/marquee/pkg/marquee/router"
)

// Options configures a Frontend.
type Options struct {
	Root     string   // Directory holding settings.conf, collections/ and layouts/
	LogLevel string   // Overrides log.level from the settings when set
	Launcher Launcher // Defaults to an ExecLauncher over the launchers.* settings
}

// Frontend owns the window, the input devices and the page stack.
type Frontend struct {
	conf       *config.Store
	window     *internal.Window
	renderer   *internal.Renderer
	fonts      *internal.FontCache
	input      *internal.Input
	loader     *collection.Loader
	pages      *layoutPages
	exec       *executor
	translator *internal.Translator
	start      time.Time

	initialized atomic.Bool
	initErr     atomic.Error
	preloaded   atomic.Pointer[collection.Collection]
}

// ImportConfiguration reads the global settings, the launchers and the
// controls into conf. settings.conf must exist; settings1.conf through
// settings14.conf and settings_saved.conf override it in that order.
// Collection settings are imported when each collection first loads.
func ImportConfiguration(conf *config.Store) error {
	root := conf.AbsolutePath()
	if err := conf.Import("", filepath.Join(root, "settings.conf"), true); err != nil {
		return NewInfrastructureError("load_settings", err)
	}
	for i := 1; i <= 14; i++ {
		if err := conf.Import("", filepath.Join(root, fmt.Sprintf("settings%d.conf", i)), false); err != nil {
			return NewInfrastructureError("load_settings", err)
		}
	}
	if err := conf.Import("", filepath.Join(root, "settings_saved.conf"), false); err != nil {
		return NewInfrastructureError("load_settings", err)
	}

	dir := filepath.Join(root, "launchers.linux")
	if _, err := os.Stat(dir); err != nil {
		dir = filepath.Join(root, "launchers")
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.conf"))
	for _, f := range files {
		name := strings.ToLower(strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)))
		if err := conf.Import("launchers."+name, f, false); err != nil {
			logging.GetInternalLogger().Warn("Could not import launcher", "file", f, "error", err)
		}
	}

	if err := conf.Import("controls", filepath.Join(root, "controls.conf"), true); err != nil {
		return NewInfrastructureError("load_controls", err)
	}
	for i := 1; i <= 9; i++ {
		if err := conf.Import("controls", filepath.Join(root, fmt.Sprintf("controls%d.conf", i)), false); err != nil {
			logging.GetInternalLogger().Warn("Could not import controls", "index", i, "error", err)
		}
	}
	return nil
}

// windowSettings overlays the fullscreen, horizontal, vertical and vSync
// properties on the TOML window settings. Non-numeric sizes such as
// "stretch" keep the TOML size.
func windowSettings(conf *config.Store, ws config.WindowSettings) config.WindowSettings {
	ws.Fullscreen = conf.BoolOr("fullscreen", ws.Fullscreen)
	if w := conf.IntOr("horizontal", 0); w > 0 {
		ws.Width = w
	}
	if h := conf.IntOr("vertical", 0); h > 0 {
		ws.Height = h
	}
	ws.VSync = conf.BoolOr("vSync", ws.VSync)
	return ws
}

// New loads the configuration under opts.Root and opens the window.
func New(opts Options) (*Frontend, error) {
	conf := config.New(opts.Root)
	if err := ImportConfiguration(conf); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(filepath.Join(opts.Root, config.SettingsFilename))
	if err != nil {
		logging.GetInternalLogger().Warn("Using default settings", "error", err)
	}
	settings.ApplyTo(conf)

	level := opts.LogLevel
	if level == "" {
		level = conf.StringOr("log.level", settings.LogLevel)
	}
	logging.SetRawLogLevel(level)

	pickLayout(conf, nil)

	window, err := internal.InitSDL(windowSettings(conf, settings.Window))
	if err != nil {
		return nil, NewInfrastructureError("init_sdl", err)
	}

	input, err := internal.NewInput(conf)
	if err != nil {
		internal.CleanupSDL(window)
		return nil, NewInfrastructureError("load_controls", err)
	}

	f := &Frontend{
		conf:       conf,
		window:     window,
		renderer:   internal.NewRenderer(window),
		input:      input,
		loader:     collection.NewLoader(conf),
		translator: internal.NewTranslator(filepath.Join(opts.Root, settings.Messages), conf.StringOr("language", settings.Language)),
		start:      time.Now(),
	}

	layoutName := conf.StringOr("layout", DefaultLayout)
	defaultFont := config.ConvertToAbsolutePath(conf.LayoutDir(layoutName), conf.StringOr("font", "font.ttf"))
	f.fonts = internal.NewFontCache(f.renderer, defaultFont)

	w, h := window.LogicalSize()
	logging.GetInternalLogger().Info("Window opened", "width", w, "height", h, "layout", layoutName, "vsync", window.HasVSync())
	stillTime := time.Duration(conf.IntOr("videoStillTime", int(internal.DefaultStillDuration/time.Second))) * time.Second
	f.pages = newLayoutPages(conf, f.renderer, f.fonts, layout.Options{
		Layout:       layoutName,
		ScreenWidth:  int(w),
		ScreenHeight: int(h),
		Monitors:     conf.IntOr("numScreens", 1),
		DefaultFont:  defaultFont,
		NewSound: func(path, altPath string) page.Sound {
			return internal.NewSound(path, altPath)
		},
		NewPlayer: func() component.Player {
			return internal.NewStillPlayer(f.renderer, stillTime)
		},
	})

	launcher := opts.Launcher
	if launcher == nil {
		launcher = NewExecLauncher(conf)
	}
	f.exec = newExecutor(conf, f.pages, f.loader, launcher, f, f.translator)
	return f, nil
}

// initialize loads the first collection while the splash page shows.
func (f *Frontend) initialize() {
	defer f.initialized.Store(true)
	name := f.conf.StringOr("firstCollection", "Main")
	c, err := f.loader.Load(name)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			err = fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		logging.GetLogger().Error("Could not load the first collection", "collection", name, "error", err)
		f.initErr.Store(err)
		return
	}
	f.preloaded.Store(c)
	logging.GetLogger().Info("First collection loaded", "collection", name, "items", len(c.Items))
}

// Run shows the frontend until the player quits or ctx is done. reboot is
// set when a launcher asked for the frontend to be restarted. A failed
// command quits through the usual exit animations and is returned.
func (f *Frontend) Run(ctx context.Context) (reboot bool, err error) {
	logger := logging.GetLogger()
	st := router.NewStatus(f.conf.BoolOr("kiosk", false))

	f.conf.Set("status", f.translator.Localize(internal.MsgLoading, nil))
	splash, err := f.pages.Splash()
	if err != nil {
		return false, NewInfrastructureError("load_splash", err)
	}
	f.exec.page = splash
	splash.SetLocked(st.Kiosk)
	splash.AllocateGraphicsMemory()
	splash.Start()
	st.SplashTime = f.Now()

	go f.initialize()

	settings := router.LoadSettings(f.conf)
	fps := max(f.conf.IntOr("fps", constants.DefaultFPS), 1)
	fpsIdle := max(f.conf.IntOr("fpsIdle", fps), 1)
	last := f.Now()
	var runErr error

	defer f.exec.close()
	for !st.Done {
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			if _, ok := e.(*sdl.QuitEvent); ok {
				f.quit(&st)
				continue
			}
			f.input.Update(e)
		}
		if ctx.Err() != nil {
			f.quit(&st)
		}

		initialized := f.initialized.Load()
		if initialized {
			if c := f.preloaded.Swap(nil); c != nil {
				f.exec.preloaded = c
			}
		}

		now := f.Now()
		env := router.Env{
			Now:           now,
			Page:          f.exec.snapshot(),
			Keys:          f.input,
			Initialized:   initialized,
			InitFailed:    f.initErr.Load() != nil,
			AttractActive: f.exec.attract.IsActive(),
			Settings:      settings,
		}
		var cmds []router.Command
		st, cmds = router.Step(st, env)
		if err := f.exec.executeAll(ctx, &st, cmds); err != nil && runErr == nil {
			runErr = err
		}
		if st.Done {
			break
		}

		dt := (now - last).Seconds()
		last = now
		if next := f.exec.tick(&st, dt); next != router.StateIdle {
			st.State = next
		}

		frame := time.Second / time.Duration(fps)
		if st.State == router.StateIdle {
			frame = time.Second / time.Duration(fpsIdle)
		}
		f.window.Clear()
		f.exec.page.Draw()
		f.window.Present(frame)
	}

	if err := f.initErr.Load(); err != nil {
		return false, err
	}
	if runErr != nil {
		return false, runErr
	}
	logger.Info("Frontend stopped", "reboot", st.Reboot)
	return st.Reboot, nil
}

func (f *Frontend) quit(st *router.Status) {
	if st.State != router.StateQuitRequest && st.State != router.StateQuit {
		st.State = router.StateQuitRequest
	}
}

// Close releases every SDL resource. The Frontend is unusable afterwards.
func (f *Frontend) Close() {
	if f.fonts != nil {
		f.fonts.Close()
	}
	if f.renderer != nil {
		f.renderer.Close()
	}
	internal.CleanupSDL(f.window)
}

func (f *Frontend) Now() time.Duration {
	return time.Since(f.start)
}

func (f *Frontend) ClearInput() {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		f.input.Update(e)
	}
	f.input.Reset()
}

// CaptureControl waits for the next press on any device.
func (f *Frontend) CaptureControl(ctx context.Context) (string, error) {
	for {
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			if _, ok := e.(*sdl.QuitEvent); ok {
				return "", context.Canceled
			}
			if name, ok := internal.ControlName(e); ok {
				return name, nil
			}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		sdl.Delay(10)
	}
}

func (f *Frontend) ReconfigureInput() error {
	return f.input.Reconfigure(f.conf)
}

func (f *Frontend) LaunchEnter() {
	if f.conf.BoolOr("hideMouse", false) {
		f.window.WarpMouse(int32(f.conf.IntOr("mouseX", 5000)), int32(f.conf.IntOr("mouseY", 5000)))
	}
	f.window.Hide()
}

// LaunchExit brings the window back and forgets input seen while the
// launched program ran. Joysticks plugged in meanwhile are picked up.
func (f *Frontend) LaunchExit() {
	f.window.Show()
	f.ClearInput()
}

// SetLogPath sets the full path of the log file. Call it before New.
func SetLogPath(path string) {
	logging.SetLogPath(path)
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	return logging.GetLogger()
}

// SetRawLogLevel parses and sets the log level from a string such as
// "debug" or "error".
func SetRawLogLevel(level string) {
	logging.SetRawLogLevel(level)
}

// CloseLogger flushes and closes the log file.
func CloseLogger() {
	logging.CloseLogger()
}

// CreateCollection lays out an empty collection named name under root.
func CreateCollection(root, name string) error {
	return collection.NewLoader(config.New(root)).CreateSkeleton(name)
}
