package marquee

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
	"github.com/BrandonKowalski/marquee/pkg/marquee/router"
)

type fakePages struct {
	conf    *config.Store
	own     map[string]bool
	built   []string
	menus   int
	failAll bool
}

func (f *fakePages) newPage() *page.Page {
	p := page.New(f.conf, nil, []int{640}, []int{480})
	p.PushMenu(component.NewScrollingList(p, f.conf, nil, component.ListOptions{}), 0)
	return p
}

func (f *fakePages) Load(name string) (*page.Page, error) {
	if f.failAll {
		return nil, errors.New("no layout")
	}
	f.built = append(f.built, name)
	return f.newPage(), nil
}

func (f *fakePages) Collection(name string) (*page.Page, error) {
	if !f.own[name] {
		return nil, errors.New("no collection layout")
	}
	f.built = append(f.built, name)
	return f.newPage(), nil
}

func (f *fakePages) Menu() (*page.Page, error) {
	f.menus++
	return f.newPage(), nil
}

type fakeCollections struct {
	root  string
	items map[string][]string
	menu  map[string]string
}

func (f *fakeCollections) Load(name string) (*collection.Collection, error) {
	titles, ok := f.items[name]
	if !ok {
		return nil, collection.ErrNotFound
	}
	c := collection.New(name)
	c.Root = f.root
	for _, title := range titles {
		c.Add(collection.NewItem(title, c))
	}
	return c, nil
}

func (f *fakeCollections) LoadMenu(name string) *collection.Collection {
	c := collection.New(name)
	c.Root = f.root
	for label, ctrl := range f.menu {
		item := collection.NewItem(label, c)
		item.CtrlType = ctrl
		c.Add(item)
	}
	return c
}

type fakeHost struct {
	now         time.Duration
	cleared     int
	entered     int
	exited      int
	reconfigure int
	control     string
}

func (h *fakeHost) ClearInput() { h.cleared++ }
func (h *fakeHost) LaunchEnter() { h.entered++ }
func (h *fakeHost) LaunchExit() { h.exited++ }
func (h *fakeHost) Now() time.Duration { return h.now }

func (h *fakeHost) CaptureControl(ctx context.Context) (string, error) {
	return h.control, nil
}

func (h *fakeHost) ReconfigureInput() error {
	h.reconfigure++
	return nil
}

type fakeLauncher struct {
	reboot     bool
	err        error
	launched   []string
	collection string
}

func (l *fakeLauncher) Run(ctx context.Context, collectionName string, item *collection.Item) (bool, error) {
	l.launched = append(l.launched, item.Name)
	l.collection = collectionName
	return l.reboot, l.err
}

type harness struct {
	exec        *executor
	conf        *config.Store
	pages       *fakePages
	collections *fakeCollections
	host        *fakeHost
	launcher    *fakeLauncher
	st          router.Status
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	conf := config.New(root)
	h := &harness{
		conf:  conf,
		pages: &fakePages{conf: conf, own: map[string]bool{}},
		collections: &fakeCollections{
			root: root,
			items: map[string][]string{
				"Main":   {"Arcade", "Consoles"},
				"Arcade": {"Asteroids", "Berzerk", "Centipede"},
			},
		},
		host:     &fakeHost{now: 5 * time.Second},
		launcher: &fakeLauncher{},
		st:       router.NewStatus(false),
	}
	h.exec = newExecutor(conf, h.pages, h.collections, h.launcher, h.host, internal.NewTranslator(t.TempDir(), "en"))
	h.exec.page = h.pages.newPage()
	return h
}

func (h *harness) run(t *testing.T, cmds ...router.Command) {
	t.Helper()
	for _, cmd := range cmds {
		if err := h.exec.Execute(context.Background(), &h.st, cmd); err != nil {
			t.Fatalf("Execute(%s) error = %v", cmd, err)
		}
	}
}

func op(o router.Op) router.Command { return router.Command{Op: o} }

func TestExecutorFirstCollection(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("firstCollection", "Arcade")
	h.run(t, op(router.OpFirstCollection))

	if got := h.exec.page.CollectionName(); got != "Arcade" {
		t.Fatalf("collection = %q, want Arcade", got)
	}
	if got := h.exec.page.PlaylistName(); got != constants.PlaylistAll {
		t.Errorf("playlist = %q, want all", got)
	}
	if got := h.conf.StringOr("currentCollection", ""); got != "Arcade" {
		t.Errorf("currentCollection = %q", got)
	}
	if len(h.pages.built) != 1 || h.pages.built[0] != "Arcade" {
		t.Errorf("built pages = %v", h.pages.built)
	}
}

func TestExecutorFirstCollectionUsesPreloaded(t *testing.T) {
	h := newHarness(t)
	pre := collection.New("Main")
	pre.Add(collection.NewItem("Preloaded", pre))
	h.exec.preloaded = pre

	h.run(t, op(router.OpFirstCollection))
	if h.exec.page.Collection() != pre {
		t.Error("the preloaded collection should be shown")
	}
	if h.exec.preloaded != nil {
		t.Error("the preloaded collection should be consumed")
	}
}

func TestExecutorFirstCollectionMissing(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("firstCollection", "Nowhere")
	err := h.exec.Execute(context.Background(), &h.st, op(router.OpFirstCollection))
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
}

func TestExecutorFailedCommandQuits(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("firstCollection", "Nowhere")
	h.st.State = router.StateLoadArt

	err := h.exec.executeAll(context.Background(), &h.st, []router.Command{
		op(router.OpFirstCollection),
		{Op: router.OpSetLocked, Flag: true},
	})
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}
	if h.st.State != router.StateQuitRequest {
		t.Errorf("state = %v, want QuitRequest", h.st.State)
	}
	if h.exec.page.IsLocked() {
		t.Error("commands after the failure should be dropped")
	}
	if h.st.Done {
		t.Error("the run loop should play the exit before stopping")
	}
}

func TestExecutorFirstCollectionLayoutFailure(t *testing.T) {
	h := newHarness(t)
	h.pages.failAll = true
	err := h.exec.Execute(context.Background(), &h.st, op(router.OpFirstCollection))
	if !IsInfrastructureError(err) {
		t.Fatalf("err = %v, want an infrastructure error", err)
	}
}

func TestExecutorNextPage(t *testing.T) {
	tests := []struct {
		name      string
		ownLayout bool
		wantStack int
		wantDepth int
	}{
		{"collection layout opens a page", true, 1, 1},
		{"no layout stays on the page", false, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.run(t, op(router.OpFirstCollection))
			main := h.exec.page
			h.pages.own["Arcade"] = tt.ownLayout

			h.run(t, router.Command{Op: router.OpNextPage, Arg: "Arcade"})
			if h.exec.stack.Len() != tt.wantStack {
				t.Errorf("stacked pages = %d, want %d", h.exec.stack.Len(), tt.wantStack)
			}
			if got := h.exec.page.MenuDepth(); got != tt.wantDepth {
				t.Errorf("depth = %d, want %d", got, tt.wantDepth)
			}
			if got := h.exec.page.CollectionName(); got != "Arcade" {
				t.Errorf("collection = %q, want Arcade", got)
			}
			if got := h.conf.StringOr("status", "x"); got != "" {
				t.Errorf("status = %q, want it cleared after loading", got)
			}

			h.run(t, op(router.OpPopPage))
			if h.exec.page != main && tt.ownLayout {
				t.Error("PopPage should return to the main page")
			}
			if got := h.exec.page.CollectionName(); got != "Main" {
				t.Errorf("after pop collection = %q, want Main", got)
			}
		})
	}
}

func TestExecutorNextPageMissingCollection(t *testing.T) {
	h := newHarness(t)
	h.run(t, op(router.OpFirstCollection))

	h.run(t, router.Command{Op: router.OpNextPage, Arg: "Consoles"})
	if got := h.exec.page.CollectionName(); got != "Consoles" {
		t.Fatalf("collection = %q, want Consoles", got)
	}
	if got := h.exec.page.MenuDepth(); got != 2 {
		t.Errorf("depth = %d, want 2", got)
	}
	if got := h.exec.page.CollectionSize(); got != 0 {
		t.Errorf("size = %d, want an empty menu", got)
	}

	h.run(t, op(router.OpPopPage))
	if got := h.exec.page.CollectionName(); got != "Main" {
		t.Errorf("after pop collection = %q, want Main", got)
	}
}

func TestExecutorRestoreMenu(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("rememberMenu", "true")
	h.collections.items["Main"] = []string{"A", "B", "C", "D"}
	h.run(t, op(router.OpFirstCollection))
	h.exec.page.SetScrollOffsetIndex(2)
	h.run(t, op(router.OpRememberMenu))

	h.exec.page.SetScrollOffsetIndex(0)
	h.run(t, op(router.OpRestoreMenu))
	if got := h.exec.page.ScrollOffsetIndex(); got != 2 {
		t.Errorf("offset = %d, want the remembered 2", got)
	}
	if _, offset, ok := h.exec.state.Menu("Main"); !ok || offset != 2 {
		t.Errorf("saved menu = %d, %t", offset, ok)
	}
}

func TestExecutorRestoreMenuAutoPlaylist(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("autoPlaylist", "missing")
	h.run(t, op(router.OpFirstCollection), op(router.OpRestoreMenu))
	if got := h.exec.page.PlaylistName(); got != constants.PlaylistAll {
		t.Errorf("playlist = %q, want the all fallback", got)
	}
}

func TestExecutorMenuModeAndControlCapture(t *testing.T) {
	h := newHarness(t)
	h.collections.menu = map[string]string{"Up": "!up"}
	h.host.control = "Left"
	h.run(t, op(router.OpFirstCollection), op(router.OpMenuModeStart))

	if h.pages.menus != 1 || h.exec.stack.Len() != 1 {
		t.Fatalf("menu pages = %d, stacked = %d", h.pages.menus, h.exec.stack.Len())
	}
	if got := h.exec.page.CollectionName(); got != MenuCollection {
		t.Fatalf("collection = %q, want menu", got)
	}

	h.run(t, op(router.OpHandleMenuEntry))
	if got := h.conf.StringOr("controls.up", ""); got != "Left" {
		t.Errorf("controls.up = %q, want Left", got)
	}
	if h.host.reconfigure != 1 {
		t.Errorf("input reconfigured %d times", h.host.reconfigure)
	}
}

func TestExecutorLaunch(t *testing.T) {
	tests := []struct {
		name       string
		reboot     bool
		wantExited int
	}{
		{"returns to the frontend", false, 1},
		{"reboot leaves the window hidden", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.conf.Set("firstCollection", "Arcade")
			h.launcher.reboot = tt.reboot
			h.run(t, op(router.OpFirstCollection), op(router.OpLaunch))

			if len(h.launcher.launched) != 1 || h.launcher.launched[0] != "Asteroids" {
				t.Fatalf("launched = %v", h.launcher.launched)
			}
			if h.launcher.collection != "Arcade" {
				t.Errorf("collection = %q", h.launcher.collection)
			}
			if h.host.entered != 1 || h.host.exited != tt.wantExited {
				t.Errorf("enter = %d, exit = %d", h.host.entered, h.host.exited)
			}
			if h.st.Reboot != tt.reboot {
				t.Errorf("reboot = %t", h.st.Reboot)
			}
			if !tt.reboot && (h.st.KeyLastTime != h.host.now || h.st.LaunchReturnTime != h.host.now) {
				t.Errorf("times = %v, %v, want %v", h.st.KeyLastTime, h.st.LaunchReturnTime, h.host.now)
			}
		})
	}
}

func TestExecutorLaunchErrorIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.launcher.err = ErrNoLauncher
	h.run(t, op(router.OpFirstCollection), op(router.OpLaunch))
	if h.host.exited != 1 {
		t.Error("the window should come back after a failed launch")
	}
}

func TestExecutorSaveFirstPlaylist(t *testing.T) {
	h := newHarness(t)
	h.run(t, op(router.OpFirstCollection), op(router.OpSaveFirstPlaylist))

	if _, err := os.Stat(filepath.Join(h.conf.AbsolutePath(), StateFilename)); err != nil {
		t.Fatalf("state file: %v", err)
	}
	state := LoadState(filepath.Join(h.conf.AbsolutePath(), StateFilename))
	if got, ok := state.FirstPlaylist(); !ok || got != constants.PlaylistAll {
		t.Errorf("first playlist = %q, %t", got, ok)
	}
}

func TestExecutorKioskStatus(t *testing.T) {
	h := newHarness(t)
	h.run(t, router.Command{Op: router.OpSetLocked, Flag: true})
	if !h.exec.page.IsLocked() || h.conf.StringOr("status", "") != "Kiosk mode" {
		t.Errorf("locked = %t, status = %q", h.exec.page.IsLocked(), h.conf.StringOr("status", ""))
	}
	h.run(t, router.Command{Op: router.OpSetLocked})
	if h.exec.page.IsLocked() || h.conf.StringOr("status", "x") != "" {
		t.Error("unlocking should clear the status")
	}
}

func TestExecutorAttractReset(t *testing.T) {
	h := newHarness(t)
	h.run(t, op(router.OpAttractActivate))
	if !h.exec.attract.IsActive() {
		t.Fatal("attract should be active")
	}
	h.run(t, router.Command{Op: router.OpAttractReset, Flag: true})
	if h.exec.attract.IsActive() || !h.exec.attract.IsSet() {
		t.Error("a keeping reset ends the burst but stays in attract mode")
	}
	h.run(t, router.Command{Op: router.OpAttractReset})
	if h.exec.attract.IsSet() {
		t.Error("a full reset leaves attract mode")
	}
}

func TestExecutorUnknownOp(t *testing.T) {
	h := newHarness(t)
	if err := h.exec.Execute(context.Background(), &h.st, op(router.Op(999))); err == nil {
		t.Error("expected an error for an unknown op")
	}
}

func TestExecutorTick(t *testing.T) {
	tests := []struct {
		name  string
		conf  map[string]string
		kiosk bool
		want  router.State
	}{
		{"playlist timer", map[string]string{"attractModePlaylistTime": "1"}, false, router.StatePlaylistRequest},
		{"collection timer", map[string]string{"attractModeCollectionTime": "1"}, false, router.StateCollectionDownRequest},
		{"kiosk ignores the timers", map[string]string{"attractModePlaylistTime": "1"}, true, router.StateIdle},
		{"nothing configured", nil, false, router.StateIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			for k, v := range tt.conf {
				h.conf.Set(k, v)
			}
			h.exec.attract = NewAttractMode(h.conf)
			h.run(t, op(router.OpFirstCollection))
			h.st.Splash = false
			h.st.Kiosk = tt.kiosk

			if got := h.exec.tick(&h.st, 2); got != tt.want {
				t.Errorf("tick = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExecutorTickAttractEvents(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("attractModeTime", "1")
	h.exec.attract = NewAttractMode(h.conf)
	h.run(t, op(router.OpFirstCollection))
	h.st.Splash = false

	h.exec.tick(&h.st, 2)
	if !h.st.Attract {
		t.Fatal("attract mode should have started")
	}
	if got := h.conf.StringOr("status", ""); got != "Attract mode" {
		t.Errorf("status = %q", got)
	}

	h.run(t, router.Command{Op: router.OpAttractReset})
	h.exec.tick(&h.st, 0)
	if h.st.Attract {
		t.Error("attract mode should have ended")
	}
	if got := h.conf.StringOr("status", "x"); got != "" {
		t.Errorf("status = %q, want it cleared", got)
	}
}

func TestExecutorTickSplashSkipsAttract(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("attractModeTime", "1")
	h.exec.attract = NewAttractMode(h.conf)

	if got := h.exec.tick(&h.st, 5); got != router.StateIdle || h.exec.attract.IsSet() {
		t.Error("attract mode must not run on the splash page")
	}
}

func TestExecutorAttractNextPlaylistSkips(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("firstCollection", "Arcade")
	h.conf.Set("cyclePlaylist", "all,favorites,classics")
	h.conf.Set("attractModeSkipPlaylist", "favorites")
	h.run(t, op(router.OpFirstCollection))
	c := h.exec.page.Collection()
	c.SetPlaylist("classics", c.Items[:1])
	c.SetPlaylist(constants.PlaylistFavorites, c.Items[1:2])

	h.exec.attractNextPlaylist()
	if got := h.exec.page.PlaylistName(); got != "classics" {
		t.Errorf("playlist = %q, want favorites skipped", got)
	}
}

func TestExecutorClose(t *testing.T) {
	h := newHarness(t)
	h.conf.Set("rememberMenu", "yes")
	h.pages.own["Arcade"] = true
	h.run(t, op(router.OpFirstCollection), op(router.OpRememberMenu), router.Command{Op: router.OpNextPage, Arg: "Arcade"})

	h.exec.close()
	if !h.exec.stack.IsEmpty() {
		t.Error("close should drain the page stack")
	}
	if _, err := os.Stat(filepath.Join(h.conf.AbsolutePath(), StateFilename)); err != nil {
		t.Errorf("remembered menus should be saved: %v", err)
	}
}
