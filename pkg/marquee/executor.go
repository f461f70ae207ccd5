package marquee

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
	"github.com/BrandonKowalski/marquee/pkg/marquee/router"
)

// MenuCollection is the collection the menu layout shows.
const MenuCollection = "menu"

// host is the part of the frontend that talks to the window and the input
// devices.
type host interface {
	// ClearInput drops pending events and releases every key.
	ClearInput()
	// CaptureControl blocks until a control is pressed and returns its
	// name in the controls.conf syntax.
	CaptureControl(ctx context.Context) (string, error)
	ReconfigureInput() error
	// LaunchEnter and LaunchExit surround a launched program.
	LaunchEnter()
	LaunchExit()
	Now() time.Duration
}

// pageSource builds pages from the layout.
type pageSource interface {
	// Load returns the collection's own page, else the main page.
	Load(collection string) (*page.Page, error)
	// Collection returns the collection's own page only.
	Collection(collection string) (*page.Page, error)
	Menu() (*page.Page, error)
}

// collectionSource loads collections.
type collectionSource interface {
	Load(name string) (*collection.Collection, error)
	LoadMenu(name string) *collection.Collection
}

// executor runs router commands against the current page.
type executor struct {
	conf        *config.Store
	pages       pageSource
	collections collectionSource
	launcher    Launcher
	state       *SavedState
	attract     *AttractMode
	host        host
	translator  *internal.Translator

	page  *page.Page
	stack router.Stack[*page.Page]

	lastMenuOffsets   map[string]int
	lastMenuPlaylists map[string]string

	// preloaded is the first collection, loaded during the splash.
	preloaded *collection.Collection
}

func newExecutor(conf *config.Store, pages pageSource, collections collectionSource, launcher Launcher, h host, translator *internal.Translator) *executor {
	return &executor{
		conf:              conf,
		pages:             pages,
		collections:       collections,
		launcher:          launcher,
		state:             LoadState(filepath.Join(conf.AbsolutePath(), StateFilename)),
		attract:           NewAttractMode(conf),
		host:              h,
		translator:        translator,
		lastMenuOffsets:   make(map[string]int),
		lastMenuPlaylists: make(map[string]string),
	}
}

func scrollDirection(d router.Direction) page.ScrollDirection {
	switch d {
	case router.DirForward:
		return page.ScrollForward
	case router.DirBack:
		return page.ScrollBack
	}
	return page.ScrollIdle
}

// snapshot reads the page predicates the router consults.
func (e *executor) snapshot() router.PageState {
	p := e.page
	nav, previous := p.FromPlaylistNav()
	ps := router.PageState{
		Idle:                 p.IsIdle(),
		MenuIdle:             p.IsMenuIdle(),
		AttractIdle:          p.IsAttractIdle(),
		GraphicsIdle:         p.IsGraphicsIdle(),
		Playing:              p.IsPlaying(),
		SelectPlays:          p.IsSelectPlaying(),
		Scrolling:            p.IsMenuScrolling(),
		Horizontal:           p.IsHorizontalScroll(),
		HasSubs:              p.HasSubs(),
		FromPlaylistNav:      nav,
		FromPreviousPlaylist: previous,
		Depth:                p.MenuDepth(),
		PagesStacked:         e.stack.Len(),
		CollectionSize:       p.CollectionSize(),
		CollectionName:       p.CollectionName(),
		PlaylistName:         p.PlaylistName(),
		MinShowTime:          time.Duration(p.MinShowTime() * float64(time.Second)),
	}
	if item := p.SelectedItem(); item != nil {
		ps.HasSelection = true
		ps.SelectedLeaf = item.Leaf
		ps.SelectedName = item.Name
		ps.SelectedCollection = item.CollectionName()
	}
	return ps
}

func (e *executor) setStatus(text string) {
	e.conf.Set("status", text)
}

// cyclePlaylists is the cyclePlaylist list of the current collection.
func (e *executor) cyclePlaylists() []string {
	return config.SplitList(e.conf.CollectionStringOr(e.page.CollectionName(), "cyclePlaylist", ""), ',')
}

// executeAll runs cmds in order. On the first failure the remaining
// commands are dropped and the run loop moves to QuitRequest.
func (e *executor) executeAll(ctx context.Context, st *router.Status, cmds []router.Command) error {
	for _, cmd := range cmds {
		logging.GetInternalLogger().Debug("Executing", "state", st.State, "command", cmd)
		if err := e.Execute(ctx, st, cmd); err != nil {
			logging.GetLogger().Error("Command failed", "command", cmd, "error", err)
			if st.State != router.StateQuit {
				st.State = router.StateQuitRequest
			}
			return err
		}
	}
	return nil
}

// Execute runs one command.
func (e *executor) Execute(ctx context.Context, st *router.Status, cmd router.Command) error {
	p := e.page
	switch cmd.Op {
	case router.OpCleanup:
		p.Cleanup()
	case router.OpStart:
		p.Start()
	case router.OpStop:
		p.Stop()

	case router.OpEnterMenu:
		p.EnterMenu()
	case router.OpExitMenu:
		p.ExitMenu()
	case router.OpEnterGame:
		p.EnterGame()
	case router.OpExitGame:
		p.ExitGame()
	case router.OpHighlightEnter:
		p.HighlightEnter()
	case router.OpHighlightExit:
		p.HighlightExit()
	case router.OpHighlightLoadArt:
		p.HighlightLoadArt()
	case router.OpPlaylistEnter:
		p.PlaylistEnter()
	case router.OpPlaylistExit:
		p.PlaylistExit()
	case router.OpPlaylistNextExit:
		p.PlaylistNextExit()
	case router.OpPlaylistPrevExit:
		p.PlaylistPrevExit()
	case router.OpPlaylistPrevEnter:
		p.PlaylistPrevEnter()
	case router.OpMenuJumpEnter:
		p.MenuJumpEnter()
	case router.OpMenuJumpExit:
		p.MenuJumpExit()
	case router.OpJukeboxJump:
		p.JukeboxJump()

	case router.OpSetScrolling:
		p.SetScrolling(scrollDirection(cmd.Dir))
	case router.OpScroll:
		p.Scroll(cmd.Flag)
	case router.OpUpdateScrollPeriod:
		p.UpdateScrollPeriod()
	case router.OpResetScrollPeriod:
		p.ResetScrollPeriod()
	case router.OpPageScroll:
		p.PageScroll(scrollDirection(cmd.Dir))
	case router.OpLetterScroll:
		p.LetterScroll(scrollDirection(cmd.Dir))
	case router.OpCfwLetterSubScroll:
		p.CfwLetterSubScroll(scrollDirection(cmd.Dir))
	case router.OpSelectRandom:
		p.SelectRandom()
	case router.OpOnNewItemSelected:
		p.OnNewItemSelected()
	case router.OpReallocate:
		p.ReallocateMenuSpritePoints(cmd.Flag)
	case router.OpSetLocked:
		p.SetLocked(cmd.Flag)
		if cmd.Flag {
			e.setStatus(e.translator.Localize(internal.MsgKioskLocked, nil))
		} else {
			e.setStatus("")
		}

	case router.OpRememberSelectedItem:
		p.RememberSelectedItem()
	case router.OpReturnToRememberSelectedItem:
		p.ReturnToRememberSelectedItem()
	case router.OpFavPlaylist:
		p.FavPlaylist()
	case router.OpNextPlaylist:
		p.NextPlaylist()
	case router.OpPrevPlaylist:
		p.PrevPlaylist()
	case router.OpNextCyclePlaylist:
		p.NextCyclePlaylist(e.cyclePlaylists())
	case router.OpPrevCyclePlaylist:
		p.PrevCyclePlaylist(e.cyclePlaylists())
	case router.OpAddPlaylist:
		p.AddPlaylist()
	case router.OpRemovePlaylist:
		p.RemovePlaylist()
	case router.OpTogglePlaylist:
		p.TogglePlaylist()

	case router.OpSkipForward:
		p.SkipForward()
	case router.OpSkipBackward:
		p.SkipBackward()
	case router.OpSkipForwardP:
		p.SkipForwardP()
	case router.OpSkipBackwardP:
		p.SkipBackwardP()
	case router.OpPause:
		p.Pause()
	case router.OpRestart:
		p.Restart()

	case router.OpClearInput:
		e.host.ClearInput()
	case router.OpAttractReset:
		e.attract.Reset(cmd.Flag && e.attract.IsSet())
	case router.OpAttractActivate:
		e.attract.Activate()
	case router.OpAttractNextPlaylist:
		p.NextPlaylist()
		if e.skipInAttract(p.PlaylistName()) {
			p.NextPlaylist()
		}

	case router.OpFirstCollection:
		return e.firstCollection(st)
	case router.OpRememberMenu:
		e.rememberMenu()
	case router.OpNextPage:
		return e.nextPage(cmd.Arg, cmd.Flag)
	case router.OpPopPage:
		e.popPage(st)
	case router.OpPopCollection:
		p.PopCollection()
	case router.OpRestoreMenu:
		e.restoreMenu()
	case router.OpMenuModeStart:
		e.menuModeStart(st)
	case router.OpHandleMenuEntry:
		return e.handleMenuEntry(ctx)
	case router.OpUpdateLastPlayed:
		e.updateLastPlayed(cmd.Flag)
	case router.OpPlaySelect:
		p.PlaySelect()
	case router.OpLaunch:
		e.launch(ctx, st)
	case router.OpSaveFirstPlaylist:
		e.state.SetFirstPlaylist(p.PlaylistName())
		if err := e.state.Save(); err != nil {
			logging.GetInternalLogger().Error("Could not save first playlist", "error", err)
		}

	default:
		return fmt.Errorf("unknown command %s", cmd)
	}
	return nil
}

// skipInAttract reports whether attract mode should pass over playlist.
func (e *executor) skipInAttract(playlist string) bool {
	skip := config.SplitList(e.conf.CollectionStringOr(e.page.CollectionName(), "attractModeSkipPlaylist", ""), ',')
	return slices.Contains(skip, playlist)
}

// collection loads name, using the collection preloaded during the splash
// when it matches.
func (e *executor) collection(name string) (*collection.Collection, error) {
	if c := e.preloaded; c != nil && c.Name == name {
		e.preloaded = nil
		return c, nil
	}
	c, err := e.collections.Load(name)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		return nil, err
	}
	return c, nil
}

// firstCollection replaces the splash page with the first collection's
// page and selects the first playlist.
func (e *executor) firstCollection(st *router.Status) error {
	name := e.conf.StringOr("firstCollection", "Main")
	next, err := e.pages.Load(name)
	if err != nil {
		return NewInfrastructureError("load_page", err)
	}
	e.page.FreeGraphicsMemory()
	e.page.Cleanup()
	e.page = next
	e.page.SetLocked(st.Kiosk)

	e.conf.Set("currentCollection", name)
	c, err := e.collection(name)
	if err != nil {
		return err
	}
	e.page.PushCollection(c)

	first := "all"
	if saved, ok := e.state.FirstPlaylist(); ok {
		first = saved
	}
	if v, ok := e.conf.String("firstPlaylist"); ok {
		first = v
	}
	if v, ok := e.conf.String("collections." + name + ".firstPlaylist"); ok {
		first = v
	}
	e.selectPlaylistOrAll(first)
	e.page.AllocateGraphicsMemory()
	e.setStatus("")
	return nil
}

func (e *executor) selectPlaylistOrAll(name string) {
	e.page.SelectPlaylist(name)
	if e.page.PlaylistName() != name {
		e.page.SelectPlaylist(constants.PlaylistAll)
	}
}

// rememberMenu records the current collection's playlist and offset.
func (e *executor) rememberMenu() {
	name := e.page.CollectionName()
	if name == "" {
		return
	}
	offset := e.page.ScrollOffsetIndex()
	playlist := e.page.PlaylistName()
	e.lastMenuOffsets[name] = offset
	e.lastMenuPlaylists[name] = playlist
	if e.conf.BoolOr("rememberMenu", false) {
		e.state.SetMenu(name, playlist, offset)
	}
}

// nextPage opens the collection name, on a new page when its layout
// exists and the menu is not showing. A collection that fails to load
// opens empty.
func (e *executor) nextPage(name string, menuMode bool) error {
	e.setStatus(e.translator.Localize(internal.MsgLoadingCollection, map[string]any{"Collection": name}))
	defer e.setStatus("")

	if !menuMode {
		if next, err := e.pages.Collection(name); err == nil {
			e.page.FreeGraphicsMemory()
			e.stack.Push(e.page)
			e.page = next
			e.page.AllocateGraphicsMemory()
		} else {
			logging.GetInternalLogger().Debug("Staying on the current page", "collection", name, "error", err)
		}
	}

	e.conf.Set("currentCollection", name)
	var c *collection.Collection
	if menuMode {
		c = e.collections.LoadMenu(name)
	} else {
		var err error
		if c, err = e.collection(name); err != nil {
			logging.GetInternalLogger().Warn("Showing an empty collection", "collection", name, "error", err)
			c = collection.New(name)
		}
	}
	e.page.PushCollection(c)
	return nil
}

// popPage closes the current page and returns to the one below it.
func (e *executor) popPage(st *router.Status) {
	prev, ok := e.stack.Pop()
	if !ok {
		e.page.PopCollection()
		return
	}
	e.page.FreeGraphicsMemory()
	e.page.Cleanup()
	e.page = prev
	if e.page.SelectedItem() != nil {
		e.page.AllocateGraphicsMemory()
		e.page.SetLocked(st.Kiosk)
	}
}

// restoreMenu selects the remembered playlist and offset of the current
// collection, or autoPlaylist.
func (e *executor) restoreMenu() {
	name := e.page.CollectionName()
	e.conf.Set("currentCollection", name)

	playlist, remembered := e.lastMenuPlaylists[name]
	offset := e.lastMenuOffsets[name]
	if !remembered {
		playlist, offset, remembered = e.state.Menu(name)
	}
	if e.conf.BoolOr("rememberMenu", false) && remembered {
		e.page.SelectPlaylist(playlist)
		e.page.SetScrollOffsetIndex(offset)
		return
	}
	e.selectPlaylistOrAll(e.conf.StringOr("autoPlaylist", constants.PlaylistAll))
}

// menuModeStart opens the menu layout over the current page.
func (e *executor) menuModeStart(st *router.Status) {
	if next, err := e.pages.Menu(); err == nil {
		e.page.FreeGraphicsMemory()
		e.stack.Push(e.page)
		e.page = next
		e.page.SetLocked(st.Kiosk)
		e.page.AllocateGraphicsMemory()
	} else {
		logging.GetInternalLogger().Warn("Could not load the menu layout", "error", err)
	}
	e.conf.Set("currentCollection", MenuCollection)
	e.page.PushCollection(e.collections.LoadMenu(MenuCollection))
}

// handleMenuEntry captures a control for the selected menu entry and
// rebinds input. The entry's CtrlType names the control, with any leading
// marker characters ignored.
func (e *executor) handleMenuEntry(ctx context.Context) error {
	item := e.page.SelectedItem()
	if item == nil {
		return nil
	}
	ctrl := strings.TrimLeftFunc(item.CtrlType, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if ctrl == "" {
		logging.GetInternalLogger().Warn("Menu entry has no control", "entry", item.Name)
		return nil
	}
	key, err := e.host.CaptureControl(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	logging.GetLogger().Info("Binding control", "control", ctrl, "value", key)
	e.conf.Set("controls."+ctrl, key)
	if err := e.host.ReconfigureInput(); err != nil {
		logging.GetInternalLogger().Warn("Controls incomplete after rebinding", "error", err)
	}
	return nil
}

// updateLastPlayed moves the selection to the front of the lastplayed
// playlist. For a launch a visible lastplayed list is rewound.
func (e *executor) updateLastPlayed(launch bool) {
	c := e.page.Collection()
	item := e.page.SelectedItem()
	if c == nil || item == nil {
		return
	}
	c.UpdateLastPlayed(item, e.conf.IntOr("lastplayedSize", 0))
	e.page.UpdateReloadables(0)
	if launch && e.page.PlaylistName() == constants.PlaylistLastPlayed {
		e.page.SetScrollOffsetIndex(0)
		e.page.HighlightLoadArt()
		e.page.ReallocateMenuSpritePoints(true)
	}
}

// launch runs the selected item and blocks until it returns.
func (e *executor) launch(ctx context.Context, st *router.Status) {
	item := e.page.SelectedItem()
	if item == nil {
		return
	}
	e.setStatus(e.translator.Localize(internal.MsgLaunching, map[string]any{"Title": item.FullTitle}))
	e.host.LaunchEnter()
	reboot, err := e.launcher.Run(ctx, item.CollectionName(), item)
	e.setStatus("")
	if err != nil {
		logging.GetLogger().Error("Launch failed", "item", item.Name, "collection", item.CollectionName(), "error", err)
	}
	if reboot {
		st.Reboot = true
		return
	}
	e.host.LaunchExit()
	e.attract.Reset(false)
	now := e.host.Now()
	st.KeyLastTime = now
	st.LaunchReturnTime = now
}

// attractNextPlaylist moves to the next playlist attract mode may show.
func (e *executor) attractNextPlaylist() {
	p := e.page
	name := p.CollectionName()
	cycle := e.conf.BoolOr("collections."+name+".attractModeCyclePlaylist", e.conf.BoolOr("attractModeCyclePlaylist", true))
	list := e.cyclePlaylists()
	if cycle {
		p.NextCyclePlaylist(list)
	} else {
		p.NextPlaylist()
	}
	if !e.skipInAttract(p.PlaylistName()) {
		return
	}
	if !cycle {
		p.NextPlaylist()
		return
	}
	start := slices.Index(list, p.PlaylistName())
	for i := 1; i <= len(list); i++ {
		candidate := list[(start+i)%len(list)]
		if !e.skipInAttract(candidate) && p.PlaylistExists(candidate) {
			p.SelectPlaylist(candidate)
			return
		}
	}
}

// tick runs attract mode and advances the page by dt seconds. It returns
// the state attract mode requests, or StateIdle.
func (e *executor) tick(st *router.Status, dt float64) router.State {
	next := router.StateIdle
	if !st.Splash && !st.Paused {
		switch e.attract.Update(dt, e.page) {
		case AttractNextPlaylist:
			if !st.Kiosk {
				e.attract.Reset(e.attract.IsSet())
				e.attractNextPlaylist()
				next = router.StatePlaylistRequest
			}
		case AttractNextCollection:
			if !st.Kiosk {
				e.attract.Reset(e.attract.IsSet())
				next = router.StateCollectionDownRequest
			}
		}
	}
	if st.MenuMode {
		e.attract.Reset(false)
	}

	e.page.Update(dt)

	if !st.Splash && !st.Paused && e.page.IsAttractIdle() {
		set := e.attract.IsSet()
		switch {
		case !st.Attract && set:
			e.page.AttractEnter()
			e.setStatus(e.translator.Localize(internal.MsgAttractMode, nil))
		case st.Attract && !set:
			e.page.AttractExit()
			e.setStatus("")
		case set:
			e.page.Attract()
		}
		st.Attract = set
	}
	return next
}

// close releases every page.
func (e *executor) close() {
	if e.page != nil {
		e.page.FreeGraphicsMemory()
		e.page.Cleanup()
	}
	e.stack.Drain(func(p *page.Page) {
		p.FreeGraphicsMemory()
		p.Cleanup()
	})
	if e.conf.BoolOr("rememberMenu", false) {
		if err := e.state.Save(); err != nil {
			logging.GetInternalLogger().Warn("Could not save state", "error", err)
		}
	}
}
