package router

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// Step advances the run loop by one tick. It does not touch the page: the
// returned commands describe every action in the order the executor must
// run them.
func Step(st Status, env Env) (Status, []Command) {
	s := &stepper{st: st, env: env}
	s.step()
	return s.st, s.cmds
}

type stepper struct {
	st   Status
	env  Env
	cmds []Command
}

func (s *stepper) do(op Op) {
	s.cmds = append(s.cmds, Command{Op: op})
}

func (s *stepper) doFlag(op Op, flag bool) {
	s.cmds = append(s.cmds, Command{Op: op, Flag: flag})
}

func (s *stepper) doDir(op Op, dir Direction) {
	s.cmds = append(s.cmds, Command{Op: op, Dir: dir})
}

func (s *stepper) to(state State) {
	s.st.State = state
}

// scroll starts a scroll in dir and moves one step.
func (s *stepper) scroll(dir Direction) {
	s.doDir(OpSetScrolling, dir)
	s.doFlag(OpScroll, dir == DirForward)
	s.do(OpUpdateScrollPeriod)
}

// input runs the input chain and returns the state it requested. The
// current state is left for the caller to change.
func (s *stepper) input() State {
	next, cmds := ProcessInput(s.st, s.env)
	requested := next.State
	next.State = s.st.State
	s.st = next
	s.cmds = append(s.cmds, cmds...)
	return requested
}

// attractPlaylistCheck counts a collection change in attract mode and moves
// to the next playlist once enough collections went by.
func (s *stepper) attractPlaylistCheck() {
	if !s.st.Attract {
		return
	}
	s.st.AttractCollections++
	n := s.env.Settings.AttractModePlaylistCollectionNumber
	if n > 0 && s.st.AttractCollections >= n {
		s.st.AttractCollections = 0
		s.do(OpAttractNextPlaylist)
		s.to(StatePlaylistRequest)
	}
}

// popMenu leaves the top collection, or the whole page at depth one.
func (s *stepper) popMenu() {
	s.do(OpRememberMenu)
	if s.env.Page.Depth == 1 {
		s.do(OpPopPage)
	} else {
		s.do(OpPopCollection)
	}
	s.do(OpRestoreMenu)
}

func (s *stepper) step() {
	page := s.env.Page
	cfg := s.env.Settings

	if s.st.Splash && s.env.Keys != nil {
		if s.env.Keys.Pressed(constants.KeySelect) {
			s.st.ExitSplash = true
			s.do(OpClearInput)
			s.doFlag(OpAttractReset, false)
		} else if s.env.Keys.Pressed(constants.KeyQuit) {
			s.st.Done = true
			return
		}
	}

	switch s.st.State {
	case StateIdle:
		s.do(OpCleanup)
		if !s.st.Splash {
			since := s.env.Now - s.st.LaunchReturnTime
			if s.st.LaunchReturnTime == 0 || since > constants.DefaultLaunchCooldown {
				if page.Idle {
					s.to(s.input())
				}
				s.st.LaunchReturnTime = 0
			}
		}
		if s.st.Splash && (s.env.Initialized || s.env.InitFailed) {
			shown := page.MinShowTime <= s.env.Now-s.st.SplashTime && !page.Playing
			if s.st.ExitSplash || shown {
				if s.env.InitFailed {
					s.to(StateQuitRequest)
					return
				}
				s.do(OpStop)
				s.to(StateSplashExit)
			}
		}

	case StateLoadArt:
		s.do(OpStart)
		s.to(StateEnter)

	case StateEnter:
		if !page.Idle {
			return
		}
		if !s.st.Splash && cfg.StartCollectionEnter && page.HasSelection && !page.SelectedLeaf {
			s.st.NextPage = page.SelectedName
			s.to(StateNextPageRequest)
			return
		}
		s.to(StateIdle)

	case StateSplashExit:
		if !page.Idle {
			return
		}
		s.do(OpFirstCollection)
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, true)
		s.st.Splash = false
		s.st.CycleIndex = 0
		s.to(StateLoadArt)

	case StatePlaylistRequest:
		if cfg.PlaylistInputClear {
			s.do(OpClearInput)
		}
		s.do(OpPlaylistExit)
		s.doDir(OpSetScrolling, DirIdle)
		s.to(StatePlaylistExit)

	case StatePlaylistExit:
		if !page.Idle {
			return
		}
		if page.FromPlaylistNav {
			if page.FromPreviousPlaylist {
				s.do(OpPlaylistPrevExit)
			} else {
				s.do(OpPlaylistNextExit)
			}
		}
		if cfg.RememberMenu && page.PlaylistName != constants.PlaylistLastPlayed {
			s.do(OpReturnToRememberSelectedItem)
		}
		s.to(StatePlaylistLoadArt)

	case StatePlaylistLoadArt:
		if !page.Idle {
			return
		}
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, true)
		s.do(OpPlaylistEnter)
		s.to(StatePlaylistEnter)

	case StatePlaylistEnter, StateMenuJumpEnter, StateNew:
		if page.Idle {
			s.to(StateIdle)
		}

	case StateMenuJumpRequest:
		if cfg.JumpInputClear {
			s.do(OpClearInput)
		}
		s.do(OpMenuJumpExit)
		s.doDir(OpSetScrolling, DirIdle)
		s.to(StateMenuJumpExit)

	case StateMenuJumpExit:
		if page.Idle {
			s.to(StateMenuJumpLoadArt)
		}

	case StateMenuJumpLoadArt:
		if !page.Idle {
			return
		}
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, false)
		s.do(OpMenuJumpEnter)
		s.to(StateMenuJumpEnter)

	case StateHighlightRequest:
		s.doDir(OpSetScrolling, DirIdle)
		s.do(OpHighlightExit)
		s.to(StateHighlightExit)

	case StateHighlightExit:
		if !page.Idle {
			return
		}
		s.do(OpHighlightLoadArt)
		s.to(StateHighlightLoadArt)

	case StateHighlightLoadArt:
		s.do(OpHighlightEnter)
		s.to(StateHighlightEnter)

	case StateHighlightEnter:
		if page.MenuIdle {
			switch req := s.input(); req {
			case StateHighlightRequest, StateMenuJumpRequest, StatePlaylistRequest:
				s.to(req)
				return
			}
		}
		if page.Idle {
			s.to(StateIdle)
		}

	case StateNextPageRequest:
		s.do(OpExitMenu)
		s.to(StateNextPageMenuExit)

	case StateNextPageMenuExit:
		if !page.Idle {
			return
		}
		s.do(OpRememberMenu)
		s.cmds = append(s.cmds, Command{Op: OpNextPage, Arg: s.st.NextPage, Flag: s.st.MenuMode})
		s.do(OpRestoreMenu)
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, true)
		s.to(StateNextPageMenuLoadArt)

	case StateNextPageMenuLoadArt:
		if page.CollectionSize == 0 && cfg.BackOnEmpty {
			s.to(StateBackMenuExit)
			return
		}
		if page.Depth != 1 {
			s.do(OpEnterMenu)
		} else {
			s.do(OpStart)
		}
		s.to(StateNextPageMenuEnter)

	case StateNextPageMenuEnter, StateBackMenuEnter:
		if !page.Idle {
			return
		}
		if cfg.CollectionInputClear {
			s.do(OpClearInput)
		}
		s.to(StateIdle)

	case StateCollectionDownRequest, StateCollectionUpRequest:
		down := s.st.State == StateCollectionDownRequest
		exit, enter := StateCollectionUpExit, StateCollectionUpEnter
		if down {
			exit, enter = StateCollectionDownExit, StateCollectionDownEnter
		}
		switch {
		case page.PagesStacked > 0 && page.Depth == 1:
			s.do(OpStop)
			s.st.MenuMode = false
			s.to(exit)
		case page.Depth > 1:
			s.do(OpExitMenu)
			s.to(exit)
		default:
			s.to(enter)
			if down {
				s.attractPlaylistCheck()
			}
		}

	case StateCollectionDownExit, StateCollectionUpExit:
		if !page.Idle {
			return
		}
		s.popMenu()
		if s.st.State == StateCollectionDownExit {
			s.to(StateCollectionDownMenuEnter)
			s.do(OpOnNewItemSelected)
			s.attractPlaylistCheck()
			return
		}
		s.to(StateCollectionUpMenuEnter)
		s.do(OpOnNewItemSelected)

	case StateCollectionDownMenuEnter:
		s.do(OpEnterMenu)
		s.to(StateCollectionDownEnter)

	case StateCollectionUpMenuEnter:
		s.do(OpEnterMenu)
		s.to(StateCollectionUpEnter)

	case StateCollectionDownEnter:
		if !page.Idle {
			return
		}
		n := cfg.AttractModePlaylistCollectionNumber
		if !(s.st.Attract && n > 0 && s.st.AttractCollections == 0) {
			s.scroll(DirForward)
		}
		s.to(StateCollectionDownScroll)

	case StateCollectionUpEnter:
		if !page.Idle {
			return
		}
		s.scroll(DirBack)
		s.to(StateCollectionUpScroll)

	case StateCollectionDownScroll:
		if !page.MenuIdle {
			return
		}
		if s.st.Attract && page.HasSelection && page.SelectedName == cfg.AttractModeSkipCollection {
			s.scroll(DirForward)
			return
		}
		s.collectionScrolled(page.SelectedLeaf || (!s.st.Attract && !cfg.EnterOnCollection))

	case StateCollectionUpScroll:
		if !page.MenuIdle {
			return
		}
		s.collectionScrolled(page.SelectedLeaf || !cfg.EnterOnCollection)

	case StateCollectionHighlightRequest:
		s.do(OpHighlightExit)
		s.to(StateCollectionHighlightExit)

	case StateCollectionHighlightExit:
		if !page.Idle {
			return
		}
		s.do(OpHighlightLoadArt)
		s.to(StateCollectionHighlightLoadArt)

	case StateCollectionHighlightLoadArt:
		s.do(OpHighlightEnter)
		s.to(StateCollectionHighlightEnter)

	case StateCollectionHighlightEnter:
		if !page.Idle {
			return
		}
		switch req := s.input(); req {
		case StateCollectionDownRequest, StateCollectionUpRequest:
			s.to(req)
		default:
			s.to(StateNextPageRequest)
		}

	case StateHandleMenuEntry:
		s.do(OpClearInput)
		s.do(OpHandleMenuEntry)
		s.do(OpClearInput)
		s.to(StateIdle)

	case StateLaunchEnter:
		s.do(OpEnterGame)
		s.do(OpPlaySelect)
		s.to(StateLaunchRequest)

	case StateLaunchRequest:
		if !page.Idle || page.SelectPlays {
			return
		}
		if page.SelectedCollection != cfg.LastPlayedSkipCollection {
			s.doFlag(OpUpdateLastPlayed, true)
		}
		s.do(OpLaunch)
		s.doFlag(OpAttractReset, false)
		s.do(OpExitGame)
		s.to(StateLaunchExit)

	case StateLaunchExit:
		if s.st.Reboot {
			s.to(StateQuitRequest)
			return
		}
		if page.Idle {
			s.to(StateIdle)
		}

	case StateBackRequest:
		if page.Depth == 1 {
			s.do(OpStop)
			s.st.MenuMode = false
		} else {
			s.do(OpExitMenu)
		}
		s.to(StateBackMenuExit)

	case StateBackMenuExit:
		if !page.Idle {
			return
		}
		s.popMenu()
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, true)
		s.to(StateBackMenuLoadArt)

	case StateBackMenuLoadArt:
		s.do(OpEnterMenu)
		s.to(StateBackMenuEnter)

	case StateMenuModeStartRequest:
		if !page.Idle {
			return
		}
		s.do(OpRememberMenu)
		s.do(OpMenuModeStart)
		s.do(OpOnNewItemSelected)
		s.doFlag(OpReallocate, true)
		s.st.MenuMode = true
		s.to(StateMenuModeStartLoadArt)

	case StateMenuModeStartLoadArt:
		s.do(OpStart)
		s.to(StateMenuModeStartEnter)

	case StateMenuModeStartEnter:
		if !page.Idle {
			return
		}
		s.do(OpClearInput)
		s.to(StateIdle)

	case StateQuitRequest:
		s.do(OpStop)
		s.to(StateQuit)

	case StateQuit:
		if page.GraphicsIdle {
			s.st.Done = true
		}
	}
}

// collectionScrolled settles a collection scroll: a further collection
// request keeps scrolling, anything else opens or highlights the selection.
func (s *stepper) collectionScrolled(highlight bool) {
	switch req := s.input(); req {
	case StateCollectionDownRequest, StateCollectionUpRequest:
		s.to(req)
		return
	}
	s.doDir(OpSetScrolling, DirIdle)
	s.st.NextPage = s.env.Page.SelectedName
	if highlight || !s.env.Page.HasSelection {
		s.to(StateHighlightRequest)
		return
	}
	s.to(StateCollectionHighlightExit)
}
