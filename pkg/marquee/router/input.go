package router

import (
	"slices"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// navKeys are the keys whose release ends a scroll.
var navKeys = []constants.LogicalKey{
	constants.KeyUp,
	constants.KeyDown,
	constants.KeyLeft,
	constants.KeyRight,
	constants.KeyPlaylistUp,
	constants.KeyPlaylistDown,
	constants.KeyPlaylistLeft,
	constants.KeyPlaylistRight,
	constants.KeyCollectionUp,
	constants.KeyCollectionDown,
	constants.KeyCollectionLeft,
	constants.KeyCollectionRight,
	constants.KeyPageUp,
	constants.KeyPageDown,
	constants.KeyLetterUp,
	constants.KeyLetterDown,
}

// ProcessInput maps the held keys to page commands and returns the state
// the input requests in the returned Status. StateIdle means no transition.
func ProcessInput(st Status, env Env) (Status, []Command) {
	s := &stepper{st: st, env: env}
	s.st.State = s.processInput()
	return s.st, s.cmds
}

func (s *stepper) processInput() State {
	if s.env.Keys == nil {
		return StateIdle
	}
	held := s.env.Keys.Held
	page := s.env.Page
	cfg := s.env.Settings

	next, prev := constants.KeyDown, constants.KeyUp
	if page.Horizontal {
		next, prev = constants.KeyRight, constants.KeyLeft
	}
	if held(next) {
		s.doFlag(OpAttractReset, false)
		s.scroll(DirForward)
		return StateIdle
	}
	if held(prev) {
		s.doFlag(OpAttractReset, false)
		s.scroll(DirBack)
		return StateIdle
	}

	state := StateIdle
	if page.Idle && s.env.Now-s.st.KeyLastTime > cfg.KeyDelay {
		state = s.actionKeys()
	}

	if state != StateIdle {
		s.st.KeyLastTime = s.env.Now
		return state
	}

	if slices.ContainsFunc(navKeys, held) || s.env.AttractActive {
		return state
	}
	s.do(OpResetScrollPeriod)
	if page.Scrolling {
		s.doFlag(OpAttractReset, true)
		return StateHighlightRequest
	}
	return state
}

// actionKeys handles the first matching non-scroll key.
func (s *stepper) actionKeys() State {
	held := s.env.Keys.Held
	page := s.env.Page
	cfg := s.env.Settings
	kiosk := s.st.Kiosk
	horizontal := page.Horizontal

	reset := func() { s.doFlag(OpAttractReset, false) }
	favorite := func(op Op) State {
		reset()
		s.do(OpRememberSelectedItem)
		s.do(op)
		s.do(OpOnNewItemSelected)
		return StatePlaylistEnter
	}
	media := func(op Op) {
		reset()
		s.do(op)
		s.do(OpJukeboxJump)
		s.st.KeyLastTime = s.env.Now
	}
	collection := func(request State) State {
		reset()
		if page.Depth != 1 && cfg.BackOnCollection {
			return StateBackRequest
		}
		return request
	}
	cycleCollection := func(dir int) State {
		reset()
		n := len(cfg.CycleCollection)
		if n == 0 {
			return StateIdle
		}
		s.st.CycleIndex = ((s.st.CycleIndex+dir)%n + n) % n
		s.st.NextPage = cfg.CycleCollection[s.st.CycleIndex]
		s.st.MenuMode = false
		return StateNextPageRequest
	}

	switch {
	case held(constants.KeyKiosk):
		reset()
		s.st.Kiosk = !s.st.Kiosk
		s.doFlag(OpSetLocked, s.st.Kiosk)
		s.do(OpOnNewItemSelected)
		s.st.KeyLastTime = s.env.Now

	case held(constants.KeyMenu) && !s.st.MenuMode:
		return StateMenuModeStartRequest

	case held(constants.KeyQuitCombo1) && held(constants.KeyQuitCombo2):
		reset()
		if cfg.ControllerComboExit {
			return StateQuitRequest
		}

	case !kiosk && ((held(constants.KeyCollectionUp) && (horizontal || !held(constants.KeyUp))) ||
		(held(constants.KeyCollectionLeft) && (!horizontal || !held(constants.KeyLeft)))):
		return collection(StateCollectionUpRequest)

	case !kiosk && ((held(constants.KeyCollectionDown) && (horizontal || !held(constants.KeyDown))) ||
		(held(constants.KeyCollectionRight) && (!horizontal || !held(constants.KeyRight)))):
		return collection(StateCollectionDownRequest)

	case !kiosk && held(constants.KeyPageUp):
		reset()
		s.doDir(OpPageScroll, DirBack)
		return StateMenuJumpRequest

	case !kiosk && held(constants.KeyPageDown):
		reset()
		s.doDir(OpPageScroll, DirForward)
		return StateMenuJumpRequest

	case held(constants.KeyLetterUp), held(constants.KeyLetterDown):
		reset()
		if page.PlaylistName == constants.PlaylistLastPlayed {
			return StateIdle
		}
		dir := DirForward
		if held(constants.KeyLetterUp) {
			dir = DirBack
		}
		if cfg.CfwLetterSub && page.HasSubs {
			s.doDir(OpCfwLetterSubScroll, dir)
		} else {
			s.doDir(OpLetterScroll, dir)
		}
		return StateMenuJumpRequest

	case !kiosk && held(constants.KeyFavPlaylist):
		reset()
		s.do(OpFavPlaylist)
		return StatePlaylistRequest

	case !kiosk && (held(constants.KeyNextPlaylist) ||
		(horizontal && held(constants.KeyPlaylistDown)) ||
		(!horizontal && held(constants.KeyPlaylistRight))):
		reset()
		s.do(OpNextPlaylist)
		return StatePlaylistRequest

	case !kiosk && (held(constants.KeyPrevPlaylist) ||
		(horizontal && held(constants.KeyPlaylistUp)) ||
		(!horizontal && held(constants.KeyPlaylistLeft))):
		reset()
		s.do(OpPlaylistPrevEnter)
		s.do(OpPrevPlaylist)
		return StatePlaylistRequest

	case !kiosk && (held(constants.KeyCyclePlaylist) || held(constants.KeyNextCyclePlaylist)):
		reset()
		s.do(OpNextCyclePlaylist)
		return StatePlaylistRequest

	case !kiosk && held(constants.KeyCycleCollection):
		return cycleCollection(1)

	case !kiosk && held(constants.KeyPrevCycleCollection):
		return cycleCollection(-1)

	case !kiosk && held(constants.KeyPrevCyclePlaylist):
		reset()
		s.do(OpPlaylistPrevEnter)
		s.do(OpPrevCyclePlaylist)
		return StatePlaylistRequest

	case !kiosk && held(constants.KeyRemovePlaylist):
		return favorite(OpRemovePlaylist)

	case !kiosk && held(constants.KeyAddPlaylist):
		return favorite(OpAddPlaylist)

	case !kiosk && held(constants.KeyTogglePlaylist):
		if page.PlaylistName != constants.PlaylistFavorites {
			return favorite(OpTogglePlaylist)
		}

	case held(constants.KeySkipForward):
		media(OpSkipForward)

	case held(constants.KeySkipBackward):
		media(OpSkipBackward)

	case held(constants.KeySkipForwardP):
		media(OpSkipForwardP)

	case held(constants.KeySkipBackwardP):
		media(OpSkipBackwardP)

	case held(constants.KeyPause):
		s.do(OpPause)
		s.do(OpJukeboxJump)
		s.st.KeyLastTime = s.env.Now
		s.st.Paused = !s.st.Paused
		if !s.st.Paused {
			s.do(OpAttractActivate)
		}

	case held(constants.KeyRestart):
		reset()
		s.do(OpRestart)
		s.st.KeyLastTime = s.env.Now

	case held(constants.KeyRandom):
		reset()
		s.do(OpSelectRandom)
		return StateMenuJumpRequest

	case held(constants.KeySelect) && page.HasSelection:
		reset()
		s.st.NextPage = page.SelectedName
		if page.SelectedLeaf {
			if s.st.MenuMode {
				return StateHandleMenuEntry
			}
			return StateLaunchEnter
		}
		if !slices.Contains(cfg.AttractModeSkipPlaylist, page.PlaylistName) &&
			page.SelectedCollection != cfg.LastPlayedSkipCollection {
			s.doFlag(OpUpdateLastPlayed, false)
		}
		return StateNextPageRequest

	case !kiosk && held(constants.KeyBack):
		reset()
		if page.Depth <= 1 && page.PagesStacked == 0 {
			if cfg.ExitOnFirstPageBack {
				return StateQuitRequest
			}
			return StateIdle
		}
		return StateBackRequest

	case held(constants.KeyQuit):
		reset()
		return StateQuitRequest

	case held(constants.KeyReboot):
		reset()
		s.st.Reboot = true
		return StateQuitRequest

	case !kiosk && held(constants.KeySaveFirstPlaylist):
		reset()
		if page.Depth == 1 {
			s.do(OpSaveFirstPlaylist)
		}
	}
	return StateIdle
}
