package router

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

func held(k ...constants.LogicalKey) func(env *Env) {
	return func(env *Env) {
		m := keys{}
		for _, key := range k {
			m[key] = true
		}
		env.Keys = m
	}
}

func TestStepInput(t *testing.T) {
	runSteps(t, []stepCase{
		{
			name:  "scroll down",
			setup: held(constants.KeyDown),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SetScrolling(forward) Scroll(true) UpdateScrollPeriod",
		},
		{
			name: "horizontal scroll",
			setup: func(env *Env) {
				held(constants.KeyLeft)(env)
				env.Page.Horizontal = true
			},
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SetScrolling(back) Scroll(false) UpdateScrollPeriod",
		},
		{
			name:  "release ends the scroll",
			setup: func(env *Env) { env.Page.Scrolling = true },
			state: StateHighlightRequest,
			trace: "Cleanup ResetScrollPeriod AttractReset(true)",
		},
		{
			name:  "attract scrolling is left alone",
			setup: func(env *Env) { env.Page.Scrolling = true; env.AttractActive = true },
			state: StateIdle,
			trace: "Cleanup",
		},
		{
			name:  "select launches a game",
			setup: held(constants.KeySelect),
			state: StateLaunchEnter,
			trace: "Cleanup AttractReset(false)",
			check: func(t *testing.T, st Status) {
				if st.NextPage != "Pac-Man" || st.KeyLastTime != time.Second {
					t.Errorf("NextPage = %q, KeyLastTime = %v", st.NextPage, st.KeyLastTime)
				}
			},
		},
		{
			name:  "select in menu mode runs the entry",
			st:    Status{MenuMode: true},
			setup: held(constants.KeySelect),
			state: StateHandleMenuEntry,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name: "select opens a collection",
			setup: func(env *Env) {
				held(constants.KeySelect)(env)
				env.Page.SelectedLeaf = false
			},
			state: StateNextPageRequest,
			trace: "Cleanup AttractReset(false) UpdateLastPlayed(false)",
		},
		{
			name: "skipped playlist is not recorded",
			setup: func(env *Env) {
				held(constants.KeySelect)(env)
				env.Page.SelectedLeaf = false
				env.Settings.AttractModeSkipPlaylist = []string{constants.PlaylistAll}
			},
			state: StateNextPageRequest,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name:  "key delay",
			st:    Status{KeyLastTime: 900 * time.Millisecond},
			setup: held(constants.KeySelect),
			state: StateIdle,
			trace: "Cleanup ResetScrollPeriod",
		},
		{
			name:  "launch cooldown",
			st:    Status{LaunchReturnTime: 900 * time.Millisecond},
			setup: held(constants.KeySelect),
			state: StateIdle,
			trace: "Cleanup",
			check: func(t *testing.T, st Status) {
				if st.LaunchReturnTime == 0 {
					t.Error("LaunchReturnTime cleared during cooldown")
				}
			},
		},
		{
			name:  "cooldown over",
			st:    Status{LaunchReturnTime: 500 * time.Millisecond},
			setup: held(constants.KeySelect),
			state: StateLaunchEnter,
			trace: "Cleanup AttractReset(false)",
			check: func(t *testing.T, st Status) {
				if st.LaunchReturnTime != 0 {
					t.Error("LaunchReturnTime not cleared")
				}
			},
		},
		{
			name:  "busy page ignores keys",
			setup: func(env *Env) { held(constants.KeySelect)(env); env.Page.Idle = false },
			state: StateIdle,
			trace: "Cleanup",
		},
		{
			name: "back on the first page exits",
			setup: func(env *Env) {
				held(constants.KeyBack)(env)
				env.Settings.ExitOnFirstPageBack = true
			},
			state: StateQuitRequest,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name:  "back on the first page stays",
			setup: held(constants.KeyBack),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) ResetScrollPeriod",
		},
		{
			name: "back from a stacked page",
			setup: func(env *Env) {
				held(constants.KeyBack)(env)
				env.Page.PagesStacked = 1
			},
			state: StateBackRequest,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name: "collection up goes back",
			setup: func(env *Env) {
				held(constants.KeyCollectionUp)(env)
				env.Page.Depth = 2
				env.Settings.BackOnCollection = true
			},
			state: StateBackRequest,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name:  "collection key with its scroll key scrolls",
			setup: held(constants.KeyCollectionDown, constants.KeyDown),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SetScrolling(forward) Scroll(true) UpdateScrollPeriod",
		},
		{
			name:  "kiosk blocks collection keys",
			st:    Status{Kiosk: true},
			setup: held(constants.KeyCollectionDown),
			state: StateIdle,
			trace: "Cleanup",
		},
		{
			name:  "kiosk toggle",
			setup: held(constants.KeyKiosk),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SetLocked(true) OnNewItemSelected ResetScrollPeriod",
			check: func(t *testing.T, st Status) {
				if !st.Kiosk {
					t.Error("Kiosk not set")
				}
			},
		},
		{
			name:  "menu key",
			setup: held(constants.KeyMenu),
			state: StateMenuModeStartRequest,
			trace: "Cleanup",
		},
		{
			name:  "quit combo disabled",
			setup: held(constants.KeyQuitCombo1, constants.KeyQuitCombo2),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) ResetScrollPeriod",
		},
		{
			name: "quit combo",
			setup: func(env *Env) {
				held(constants.KeyQuitCombo1, constants.KeyQuitCombo2)(env)
				env.Settings.ControllerComboExit = true
			},
			state: StateQuitRequest,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name:  "page up",
			setup: held(constants.KeyPageUp),
			state: StateMenuJumpRequest,
			trace: "Cleanup AttractReset(false) PageScroll(back)",
		},
		{
			name: "letter jump ignored on lastplayed",
			setup: func(env *Env) {
				held(constants.KeyLetterDown)(env)
				env.Page.PlaylistName = constants.PlaylistLastPlayed
			},
			state: StateIdle,
			trace: "Cleanup AttractReset(false)",
		},
		{
			name:  "letter jump",
			setup: held(constants.KeyLetterDown),
			state: StateMenuJumpRequest,
			trace: "Cleanup AttractReset(false) LetterScroll(forward)",
		},
		{
			name: "letter jump by sub-collection",
			setup: func(env *Env) {
				held(constants.KeyLetterUp)(env)
				env.Settings.CfwLetterSub = true
				env.Page.HasSubs = true
			},
			state: StateMenuJumpRequest,
			trace: "Cleanup AttractReset(false) CfwLetterSubScroll(back)",
		},
		{
			name:  "favorites",
			setup: held(constants.KeyFavPlaylist),
			state: StatePlaylistRequest,
			trace: "Cleanup AttractReset(false) FavPlaylist",
		},
		{
			name:  "next playlist",
			setup: held(constants.KeyPlaylistRight),
			state: StatePlaylistRequest,
			trace: "Cleanup AttractReset(false) NextPlaylist",
		},
		{
			name: "horizontal previous playlist",
			setup: func(env *Env) {
				held(constants.KeyPlaylistUp)(env)
				env.Page.Horizontal = true
			},
			state: StatePlaylistRequest,
			trace: "Cleanup AttractReset(false) PlaylistPrevEnter PrevPlaylist",
		},
		{
			name:  "cycle playlist",
			setup: held(constants.KeyCyclePlaylist),
			state: StatePlaylistRequest,
			trace: "Cleanup AttractReset(false) NextCyclePlaylist",
		},
		{
			name: "cycle collection wraps",
			st:   Status{CycleIndex: 1, MenuMode: true},
			setup: func(env *Env) {
				held(constants.KeyCycleCollection)(env)
				env.Settings.CycleCollection = []string{"Arcade", "Consoles"}
			},
			state: StateNextPageRequest,
			trace: "Cleanup AttractReset(false)",
			check: func(t *testing.T, st Status) {
				if st.CycleIndex != 0 || st.NextPage != "Arcade" || st.MenuMode {
					t.Errorf("CycleIndex = %d, NextPage = %q, MenuMode = %t", st.CycleIndex, st.NextPage, st.MenuMode)
				}
			},
		},
		{
			name: "previous cycle collection wraps",
			setup: func(env *Env) {
				held(constants.KeyPrevCycleCollection)(env)
				env.Settings.CycleCollection = []string{"Arcade", "Consoles"}
			},
			state: StateNextPageRequest,
			trace: "Cleanup AttractReset(false)",
			check: func(t *testing.T, st Status) {
				if st.CycleIndex != 1 || st.NextPage != "Consoles" {
					t.Errorf("CycleIndex = %d, NextPage = %q", st.CycleIndex, st.NextPage)
				}
			},
		},
		{
			name:  "add favorite",
			setup: held(constants.KeyAddPlaylist),
			state: StatePlaylistEnter,
			trace: "Cleanup AttractReset(false) RememberSelectedItem AddPlaylist OnNewItemSelected",
		},
		{
			name: "toggle ignored on favorites",
			setup: func(env *Env) {
				held(constants.KeyTogglePlaylist)(env)
				env.Page.PlaylistName = constants.PlaylistFavorites
			},
			state: StateIdle,
			trace: "Cleanup ResetScrollPeriod",
		},
		{
			name:  "skip forward",
			setup: held(constants.KeySkipForward),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SkipForward JukeboxJump ResetScrollPeriod",
		},
		{
			name:  "unpause resumes attract",
			st:    Status{Paused: true},
			setup: held(constants.KeyPause),
			state: StateIdle,
			trace: "Cleanup Pause JukeboxJump AttractActivate ResetScrollPeriod",
			check: func(t *testing.T, st Status) {
				if st.Paused {
					t.Error("still paused")
				}
			},
		},
		{
			name:  "random",
			setup: held(constants.KeyRandom),
			state: StateMenuJumpRequest,
			trace: "Cleanup AttractReset(false) SelectRandom",
		},
		{
			name:  "reboot",
			setup: held(constants.KeyReboot),
			state: StateQuitRequest,
			trace: "Cleanup AttractReset(false)",
			check: func(t *testing.T, st Status) {
				if !st.Reboot {
					t.Error("Reboot not set")
				}
			},
		},
		{
			name:  "save first playlist",
			setup: held(constants.KeySaveFirstPlaylist),
			state: StateIdle,
			trace: "Cleanup AttractReset(false) SaveFirstPlaylist ResetScrollPeriod",
		},
	})
}

func TestProcessInputWithoutKeys(t *testing.T) {
	env := idleEnv()
	env.Keys = nil
	st, cmds := ProcessInput(Status{State: StateHighlightEnter}, env)
	if st.State != StateIdle || len(cmds) != 0 {
		t.Errorf("state = %s, commands = %q", st.State, trace(cmds))
	}
}
