package router

import "fmt"

// Op names an action the run loop performs on the current page or on the
// frontend itself.
type Op int

const (
	OpCleanup Op = iota
	OpStart
	OpStop

	OpEnterMenu
	OpExitMenu
	OpEnterGame
	OpExitGame
	OpHighlightEnter
	OpHighlightExit
	OpHighlightLoadArt
	OpPlaylistEnter
	OpPlaylistExit
	OpPlaylistNextExit
	OpPlaylistPrevExit
	OpPlaylistPrevEnter
	OpMenuJumpEnter
	OpMenuJumpExit
	OpJukeboxJump

	OpSetScrolling
	OpScroll
	OpUpdateScrollPeriod
	OpResetScrollPeriod
	OpPageScroll
	OpLetterScroll
	OpCfwLetterSubScroll
	OpSelectRandom
	OpOnNewItemSelected
	OpReallocate
	OpSetLocked

	OpRememberSelectedItem
	OpReturnToRememberSelectedItem
	OpFavPlaylist
	OpNextPlaylist
	OpPrevPlaylist
	OpNextCyclePlaylist
	OpPrevCyclePlaylist
	OpAddPlaylist
	OpRemovePlaylist
	OpTogglePlaylist

	OpSkipForward
	OpSkipBackward
	OpSkipForwardP
	OpSkipBackwardP
	OpPause
	OpRestart

	OpClearInput
	OpAttractReset
	OpAttractActivate
	OpAttractNextPlaylist

	OpFirstCollection
	OpRememberMenu
	OpNextPage
	OpPopPage
	OpPopCollection
	OpRestoreMenu
	OpMenuModeStart
	OpHandleMenuEntry
	OpUpdateLastPlayed
	OpPlaySelect
	OpLaunch
	OpSaveFirstPlaylist
)

var opNames = [...]string{
	OpCleanup:                      "Cleanup",
	OpStart:                        "Start",
	OpStop:                         "Stop",
	OpEnterMenu:                    "EnterMenu",
	OpExitMenu:                     "ExitMenu",
	OpEnterGame:                    "EnterGame",
	OpExitGame:                     "ExitGame",
	OpHighlightEnter:               "HighlightEnter",
	OpHighlightExit:                "HighlightExit",
	OpHighlightLoadArt:             "HighlightLoadArt",
	OpPlaylistEnter:                "PlaylistEnter",
	OpPlaylistExit:                 "PlaylistExit",
	OpPlaylistNextExit:             "PlaylistNextExit",
	OpPlaylistPrevExit:             "PlaylistPrevExit",
	OpPlaylistPrevEnter:            "PlaylistPrevEnter",
	OpMenuJumpEnter:                "MenuJumpEnter",
	OpMenuJumpExit:                 "MenuJumpExit",
	OpJukeboxJump:                  "JukeboxJump",
	OpSetScrolling:                 "SetScrolling",
	OpScroll:                       "Scroll",
	OpUpdateScrollPeriod:           "UpdateScrollPeriod",
	OpResetScrollPeriod:            "ResetScrollPeriod",
	OpPageScroll:                   "PageScroll",
	OpLetterScroll:                 "LetterScroll",
	OpCfwLetterSubScroll:           "CfwLetterSubScroll",
	OpSelectRandom:                 "SelectRandom",
	OpOnNewItemSelected:            "OnNewItemSelected",
	OpReallocate:                   "Reallocate",
	OpSetLocked:                    "SetLocked",
	OpRememberSelectedItem:         "RememberSelectedItem",
	OpReturnToRememberSelectedItem: "ReturnToRememberSelectedItem",
	OpFavPlaylist:                  "FavPlaylist",
	OpNextPlaylist:                 "NextPlaylist",
	OpPrevPlaylist:                 "PrevPlaylist",
	OpNextCyclePlaylist:            "NextCyclePlaylist",
	OpPrevCyclePlaylist:            "PrevCyclePlaylist",
	OpAddPlaylist:                  "AddPlaylist",
	OpRemovePlaylist:               "RemovePlaylist",
	OpTogglePlaylist:               "TogglePlaylist",
	OpSkipForward:                  "SkipForward",
	OpSkipBackward:                 "SkipBackward",
	OpSkipForwardP:                 "SkipForwardP",
	OpSkipBackwardP:                "SkipBackwardP",
	OpPause:                        "Pause",
	OpRestart:                      "Restart",
	OpClearInput:                   "ClearInput",
	OpAttractReset:                 "AttractReset",
	OpAttractActivate:              "AttractActivate",
	OpAttractNextPlaylist:          "AttractNextPlaylist",
	OpFirstCollection:              "FirstCollection",
	OpRememberMenu:                 "RememberMenu",
	OpNextPage:                     "NextPage",
	OpPopPage:                      "PopPage",
	OpPopCollection:                "PopCollection",
	OpRestoreMenu:                  "RestoreMenu",
	OpMenuModeStart:                "MenuModeStart",
	OpHandleMenuEntry:              "HandleMenuEntry",
	OpUpdateLastPlayed:             "UpdateLastPlayed",
	OpPlaySelect:                   "PlaySelect",
	OpLaunch:                       "Launch",
	OpSaveFirstPlaylist:            "SaveFirstPlaylist",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Direction is a scroll direction argument.
type Direction int

const (
	DirIdle Direction = iota
	DirForward
	DirBack
)

// Command is one action for the executor. Dir, Flag and Arg carry the
// arguments of the ops that take them:
//
//   - OpSetScrolling, OpPageScroll, OpLetterScroll, OpCfwLetterSubScroll: Dir
//   - OpScroll: Flag is forward
//   - OpReallocate: Flag includes the playlist list
//   - OpSetLocked: Flag is the lock state
//   - OpAttractReset: Flag keeps attract mode set
//   - OpNextPage: Arg is the collection, Flag opens it in menu mode
//   - OpUpdateLastPlayed: Flag is set for a launch, which also rewinds a
//     visible lastplayed playlist
type Command struct {
	Op   Op
	Dir  Direction
	Flag bool
	Arg  string
}

func (c Command) String() string {
	switch c.Op {
	case OpSetScrolling, OpPageScroll, OpLetterScroll, OpCfwLetterSubScroll:
		return fmt.Sprintf("%s(%s)", c.Op, c.Dir)
	case OpScroll, OpReallocate, OpSetLocked, OpAttractReset, OpUpdateLastPlayed:
		return fmt.Sprintf("%s(%t)", c.Op, c.Flag)
	case OpNextPage:
		return fmt.Sprintf("%s(%s)", c.Op, c.Arg)
	}
	return c.Op.String()
}

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBack:
		return "back"
	}
	return "idle"
}
