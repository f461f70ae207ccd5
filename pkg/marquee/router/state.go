package router

import "fmt"

// State is one step of the frontend run loop.
type State int

const (
	StateIdle State = iota
	StateLoadArt
	StateEnter
	StateSplashExit

	StatePlaylistRequest
	StatePlaylistExit
	StatePlaylistLoadArt
	StatePlaylistEnter

	StateMenuJumpRequest
	StateMenuJumpExit
	StateMenuJumpLoadArt
	StateMenuJumpEnter

	StateHighlightRequest
	StateHighlightExit
	StateHighlightLoadArt
	StateHighlightEnter

	StateNextPageRequest
	StateNextPageMenuExit
	StateNextPageMenuLoadArt
	StateNextPageMenuEnter

	StateCollectionUpRequest
	StateCollectionUpExit
	StateCollectionUpMenuEnter
	StateCollectionUpEnter
	StateCollectionUpScroll

	StateCollectionDownRequest
	StateCollectionDownExit
	StateCollectionDownMenuEnter
	StateCollectionDownEnter
	StateCollectionDownScroll

	StateCollectionHighlightRequest
	StateCollectionHighlightExit
	StateCollectionHighlightLoadArt
	StateCollectionHighlightEnter

	StateHandleMenuEntry

	StateLaunchEnter
	StateLaunchRequest
	StateLaunchExit

	StateBackRequest
	StateBackMenuExit
	StateBackMenuLoadArt
	StateBackMenuEnter

	StateMenuModeStartRequest
	StateMenuModeStartLoadArt
	StateMenuModeStartEnter

	StateNew
	StateQuitRequest
	StateQuit
)

var stateNames = [...]string{
	StateIdle:                       "Idle",
	StateLoadArt:                    "LoadArt",
	StateEnter:                      "Enter",
	StateSplashExit:                 "SplashExit",
	StatePlaylistRequest:            "PlaylistRequest",
	StatePlaylistExit:               "PlaylistExit",
	StatePlaylistLoadArt:            "PlaylistLoadArt",
	StatePlaylistEnter:              "PlaylistEnter",
	StateMenuJumpRequest:            "MenuJumpRequest",
	StateMenuJumpExit:               "MenuJumpExit",
	StateMenuJumpLoadArt:            "MenuJumpLoadArt",
	StateMenuJumpEnter:              "MenuJumpEnter",
	StateHighlightRequest:           "HighlightRequest",
	StateHighlightExit:              "HighlightExit",
	StateHighlightLoadArt:           "HighlightLoadArt",
	StateHighlightEnter:             "HighlightEnter",
	StateNextPageRequest:            "NextPageRequest",
	StateNextPageMenuExit:           "NextPageMenuExit",
	StateNextPageMenuLoadArt:        "NextPageMenuLoadArt",
	StateNextPageMenuEnter:          "NextPageMenuEnter",
	StateCollectionUpRequest:        "CollectionUpRequest",
	StateCollectionUpExit:           "CollectionUpExit",
	StateCollectionUpMenuEnter:      "CollectionUpMenuEnter",
	StateCollectionUpEnter:          "CollectionUpEnter",
	StateCollectionUpScroll:         "CollectionUpScroll",
	StateCollectionDownRequest:      "CollectionDownRequest",
	StateCollectionDownExit:         "CollectionDownExit",
	StateCollectionDownMenuEnter:    "CollectionDownMenuEnter",
	StateCollectionDownEnter:        "CollectionDownEnter",
	StateCollectionDownScroll:       "CollectionDownScroll",
	StateCollectionHighlightRequest: "CollectionHighlightRequest",
	StateCollectionHighlightExit:    "CollectionHighlightExit",
	StateCollectionHighlightLoadArt: "CollectionHighlightLoadArt",
	StateCollectionHighlightEnter:   "CollectionHighlightEnter",
	StateHandleMenuEntry:            "HandleMenuEntry",
	StateLaunchEnter:                "LaunchEnter",
	StateLaunchRequest:              "LaunchRequest",
	StateLaunchExit:                 "LaunchExit",
	StateBackRequest:                "BackRequest",
	StateBackMenuExit:               "BackMenuExit",
	StateBackMenuLoadArt:            "BackMenuLoadArt",
	StateBackMenuEnter:              "BackMenuEnter",
	StateMenuModeStartRequest:       "MenuModeStartRequest",
	StateMenuModeStartLoadArt:       "MenuModeStartLoadArt",
	StateMenuModeStartEnter:         "MenuModeStartEnter",
	StateNew:                        "New",
	StateQuitRequest:                "QuitRequest",
	StateQuit:                       "Quit",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
