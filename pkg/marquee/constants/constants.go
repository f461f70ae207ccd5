// Package constants defines shared constants, types, and configuration values
// used throughout the marquee frontend.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read at startup.
const (
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
	RootPathEnvVar     = "MARQUEE_ROOT"
	LogLevelEnvVar     = "MARQUEE_LOG_LEVEL"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// MenuIndexHigh is the reserved menu index band addressing the focused column.
// Animations registered at this index apply to the list at the active depth.
const MenuIndexHigh = 16

// NumLayers is the number of draw layers a page renders, back to front.
const NumLayers = 20

// Reserved playlist names.
const (
	PlaylistAll        = "all"
	PlaylistFavorites  = "favorites"
	PlaylistLastPlayed = "lastplayed"
)

// LogicalKey is an abstract frontend action, mapped from physical input
// through the controls configuration.
type LogicalKey int

const (
	KeyNull LogicalKey = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPlaylistUp
	KeyPlaylistDown
	KeyPlaylistLeft
	KeyPlaylistRight
	KeyCollectionUp
	KeyCollectionDown
	KeyCollectionLeft
	KeyCollectionRight
	KeySelect
	KeyBack
	KeyPageDown
	KeyPageUp
	KeyLetterDown
	KeyLetterUp
	KeyFavPlaylist
	KeyNextPlaylist
	KeyPrevPlaylist
	KeyCyclePlaylist
	KeyNextCyclePlaylist
	KeyPrevCyclePlaylist
	KeyRandom
	KeyMenu
	KeyAddPlaylist
	KeyRemovePlaylist
	KeyTogglePlaylist
	KeyQuit
	KeyReboot
	KeySaveFirstPlaylist
	KeySkipForward
	KeySkipBackward
	KeySkipForwardP
	KeySkipBackwardP
	KeyPause
	KeyRestart
	KeyKiosk
	KeyQuitCombo1
	KeyQuitCombo2
	KeyCycleCollection
	KeyPrevCycleCollection
	KeyCount
)

// GetName returns the controls configuration name of the key, which is also
// the suffix of its "controls.<name>" property.
func (k LogicalKey) GetName() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPlaylistUp:
		return "playlistUp"
	case KeyPlaylistDown:
		return "playlistDown"
	case KeyPlaylistLeft:
		return "playlistLeft"
	case KeyPlaylistRight:
		return "playlistRight"
	case KeyCollectionUp:
		return "collectionUp"
	case KeyCollectionDown:
		return "collectionDown"
	case KeyCollectionLeft:
		return "collectionLeft"
	case KeyCollectionRight:
		return "collectionRight"
	case KeySelect:
		return "select"
	case KeyBack:
		return "back"
	case KeyPageDown:
		return "pageDown"
	case KeyPageUp:
		return "pageUp"
	case KeyLetterDown:
		return "letterDown"
	case KeyLetterUp:
		return "letterUp"
	case KeyFavPlaylist:
		return "favPlaylist"
	case KeyNextPlaylist:
		return "nextPlaylist"
	case KeyPrevPlaylist:
		return "prevPlaylist"
	case KeyCyclePlaylist:
		return "cyclePlaylist"
	case KeyNextCyclePlaylist:
		return "nextCyclePlaylist"
	case KeyPrevCyclePlaylist:
		return "prevCyclePlaylist"
	case KeyRandom:
		return "random"
	case KeyMenu:
		return "menu"
	case KeyAddPlaylist:
		return "addPlaylist"
	case KeyRemovePlaylist:
		return "removePlaylist"
	case KeyTogglePlaylist:
		return "togglePlaylist"
	case KeyQuit:
		return "quit"
	case KeyReboot:
		return "reboot"
	case KeySaveFirstPlaylist:
		return "saveFirstPlaylist"
	case KeySkipForward:
		return "jbFastForward1m"
	case KeySkipBackward:
		return "jbFastRewind1m"
	case KeySkipForwardP:
		return "jbFastForward5p"
	case KeySkipBackwardP:
		return "jbFastRewind5p"
	case KeyPause:
		return "jbPause"
	case KeyRestart:
		return "jbRestart"
	case KeyKiosk:
		return "kiosk"
	case KeyQuitCombo1:
		return "quitCombo1"
	case KeyQuitCombo2:
		return "quitCombo2"
	case KeyCycleCollection:
		return "cycleCollection"
	case KeyPrevCycleCollection:
		return "prevCycleCollection"
	default:
		return "null"
	}
}

// RequiredKeys must be mapped for the frontend to start.
var RequiredKeys = []LogicalKey{KeySelect, KeyBack, KeyQuit}

// Default timing constants.
const (
	DefaultKeyDelay       = 300 * time.Millisecond // Minimum gap between accepted non-scroll presses
	DefaultLaunchCooldown = 300 * time.Millisecond // Input ignored after returning from a launch
	DefaultFPS            = 60
)
