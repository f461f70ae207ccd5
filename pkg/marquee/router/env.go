package router

import (
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// Keys reports the logical input state for the current tick.
type Keys interface {
	// Pressed is true on the tick a key went down.
	Pressed(k constants.LogicalKey) bool
	// Held is true while a key is down, including its first tick.
	Held(k constants.LogicalKey) bool
}

// Status is the run loop state carried from tick to tick. Step returns an
// updated copy; the executor may also update it while running commands.
type Status struct {
	State State

	Splash     bool
	ExitSplash bool
	SplashTime time.Duration
	MenuMode   bool
	Kiosk      bool
	Paused     bool
	Reboot     bool
	Done       bool

	// Attract is set while attract mode drives the menus.
	Attract bool
	// AttractCollections counts collections visited since attract mode
	// last changed playlist.
	AttractCollections int

	// NextPage is the collection the next page request opens.
	NextPage   string
	CycleIndex int

	KeyLastTime      time.Duration
	LaunchReturnTime time.Duration
}

// NewStatus is the status of a frontend showing its splash page.
func NewStatus(kiosk bool) Status {
	return Status{State: StateEnter, Splash: true, Kiosk: kiosk}
}

// PageState is a snapshot of the current page's predicates.
type PageState struct {
	Idle         bool
	MenuIdle     bool
	AttractIdle  bool
	GraphicsIdle bool
	Playing      bool
	SelectPlays  bool
	Scrolling    bool
	Horizontal   bool
	HasSubs      bool

	// FromPlaylistNav is set when the playlist changed through next/prev
	// navigation; FromPreviousPlaylist when it went backwards.
	FromPlaylistNav      bool
	FromPreviousPlaylist bool

	HasSelection       bool
	SelectedLeaf       bool
	SelectedName       string
	SelectedCollection string

	Depth          int
	PagesStacked   int
	CollectionSize int
	CollectionName string
	PlaylistName   string
	MinShowTime    time.Duration
}

// Settings are the configuration values the run loop consults.
type Settings struct {
	StartCollectionEnter bool
	EnterOnCollection    bool
	BackOnCollection     bool
	BackOnEmpty          bool
	ExitOnFirstPageBack  bool
	RememberMenu         bool
	CfwLetterSub         bool
	ControllerComboExit  bool

	PlaylistInputClear   bool
	JumpInputClear       bool
	CollectionInputClear bool

	AttractModeSkipCollection           string
	AttractModePlaylistCollectionNumber int
	AttractModeSkipPlaylist             []string
	LastPlayedSkipCollection            string

	CycleCollection []string
	KeyDelay        time.Duration
}

// LoadSettings reads the run loop settings from conf.
func LoadSettings(conf *config.Store) Settings {
	return Settings{
		StartCollectionEnter: conf.BoolOr("startCollectionEnter", false),
		EnterOnCollection:    conf.BoolOr("enterOnCollection", true),
		BackOnCollection:     conf.BoolOr("backOnCollection", false),
		BackOnEmpty:          conf.BoolOr("backOnEmpty", false),
		ExitOnFirstPageBack:  conf.BoolOr("exitOnFirstPageBack", false),
		RememberMenu:         conf.BoolOr("rememberMenu", false),
		CfwLetterSub:         conf.BoolOr("cfwLetterSub", false),
		ControllerComboExit:  conf.BoolOr("controllerComboExit", false),

		PlaylistInputClear:   conf.BoolOr("playlistInputClear", false),
		JumpInputClear:       conf.BoolOr("jumpInputClear", false),
		CollectionInputClear: conf.BoolOr("collectionInputClear", false),

		AttractModeSkipCollection:           conf.StringOr("attractModeSkipCollection", ""),
		AttractModePlaylistCollectionNumber: conf.IntOr("attractModePlaylistCollectionNumber", 0),
		AttractModeSkipPlaylist:             conf.List("attractModeSkipPlaylist"),
		LastPlayedSkipCollection:            conf.StringOr("lastPlayedSkipCollection", ""),

		CycleCollection: conf.List("cycleCollection"),
		KeyDelay:        constants.DefaultKeyDelay,
	}
}

// Env is everything Step reads besides the carried Status.
type Env struct {
	Now  time.Duration
	Page PageState
	Keys Keys

	Initialized bool
	InitFailed  bool

	// AttractActive is true while attract mode is scrolling on its own.
	AttractActive bool

	Settings Settings
}
