// Package layout reads layout XML files into pages.
//
// A layout directory holds one file per page, optionally per aspect ratio
// and per monitor:
//
//	layouts/<name>/layout.xml          main page
//	layouts/<name>/layout 16x9.xml     preferred on a 16:9 screen
//	layouts/<name>/layout - 1.xml      second monitor
//	layouts/<name>/collections/<collection>/layout/layout.xml
//
// # Basic Usage
//
//	b := layout.NewBuilder(conf, renderer, fonts, layout.Options{
//		Layout:       "Arcades",
//		ScreenWidth:  1920,
//		ScreenHeight: 1080,
//	})
//	p, err := b.Build("")
//	if errors.Is(err, layout.ErrNotFound) {
//		// fall back to the default layout
//	}
//
// # Coordinates
//
// Position and size attributes accept numbers in layout pixels or the
// keywords left, center, right and stretch on the x axis and top, center,
// bottom and stretch on the y axis. Origins are stored as fractions of the
// layout size.
//
// # Animations
//
// Every component may carry on<Event> blocks. Each holds <set duration>
// phases of <animate type from to algorithm> tweens; a tween without from
// starts at whatever value the component has when the phase begins.
// menuIndex restricts a block to menu depths: "N", "!N", "<N", ">N" or "i"
// for the focused column.
package layout
