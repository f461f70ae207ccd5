// Package router drives the frontend run loop as an explicit state machine.
//
// Each tick the frontend snapshots the current page into a PageState, then
// calls Step with the Status carried from the previous tick. Step never
// touches the page itself: it returns the next Status and the Commands the
// frontend has to execute, in order. This keeps every transition testable
// without a renderer.
//
// # Basic Usage
//
//	st := router.NewStatus(kiosk)
//	settings := router.LoadSettings(conf)
//
//	for !st.Done {
//	    env := router.Env{
//	        Now:         elapsed,
//	        Page:        snapshot(currentPage),
//	        Keys:        keys,
//	        Initialized: loaded.Load(),
//	        Settings:    settings,
//	    }
//
//	    var cmds []router.Command
//	    st, cmds = router.Step(st, env)
//	    for _, c := range cmds {
//	        if err := execute(c, &st); err != nil {
//	            st.State = router.StateQuitRequest
//	            break
//	        }
//	    }
//	}
//
// # Transitions
//
// Most navigation runs through a Request, Exit, LoadArt and Enter sequence.
// Request fires the exit animations, Exit waits for the page to go idle,
// LoadArt swaps in the new selection and Enter waits for the entry
// animations before returning to StateIdle. Input is only read in StateIdle
// and in the few states that let a held key chain into the next request.
//
// # Input
//
// ProcessInput maps the held logical keys to commands and a requested
// state. Scroll keys act on every tick; every other key is accepted only
// while the page is idle and the key delay has passed.
//
// # Page History
//
// Stack keeps the pages behind the current one so that back navigation
// can restore them.
package router
