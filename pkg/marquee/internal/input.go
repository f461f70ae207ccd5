package internal

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

const (
	maxJoysticks    = 4
	defaultDeadZone = 3
)

// ErrMissingControls is returned when a mandatory control has no binding.
var ErrMissingControls = errors.New("input: mandatory controls are not bound")

type handler struct {
	binding binding
	key     constants.LogicalKey
}

// Input maps SDL events onto logical keys through the "controls.*"
// settings. It satisfies router.Keys.
type Input struct {
	handlers  []handler
	current   [constants.KeyCount]bool
	last      [constants.KeyCount]bool
	updated   bool
	joysticks [maxJoysticks]sdl.JoystickID
	scancode  func(string) sdl.Scancode
}

// optionalKeys may be left unbound.
var optionalKeys = []constants.LogicalKey{
	constants.KeyPlaylistUp, constants.KeyPlaylistDown, constants.KeyPlaylistLeft, constants.KeyPlaylistRight,
	constants.KeyCollectionUp, constants.KeyCollectionDown, constants.KeyCollectionLeft, constants.KeyCollectionRight,
	constants.KeyPageDown, constants.KeyPageUp, constants.KeyLetterDown, constants.KeyLetterUp,
	constants.KeyFavPlaylist, constants.KeyNextPlaylist, constants.KeyPrevPlaylist,
	constants.KeyCyclePlaylist, constants.KeyNextCyclePlaylist, constants.KeyPrevCyclePlaylist,
	constants.KeyAddPlaylist, constants.KeyRemovePlaylist, constants.KeyTogglePlaylist,
	constants.KeyRandom, constants.KeyMenu, constants.KeyReboot, constants.KeySaveFirstPlaylist,
	constants.KeySkipForward, constants.KeySkipBackward, constants.KeySkipForwardP, constants.KeySkipBackwardP,
	constants.KeyPause, constants.KeyRestart, constants.KeyKiosk, constants.KeyQuitCombo1, constants.KeyQuitCombo2,
	constants.KeyCycleCollection, constants.KeyPrevCycleCollection,
}

// NewInput binds every control found in conf. Up, down, left and right
// fall back on each other so a layout needs only one axis; select, back
// and quit are mandatory. The returned Input is usable even with an error.
func NewInput(conf *config.Store) (*Input, error) {
	return newInput(conf, sdl.GetScancodeFromName)
}

func newInput(conf *config.Store, scancode func(string) sdl.Scancode) (*Input, error) {
	in := &Input{scancode: scancode}
	for i := range in.joysticks {
		in.joysticks[i] = -1
	}
	return in, in.bind(conf)
}

// Reconfigure rebinds every control after conf changed. Open joysticks
// stay open.
func (in *Input) Reconfigure(conf *config.Store) error {
	in.handlers = nil
	in.Reset()
	return in.bind(conf)
}

func (in *Input) bind(conf *config.Store) error {
	scancode := in.scancode
	deadZone := conf.IntOr("controls.deadZone", defaultDeadZone)
	logger := logging.GetInternalLogger()

	bind := func(name string, key constants.LogicalKey, required bool) bool {
		configKey := "controls." + name
		value, ok := conf.String(configKey)
		if !ok {
			if required {
				logger.Error("Missing property", "key", configKey)
			} else {
				logger.Info("Missing property", "key", configKey)
			}
			return false
		}
		bindings, err := parseBindings(value, deadZone, scancode)
		for _, b := range bindings {
			in.handlers = append(in.handlers, handler{binding: b, key: key})
		}
		if err != nil {
			logger.Error("Unsupported property value", "key", configKey, "error", err)
			return false
		}
		logger.Debug("Bound control", "key", configKey, "value", value)
		return true
	}

	for _, key := range optionalKeys {
		bind(key.GetName(), key, false)
	}

	ok := true
	for _, pair := range [][2]constants.LogicalKey{
		{constants.KeyUp, constants.KeyLeft},
		{constants.KeyLeft, constants.KeyUp},
		{constants.KeyDown, constants.KeyRight},
		{constants.KeyRight, constants.KeyDown},
	} {
		if !bind(pair[0].GetName(), pair[0], false) {
			ok = bind(pair[1].GetName(), pair[0], true) && ok
		}
	}
	for _, key := range constants.RequiredKeys {
		ok = bind(key.GetName(), key, true) && ok
	}

	// The quit combo always listens to buttons 6 and 7 of any pad.
	in.handlers = append(in.handlers,
		handler{binding: &joyButtonBinding{joy: anyJoystick, button: 6}, key: constants.KeyQuitCombo1},
		handler{binding: &joyButtonBinding{joy: anyJoystick, button: 7}, key: constants.KeyQuitCombo2},
	)

	if !ok {
		return ErrMissingControls
	}
	return nil
}

// Update feeds one event through the bindings and reports whether any of
// them changed. Joystick hot plugging is tracked here too.
func (in *Input) Update(e sdl.Event) bool {
	if in.updated {
		in.last = in.current
	}
	in.updated = false

	joy := anyJoystick
	switch ev := e.(type) {
	case *sdl.JoyDeviceAddedEvent:
		in.addJoystick(int(ev.Which))
	case *sdl.JoyDeviceRemovedEvent:
		in.removeJoystick(ev.Which)
	case *sdl.JoyAxisEvent:
		joy = in.joystickIndex(ev.Which)
	case *sdl.JoyButtonEvent:
		joy = in.joystickIndex(ev.Which)
	case *sdl.JoyHatEvent:
		joy = in.joystickIndex(ev.Which)
	}

	in.current = [constants.KeyCount]bool{}
	for _, h := range in.handlers {
		if h.binding.update(e, joy) {
			in.updated = true
		}
		in.current[h.key] = in.current[h.key] || h.binding.pressed()
	}
	return in.updated
}

func (in *Input) addJoystick(device int) {
	js := sdl.JoystickOpen(device)
	if js == nil {
		logging.GetInternalLogger().Warn("Could not open joystick", "device", device, "error", sdl.GetError())
		return
	}
	id := js.InstanceID()
	for i, slot := range in.joysticks {
		if slot == -1 {
			in.joysticks[i] = id
			logging.GetInternalLogger().Info("Joystick added", "slot", i, "name", js.Name())
			return
		}
	}
}

func (in *Input) removeJoystick(id sdl.JoystickID) {
	for i, slot := range in.joysticks {
		if slot == id {
			in.joysticks[i] = -1
			break
		}
	}
	if js := sdl.JoystickFromInstanceID(id); js != nil {
		js.Close()
	}
}

// joystickIndex maps an instance id onto the slot number controls refer
// to ("joy0..."). Unknown ids keep their raw value.
func (in *Input) joystickIndex(id sdl.JoystickID) int {
	for i, slot := range in.joysticks {
		if slot == id {
			return i
		}
	}
	return int(id)
}

func (in *Input) Held(k constants.LogicalKey) bool {
	return k >= 0 && k < constants.KeyCount && in.current[k]
}

func (in *Input) Pressed(k constants.LogicalKey) bool {
	return in.Held(k) && !in.last[k]
}

// Reset releases every key, as after returning from a launched program.
func (in *Input) Reset() {
	for _, h := range in.handlers {
		h.binding.reset()
	}
	in.current = [constants.KeyCount]bool{}
	in.last = [constants.KeyCount]bool{}
}

func (in *Input) String() string {
	return fmt.Sprintf("input(%d bindings)", len(in.handlers))
}

// captureAxis is how far a stick must move to be captured as a control.
const captureAxis = 30000

// ControlName names the physical control behind e in the "controls.*"
// syntax, for capturing a new binding. ok is false for events that are not
// a press.
func ControlName(e sdl.Event) (name string, ok bool) {
	switch ev := e.(type) {
	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYDOWN {
			return sdl.GetKeyName(ev.Keysym.Sym), true
		}
	case *sdl.JoyButtonEvent:
		if ev.Type == sdl.JOYBUTTONDOWN {
			return fmt.Sprintf("joyButton%d", ev.Button), true
		}
	case *sdl.JoyAxisEvent:
		if ev.Axis <= 3 && (ev.Value > captureAxis || ev.Value < -captureAxis) {
			sign := "+"
			if ev.Value < 0 {
				sign = "-"
			}
			return fmt.Sprintf("joyAxis%d%s", ev.Axis, sign), true
		}
	case *sdl.JoyHatEvent:
		directions := map[uint8]string{
			sdl.HAT_UP:    "Up",
			sdl.HAT_DOWN:  "Down",
			sdl.HAT_LEFT:  "Left",
			sdl.HAT_RIGHT: "Right",
		}
		if d, found := directions[ev.Value]; found {
			return fmt.Sprintf("joyHat%d%s", ev.Hat, d), true
		}
	}
	return "", false
}
