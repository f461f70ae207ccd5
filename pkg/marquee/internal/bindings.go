package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// anyJoystick matches events from every joystick.
const anyJoystick = -1

// binding is one physical input a logical key listens to. update reports
// whether e was addressed to the binding; pressed is its latest state.
type binding interface {
	update(e sdl.Event, joy int) bool
	pressed() bool
	reset()
}

type keyBinding struct {
	scancode sdl.Scancode
	down     bool
}

func (b *keyBinding) update(e sdl.Event, _ int) bool {
	k, ok := e.(*sdl.KeyboardEvent)
	if !ok || k.Keysym.Scancode != b.scancode {
		return false
	}
	b.down = k.Type == sdl.KEYDOWN
	return true
}

func (b *keyBinding) pressed() bool { return b.down }
func (b *keyBinding) reset() { b.down = false }

type mouseBinding struct {
	button uint8
	down   bool
}

func (b *mouseBinding) update(e sdl.Event, _ int) bool {
	m, ok := e.(*sdl.MouseButtonEvent)
	if !ok || m.Button != b.button {
		return false
	}
	b.down = m.Type == sdl.MOUSEBUTTONDOWN
	return true
}

func (b *mouseBinding) pressed() bool { return b.down }
func (b *mouseBinding) reset() { b.down = false }

type joyButtonBinding struct {
	joy    int
	button uint8
	down   bool
}

func (b *joyButtonBinding) update(e sdl.Event, joy int) bool {
	j, ok := e.(*sdl.JoyButtonEvent)
	if !ok || (b.joy != anyJoystick && b.joy != joy) || j.Button != b.button {
		return false
	}
	b.down = j.Type == sdl.JOYBUTTONDOWN
	return true
}

func (b *joyButtonBinding) pressed() bool { return b.down }
func (b *joyButtonBinding) reset() { b.down = false }

type joyHatBinding struct {
	joy       int
	hat       uint8
	direction uint8
	down      bool
}

func (b *joyHatBinding) update(e sdl.Event, joy int) bool {
	h, ok := e.(*sdl.JoyHatEvent)
	if !ok || (b.joy != anyJoystick && b.joy != joy) || h.Hat != b.hat {
		return false
	}
	b.down = h.Value == b.direction
	return true
}

func (b *joyHatBinding) pressed() bool { return b.down }
func (b *joyHatBinding) reset() { b.down = false }

// joyAxisBinding is down while the axis value is within [min, max].
type joyAxisBinding struct {
	joy      int
	axis     uint8
	min, max int16
	down     bool
}

func (b *joyAxisBinding) update(e sdl.Event, joy int) bool {
	a, ok := e.(*sdl.JoyAxisEvent)
	if !ok || (b.joy != anyJoystick && b.joy != joy) || a.Axis != b.axis {
		return false
	}
	b.down = b.min <= a.Value && a.Value <= b.max
	return true
}

func (b *joyAxisBinding) pressed() bool { return b.down }
func (b *joyAxisBinding) reset() { b.down = false }

var hatDirections = map[string]uint8{
	"leftup":    sdl.HAT_LEFTUP,
	"left":      sdl.HAT_LEFT,
	"leftdown":  sdl.HAT_LEFTDOWN,
	"up":        sdl.HAT_UP,
	"down":      sdl.HAT_DOWN,
	"rightup":   sdl.HAT_RIGHTUP,
	"right":     sdl.HAT_RIGHT,
	"rightdown": sdl.HAT_RIGHTDOWN,
}

var mouseButtons = map[string]uint8{
	"left":   sdl.BUTTON_LEFT,
	"middle": sdl.BUTTON_MIDDLE,
	"right":  sdl.BUTTON_RIGHT,
	"x1":     sdl.BUTTON_X1,
	"x2":     sdl.BUTTON_X2,
}

// parseBindings reads a comma separated controls value such as
// "Up,joyHat0Up,joy1Axis1-". Keyboard names are resolved with scancode;
// a lone "," binds the comma key. deadZone is the axis dead zone in
// percent.
func parseBindings(value string, deadZone int, scancode func(string) sdl.Scancode) ([]binding, error) {
	var out []binding
	tokens := strings.Split(value, ",")
	if strings.TrimSpace(value) == "," {
		tokens = []string{","}
	}
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if sc := scancode(token); sc != sdl.SCANCODE_UNKNOWN {
			out = append(out, &keyBinding{scancode: sc})
			continue
		}
		b, err := parseBinding(strings.ToLower(token), deadZone)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, nil
}

func parseBinding(token string, deadZone int) (binding, error) {
	unsupported := fmt.Errorf("unsupported input %q", token)

	if rest, ok := strings.CutPrefix(token, "mousebutton"); ok {
		button, ok := mouseButtons[rest]
		if !ok {
			return nil, unsupported
		}
		return &mouseBinding{button: button}, nil
	}

	rest, ok := strings.CutPrefix(token, "joy")
	if !ok || rest == "" {
		return nil, unsupported
	}
	joy := anyJoystick
	if rest[0] >= '0' && rest[0] <= '9' {
		joy = int(rest[0] - '0')
		rest = rest[1:]
	}

	switch {
	case strings.HasPrefix(rest, "button"):
		n, err := strconv.Atoi(strings.TrimPrefix(rest, "button"))
		if err != nil || n < 0 || n > 255 {
			return nil, unsupported
		}
		return &joyButtonBinding{joy: joy, button: uint8(n)}, nil

	case strings.HasPrefix(rest, "hat"):
		rest = strings.TrimPrefix(rest, "hat")
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return nil, unsupported
		}
		direction, ok := hatDirections[rest[1:]]
		if !ok {
			return nil, unsupported
		}
		return &joyHatBinding{joy: joy, hat: rest[0] - '0', direction: direction}, nil

	case strings.HasPrefix(rest, "axis"):
		rest = strings.TrimPrefix(rest, "axis")
		b := &joyAxisBinding{joy: joy}
		switch {
		case strings.HasSuffix(rest, "-"):
			b.min, b.max = -32768, int16(-32768/100*deadZone)
		case strings.HasSuffix(rest, "+"):
			b.min, b.max = int16(32767/100*deadZone), 32767
		default:
			return nil, unsupported
		}
		n, err := strconv.Atoi(rest[:len(rest)-1])
		if err != nil || n < 0 || n > 255 {
			return nil, unsupported
		}
		b.axis = uint8(n)
		return b, nil
	}
	return nil, unsupported
}
