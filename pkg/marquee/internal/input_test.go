package internal

import (
	"errors"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

func fakeScancode(name string) sdl.Scancode {
	switch name {
	case "Up":
		return sdl.SCANCODE_UP
	case "Down":
		return sdl.SCANCODE_DOWN
	case "Return":
		return sdl.SCANCODE_RETURN
	case "Escape":
		return sdl.SCANCODE_ESCAPE
	case "Q":
		return sdl.SCANCODE_Q
	case ",":
		return sdl.SCANCODE_COMMA
	}
	return sdl.SCANCODE_UNKNOWN
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		token string
		want  binding
	}{
		{"mousebuttonleft", &mouseBinding{button: sdl.BUTTON_LEFT}},
		{"mousebuttonx2", &mouseBinding{button: sdl.BUTTON_X2}},
		{"joybutton3", &joyButtonBinding{joy: anyJoystick, button: 3}},
		{"joy1button12", &joyButtonBinding{joy: 1, button: 12}},
		{"joyhat0up", &joyHatBinding{joy: anyJoystick, hat: 0, direction: sdl.HAT_UP}},
		{"joy2hat1leftdown", &joyHatBinding{joy: 2, hat: 1, direction: sdl.HAT_LEFTDOWN}},
		{"joyaxis1+", &joyAxisBinding{joy: anyJoystick, axis: 1, min: 327 * 10, max: 32767}},
		{"joy0axis0-", &joyAxisBinding{joy: 0, axis: 0, min: -32768, max: -327 * 10}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := parseBinding(tt.token, 10)
			if err != nil {
				t.Fatalf("parseBinding(%q) error = %v", tt.token, err)
			}
			switch want := tt.want.(type) {
			case *mouseBinding:
				if g, ok := got.(*mouseBinding); !ok || *g != *want {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case *joyButtonBinding:
				if g, ok := got.(*joyButtonBinding); !ok || *g != *want {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case *joyHatBinding:
				if g, ok := got.(*joyHatBinding); !ok || *g != *want {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case *joyAxisBinding:
				if g, ok := got.(*joyAxisBinding); !ok || *g != *want {
					t.Errorf("got %#v, want %#v", got, want)
				}
			}
		})
	}
}

func TestParseBindingUnsupported(t *testing.T) {
	for _, token := range []string{"", "joy", "joybutton", "joyhatup", "joyhat0sideways", "joyaxis1", "mousebuttonfour", "gamepad"} {
		if _, err := parseBinding(token, 3); err == nil {
			t.Errorf("parseBinding(%q) expected error", token)
		}
	}
}

func TestParseBindings(t *testing.T) {
	bindings, err := parseBindings("Up, joyHat0Up ,joy1Axis1-", 3, fakeScancode)
	if err != nil {
		t.Fatalf("parseBindings() error = %v", err)
	}
	if len(bindings) != 3 {
		t.Fatalf("len = %d, want 3", len(bindings))
	}
	if k, ok := bindings[0].(*keyBinding); !ok || k.scancode != sdl.SCANCODE_UP {
		t.Errorf("bindings[0] = %#v, want Up key", bindings[0])
	}

	comma, err := parseBindings(",", 3, fakeScancode)
	if err != nil || len(comma) != 1 {
		t.Fatalf("parseBindings(\",\") = %v, %v", comma, err)
	}
	if k := comma[0].(*keyBinding); k.scancode != sdl.SCANCODE_COMMA {
		t.Errorf("comma scancode = %v", k.scancode)
	}

	partial, err := parseBindings("Up,bogus", 3, fakeScancode)
	if err == nil {
		t.Error("expected error for bogus token")
	}
	if len(partial) != 1 {
		t.Errorf("bindings before the error should be kept, got %d", len(partial))
	}
}

func testInput(t *testing.T, controls map[string]string) (*Input, error) {
	t.Helper()
	conf := config.New(t.TempDir())
	for k, v := range controls {
		conf.Set("controls."+k, v)
	}
	return newInput(conf, fakeScancode)
}

func key(sc sdl.Scancode, down bool) *sdl.KeyboardEvent {
	e := &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sc}}
	if down {
		e.Type = sdl.KEYDOWN
	}
	return e
}

func TestInputPressedAndHeld(t *testing.T) {
	in, err := testInput(t, map[string]string{
		"up":     "Up",
		"down":   "Down",
		"select": "Return,joyButton0",
		"back":   "Escape",
		"quit":   "Q",
	})
	if err != nil {
		t.Fatalf("newInput() error = %v", err)
	}

	if !in.Update(key(sdl.SCANCODE_RETURN, true)) {
		t.Fatal("Update should report a bound key")
	}
	if !in.Pressed(constants.KeySelect) || !in.Held(constants.KeySelect) {
		t.Error("select should be pressed and held")
	}

	in.Update(key(sdl.SCANCODE_UP, true))
	if in.Pressed(constants.KeySelect) {
		t.Error("select should no longer be a fresh press")
	}
	if !in.Held(constants.KeySelect) {
		t.Error("select should still be held")
	}
	if !in.Pressed(constants.KeyUp) {
		t.Error("up should be pressed")
	}

	in.Update(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 7, Button: 0})
	in.Update(key(sdl.SCANCODE_RETURN, false))
	if !in.Held(constants.KeySelect) {
		t.Error("select stays held while the joystick button is down")
	}

	if in.Update(key(sdl.SCANCODE_F1, true)) {
		t.Error("unbound key should not report an update")
	}

	in.Reset()
	if in.Held(constants.KeyUp) || in.Held(constants.KeySelect) {
		t.Error("Reset should release every key")
	}
	if in.Held(constants.KeyCount) || in.Held(-1) {
		t.Error("out of range keys are never held")
	}
}

func TestInputDirectionFallback(t *testing.T) {
	in, err := testInput(t, map[string]string{
		"up":     "Up",
		"down":   "Down",
		"select": "Return",
		"back":   "Escape",
		"quit":   "Q",
	})
	if err != nil {
		t.Fatalf("newInput() error = %v", err)
	}
	in.Update(key(sdl.SCANCODE_UP, true))
	if !in.Held(constants.KeyLeft) {
		t.Error("left should fall back to the up binding")
	}
	in.Update(key(sdl.SCANCODE_DOWN, true))
	if !in.Held(constants.KeyRight) {
		t.Error("right should fall back to the down binding")
	}
}

func TestInputMissingControls(t *testing.T) {
	in, err := testInput(t, map[string]string{"up": "Up", "down": "Down", "select": "Return"})
	if !errors.Is(err, ErrMissingControls) {
		t.Fatalf("err = %v, want ErrMissingControls", err)
	}
	if in == nil {
		t.Fatal("Input should still be returned")
	}
}

func TestInputQuitCombo(t *testing.T) {
	in, _ := testInput(t, map[string]string{"up": "Up", "select": "Return", "back": "Escape", "quit": "Q"})
	in.Update(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 3, Button: 6})
	in.Update(&sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Which: 3, Button: 7})
	if !in.Held(constants.KeyQuitCombo1) || !in.Held(constants.KeyQuitCombo2) {
		t.Error("buttons 6 and 7 should hold the quit combo")
	}
}

func TestInputAxisDeadZone(t *testing.T) {
	in, _ := testInput(t, map[string]string{
		"up":       "joy0Axis1-",
		"down":     "joy0Axis1+",
		"select":   "Return",
		"back":     "Escape",
		"quit":     "Q",
		"deadZone": "50",
	})
	in.joysticks[0] = 11

	in.Update(&sdl.JoyAxisEvent{Which: 11, Axis: 1, Value: -8000})
	if in.Held(constants.KeyUp) {
		t.Error("axis inside the dead zone should not press up")
	}
	in.Update(&sdl.JoyAxisEvent{Which: 11, Axis: 1, Value: -30000})
	if !in.Held(constants.KeyUp) {
		t.Error("axis past the dead zone should press up")
	}
	in.Update(&sdl.JoyAxisEvent{Which: 12, Axis: 1, Value: 30000})
	if in.Held(constants.KeyDown) {
		t.Error("events from another joystick slot should be ignored")
	}
}

func TestInputReconfigure(t *testing.T) {
	controls := map[string]string{"up": "Up", "down": "Down", "select": "Return", "back": "Escape", "quit": "Q"}
	in, err := testInput(t, controls)
	if err != nil {
		t.Fatal(err)
	}
	conf := config.New(t.TempDir())
	for k, v := range controls {
		conf.Set("controls."+k, v)
	}
	conf.Set("controls.select", ",")

	in.Update(key(sdl.SCANCODE_RETURN, true))
	if err := in.Reconfigure(conf); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if in.Held(constants.KeySelect) {
		t.Error("Reconfigure should release held keys")
	}
	in.Update(key(sdl.SCANCODE_RETURN, true))
	if in.Held(constants.KeySelect) {
		t.Error("the old binding should be gone")
	}
	in.Update(key(sdl.SCANCODE_COMMA, true))
	if !in.Held(constants.KeySelect) {
		t.Error("the new binding should press select")
	}
}

func TestControlName(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  string
		ok    bool
	}{
		{"button", &sdl.JoyButtonEvent{Type: sdl.JOYBUTTONDOWN, Button: 4}, "joyButton4", true},
		{"button release", &sdl.JoyButtonEvent{Type: sdl.JOYBUTTONUP, Button: 4}, "", false},
		{"axis plus", &sdl.JoyAxisEvent{Axis: 1, Value: 32000}, "joyAxis1+", true},
		{"axis minus", &sdl.JoyAxisEvent{Axis: 0, Value: -32000}, "joyAxis0-", true},
		{"axis small", &sdl.JoyAxisEvent{Axis: 0, Value: 12000}, "", false},
		{"axis out of range", &sdl.JoyAxisEvent{Axis: 4, Value: 32000}, "", false},
		{"hat", &sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_LEFT}, "joyHat0Left", true},
		{"hat diagonal", &sdl.JoyHatEvent{Hat: 0, Value: sdl.HAT_LEFTUP}, "", false},
		{"key release", &sdl.KeyboardEvent{Type: sdl.KEYUP}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ControlName(tt.event)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ControlName = %q, %t, want %q, %t", got, ok, tt.want, tt.ok)
			}
		})
	}
}
