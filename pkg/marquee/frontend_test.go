package marquee

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

func TestImportConfiguration(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "settings.conf"), "layout = Neon\nhorizontal = 800\n")
	writeFile(t, filepath.Join(root, "settings2.conf"), "layout = Classic\n")
	writeFile(t, filepath.Join(root, "settings_saved.conf"), "horizontal = 1024\n")
	writeFile(t, filepath.Join(root, "launchers", "MAME.conf"), "executable = /usr/bin/mame\n")
	writeFile(t, filepath.Join(root, "controls.conf"), "select = Return\n")
	writeFile(t, filepath.Join(root, "controls3.conf"), "select = Space\n")

	conf := config.New(root)
	if err := ImportConfiguration(conf); err != nil {
		t.Fatalf("ImportConfiguration() error = %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"layout", "Classic"},
		{"horizontal", "1024"},
		{"launchers.mame.executable", "/usr/bin/mame"},
		{"controls.select", "Space"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := conf.StringOr(tt.key, ""); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestImportConfigurationLinuxLaunchers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "settings.conf"), "")
	writeFile(t, filepath.Join(root, "controls.conf"), "")
	writeFile(t, filepath.Join(root, "launchers", "mame.conf"), "executable = generic\n")
	writeFile(t, filepath.Join(root, "launchers.linux", "mame.conf"), "executable = linux\n")

	conf := config.New(root)
	if err := ImportConfiguration(conf); err != nil {
		t.Fatal(err)
	}
	if got := conf.StringOr("launchers.mame.executable", ""); got != "linux" {
		t.Errorf("executable = %q, want the launchers.linux entry", got)
	}
}

func TestImportConfigurationRequired(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		op    string
	}{
		{"no settings", []string{"controls.conf"}, "load_settings"},
		{"no controls", []string{"settings.conf"}, "load_controls"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, f), "")
			}
			err := ImportConfiguration(config.New(root))
			var infraErr *InfrastructureError
			if !errors.As(err, &infraErr) || infraErr.Op != tt.op {
				t.Fatalf("err = %v, want op %q", err, tt.op)
			}
			if !errors.Is(err, config.ErrNotFound) {
				t.Errorf("err = %v should wrap config.ErrNotFound", err)
			}
		})
	}
}

func TestWindowSettings(t *testing.T) {
	base := config.DefaultSettings().Window

	tests := []struct {
		name  string
		props map[string]string
		want  config.WindowSettings
	}{
		{"defaults", nil, base},
		{
			"overrides",
			map[string]string{"fullscreen": "yes", "horizontal": "1920", "vertical": "1080", "vSync": "no"},
			config.WindowSettings{Title: base.Title, Width: 1920, Height: 1080, Fullscreen: true},
		},
		{
			"stretch keeps the size",
			map[string]string{"horizontal": "stretch", "vertical": "envvar"},
			base,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := config.New(t.TempDir())
			for k, v := range tt.props {
				conf.Set(k, v)
			}
			if got := windowSettings(conf, base); got != tt.want {
				t.Errorf("windowSettings = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func ExampleInfrastructureError() {
	err := NewInfrastructureError("load_controls", ErrNoLauncher)
	fmt.Println(err)
	fmt.Println(IsInfrastructureError(fmt.Errorf("wrapped: %w", err)))
	// Output:
	// marquee: load_controls: no launcher configured
	// true
}
