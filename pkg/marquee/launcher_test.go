package marquee

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

func TestSplitArgs(t *testing.T) {
	vars := strings.NewReplacer(VarItemFilepath, "/roms/My Games/it's.zip", VarItemName, "pacman")
	tests := []struct {
		line string
		want []string
	}{
		{"", []string{}},
		{"-a -b", []string{"-a", "-b"}},
		{"  spaced\targs  ", []string{"spaced", "args"}},
		{`-rompath "/roms/My Games" pacman`, []string{"-rompath", "/roms/My Games", "pacman"}},
		{`-title 'Ms. Pac-Man'`, []string{"-title", "Ms. Pac-Man"}},
		{`My\ Games`, []string{"My Games"}},
		{`pre"quoted part"post`, []string{"prequoted partpost"}},
		{`-file=%ITEM_FILEPATH%`, []string{"-file=/roms/My Games/it's.zip"}},
		{`"%ITEM_FILEPATH%" %ITEM_NAME%`, []string{"/roms/My Games/it's.zip", "pacman"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line, vars)
			if err != nil {
				t.Fatalf("splitArgs(%q) error = %v", tt.line, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("splitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}

	if _, err := splitArgs(`-rompath "/roms`, vars); err == nil {
		t.Error("an unterminated quote should fail")
	}
}

func TestExecLauncherBadArguments(t *testing.T) {
	conf, item := launcherFixture(t)
	conf.Set("launchers.mame.arguments", `-rompath "%ITEM_DIRECTORY%`)
	if _, err := NewExecLauncher(conf).resolve("Arcade", item); err == nil {
		t.Error("resolve() should reject an unterminated quote")
	}
}

func launcherFixture(t *testing.T) (*config.Store, *collection.Item) {
	t.Helper()
	root := t.TempDir()
	conf := config.New(root)
	conf.Set("launchers.mame.executable", "/usr/bin/mame")
	conf.Set("launchers.mame.arguments", `-rompath "%ITEM_DIRECTORY%" %ITEM_NAME% -file %ITEM_FILENAME% -c %ITEM_COLLECTION_NAME%`)
	conf.Set("collections.Arcade.list.extensions", "7z, .zip")

	roms := conf.CollectionPath("Arcade")
	if err := os.MkdirAll(roms, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(roms, "pacman.zip"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	c := collection.New("Arcade")
	c.Launcher = "MAME"
	return conf, collection.NewItem("pacman", c)
}

func TestExecLauncherResolve(t *testing.T) {
	conf, item := launcherFixture(t)
	cmd, err := NewExecLauncher(conf).resolve("Arcade", item)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	roms := conf.CollectionPath("Arcade")
	wantArgs := []string{"-rompath", roms, "pacman", "-file", "pacman.zip", "-c", "Arcade"}
	if !slices.Equal(cmd.args, wantArgs) {
		t.Errorf("args = %q, want %q", cmd.args, wantArgs)
	}
	if cmd.executable != "/usr/bin/mame" || cmd.dir != "/usr/bin" {
		t.Errorf("executable = %q, dir = %q", cmd.executable, cmd.dir)
	}
	if cmd.launcher != "mame" || cmd.reboot {
		t.Errorf("launcher = %q, reboot = %t", cmd.launcher, cmd.reboot)
	}
}

func TestExecLauncherItemOverride(t *testing.T) {
	conf, item := launcherFixture(t)
	conf.Set("launchers.retroarch.executable", "%RETROFE_PATH%/retroarch")
	conf.Set("launchers.retroarch.arguments", "%ITEM_FILEPATH%")
	conf.Set("launchers.retroarch.currentDirectory", "/tmp")
	conf.Set("launchers.retroarch.reboot", "yes")

	dir := filepath.Join(conf.CollectionDir("Arcade"), "launchers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pacman.conf"), []byte("RetroArch\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, err := NewExecLauncher(conf).resolve("Arcade", item)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if cmd.launcher != "retroarch" || !cmd.reboot || cmd.dir != "/tmp" {
		t.Errorf("launcher = %q, reboot = %t, dir = %q", cmd.launcher, cmd.reboot, cmd.dir)
	}
	if want := filepath.Join(conf.AbsolutePath(), "retroarch"); cmd.executable != want {
		t.Errorf("executable = %q, want %q", cmd.executable, want)
	}
	if want := filepath.Join(conf.CollectionPath("Arcade"), "pacman.zip"); len(cmd.args) != 1 || cmd.args[0] != want {
		t.Errorf("args = %q, want the item path", cmd.args)
	}
}

func TestExecLauncherMissingFile(t *testing.T) {
	conf, item := launcherFixture(t)
	item.Name = "galaga"
	cmd, err := NewExecLauncher(conf).resolve("Arcade", item)
	if err != nil {
		t.Fatalf("a missing item file is allowed: %v", err)
	}
	if slices.Contains(cmd.args, "pacman.zip") || !slices.Contains(cmd.args, "galaga") {
		t.Errorf("args = %q", cmd.args)
	}
}

func TestExecLauncherErrors(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"no executable", "launchers.mame.executable"},
		{"no extensions", "collections.Arcade.list.extensions"},
		{"no arguments", "launchers.mame.arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			conf := config.New(root)
			for k, v := range map[string]string{
				"launchers.mame.executable":          "/usr/bin/mame",
				"launchers.mame.arguments":           "%ITEM_NAME%",
				"collections.Arcade.list.extensions": "zip",
			} {
				if k != tt.unset {
					conf.Set(k, v)
				}
			}
			c := collection.New("Arcade")
			c.Launcher = "mame"

			_, err := NewExecLauncher(conf).Run(context.Background(), "Arcade", collection.NewItem("pacman", c))
			if !errors.Is(err, ErrNoLauncher) {
				t.Errorf("err = %v, want ErrNoLauncher", err)
			}
		})
	}
}

func TestExecLauncherRun(t *testing.T) {
	root := t.TempDir()
	conf := config.New(root)
	conf.Set("launchers.touch.executable", "/usr/bin/touch")
	conf.Set("launchers.touch.arguments", "%RETROFE_PATH%/launched")
	conf.Set("collections.Arcade.list.extensions", "zip")
	if _, err := os.Stat("/usr/bin/touch"); err != nil {
		t.Skip("touch is not available")
	}

	c := collection.New("Arcade")
	c.Launcher = "touch"
	reboot, err := NewExecLauncher(conf).Run(context.Background(), "Arcade", collection.NewItem("pacman", c))
	if err != nil || reboot {
		t.Fatalf("Run() = %t, %v", reboot, err)
	}
	if _, err := os.Stat(filepath.Join(root, "launched")); err != nil {
		t.Errorf("the launcher did not run: %v", err)
	}
}
