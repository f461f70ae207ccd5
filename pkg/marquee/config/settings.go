package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// SettingsFilename is the optional TOML file next to settings.conf.
const SettingsFilename = "settings.toml"

// Settings holds the options that are awkward as flat properties: the
// window and the display language.
type Settings struct {
	Window   WindowSettings `toml:"window"`
	Language string         `toml:"language"`     // BCP 47 tag, "en" when empty
	LogLevel string         `toml:"log_level"`    // debug, info, warn, error
	Messages string         `toml:"messages_dir"` // translation files, relative to the root
}

type WindowSettings struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Borderless bool   `toml:"borderless"`
	Resizable  bool   `toml:"resizable"`
	VSync      bool   `toml:"vsync"`
}

// DefaultSettings is used for any field the file leaves out.
func DefaultSettings() Settings {
	return Settings{
		Window: WindowSettings{
			Title:  "marquee",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Language: "en",
		LogLevel: "info",
		Messages: "messages",
	}
}

// LoadSettings decodes path over the defaults. A missing file is not an
// error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}

	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.GetInternalLogger().Warn("Unknown settings key", "file", path, "key", key.String())
	}
	return settings, nil
}

// ApplyTo copies the settings that also exist as properties into s, without
// overriding values a .conf file already set.
func (st Settings) ApplyTo(s *Store) {
	setDefault := func(key, value string) {
		if !s.Exists(key) && value != "" {
			s.Set(key, value)
		}
	}
	setDefault("log.level", st.LogLevel)
	setDefault("language", st.Language)
	if st.Window.Fullscreen {
		setDefault("fullscreen", "yes")
	}
	if st.Window.VSync {
		setDefault("vSync", "true")
	}
}
