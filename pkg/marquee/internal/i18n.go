package internal

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Status messages shown through the layout's <statusText>.
var (
	MsgLoading = &i18n.Message{
		ID:    "Loading",
		Other: "Loading...",
	}
	MsgLoadingCollection = &i18n.Message{
		ID:    "LoadingCollection",
		Other: "Loading {{.Collection}}",
	}
	MsgLaunching = &i18n.Message{
		ID:    "Launching",
		Other: "Launching {{.Title}}",
	}
	MsgAttractMode = &i18n.Message{
		ID:    "AttractMode",
		Other: "Attract mode",
	}
	MsgKioskLocked = &i18n.Message{
		ID:    "KioskLocked",
		Other: "Kiosk mode",
	}
)

// Translator renders status messages in the configured language. Missing
// translations fall back to English.
type Translator struct {
	localizer *i18n.Localizer
}

// NewTranslator loads every *.toml file in dir. Files are named by
// language tag, such as fr.toml or pt-BR.toml.
func NewTranslator(dir, lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := filepath.Glob(filepath.Join(dir, "*.toml"))
	for _, f := range files {
		if _, err := bundle.LoadMessageFile(f); err != nil {
			logging.GetInternalLogger().Warn("Could not load translations", "file", f, "error", err)
		}
	}
	return &Translator{localizer: i18n.NewLocalizer(bundle, lang, language.English.String())}
}

// Localize renders msg with data, such as map[string]any{"Title": t}.
func (t *Translator) Localize(msg *i18n.Message, data map[string]any) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{DefaultMessage: msg, TemplateData: data})
	if err != nil {
		logging.GetInternalLogger().Debug("Translation failed", "id", msg.ID, "error", err)
		if s == "" {
			return msg.Other
		}
	}
	return s
}
