package component

import (
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

// TextOptions configure a ReloadableText.
type TextOptions struct {
	Type       string
	TimeFormat string
	SystemMode bool
	Format     TextFormat
}

// ReloadableText shows an attribute of the selected item, or of the page,
// and refreshes it when the selection changes.
type ReloadableText struct {
	Base
	conf *config.Store
	font Font
	opts TextOptions
	text *Text

	// now is replaced in tests.
	now func() time.Time
}

func NewReloadableText(host Host, conf *config.Store, font Font, opts TextOptions) *ReloadableText {
	if opts.TimeFormat == "" {
		opts.TimeFormat = "%H:%M"
	}
	return &ReloadableText{
		Base: NewBase(host),
		conf: conf,
		font: font,
		opts: opts,
		now:  time.Now,
	}
}

// Text is the string currently shown.
func (r *ReloadableText) Text() string {
	if r.text == nil {
		return ""
	}
	return r.text.String()
}

func (r *ReloadableText) Update(dt float64) {
	if r.newItemSelected || (r.newScrollItemSelected && r.menuScrollReload) || r.opts.Type == "time" {
		r.reload()
		r.newItemSelected = false
		r.newScrollItemSelected = false
	}
	r.Base.Update(dt)
}

func (r *ReloadableText) AllocateGraphicsMemory() {
	r.reload()
	r.Base.AllocateGraphicsMemory()
}

func (r *ReloadableText) FreeGraphicsMemory() {
	r.Base.FreeGraphicsMemory()
	r.text = nil
}

func (r *ReloadableText) reload() {
	r.text = nil
	item := r.host.ItemByOffset(0)
	if item == nil {
		return
	}

	prefix := ""
	text := ""
	if r.opts.Type == "time" {
		prefix = Strftime(r.opts.TimeFormat, r.now())
	} else if v, ok := r.opts.Format.pageValue(r.host, r.opts.Type); ok {
		prefix = v
	} else {
		text = itemValue(item, r.opts.Type, r.playlistName)
	}

	if !item.Leaf || r.opts.SystemMode {
		if v, ok := r.conf.String("collections." + item.Name + "." + r.opts.Type); ok {
			text = v
		}
	}
	if r.opts.SystemMode {
		text = configured(r.conf, r.host.CollectionName(), r.opts.Type)
	}
	if text == "" || r.conf.BoolOr("overwriteXML", false) {
		if v, ok := item.GetInfo(r.opts.Type); ok && v != "" {
			text = v
		}
	}

	r.text = NewText(r.host, prefix+r.opts.Format.decorate(text), r.font, r.info.Monitor)
}

func (r *ReloadableText) Draw() {
	if r.text == nil {
		return
	}
	r.text.info = r.info
	r.text.Draw()
}
