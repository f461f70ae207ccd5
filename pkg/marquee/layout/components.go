package layout

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
)

// doc builds the components of one layout file into a page.
type doc struct {
	*Builder
	page    *page.Page
	dir     string
	root    *node
	monitor int

	width  float32
	height float32

	fontName  string
	fontColor color.RGBA
	fontSize  int
}

func (b *Builder) newDoc(p *page.Page, dir string, f file) *doc {
	return &doc{
		Builder:   b,
		page:      p,
		dir:       dir,
		root:      f.root,
		monitor:   f.monitor,
		width:     float32(f.width),
		height:    float32(f.height),
		fontName:  b.opts.DefaultFont,
		fontColor: color.RGBA{A: 255},
		fontSize:  defaultFontSize,
	}
}

func (d *doc) build() {
	root := d.root
	if v, ok := root.attr("font"); ok {
		d.fontName = config.ConvertToAbsolutePath(d.conf.LayoutDir(d.opts.Layout), v)
	}
	if v, ok := root.attr("fontColor"); ok {
		d.fontColor.R, d.fontColor.G, d.fontColor.B = toColor(v)
	}
	d.fontSize = root.intOr("loadFontSize", d.fontSize)
	if root.has("minShowTime") {
		d.page.SetMinShowTime(root.floatOr("minShowTime", 0))
	}

	d.sounds()

	for _, n := range root.children("menu") {
		l := d.menu(n)
		d.page.PushMenu(l, n.intOr("menuIndex", -1))
	}
	for _, n := range root.children("container") {
		d.add(component.NewContainer(d.page), n)
	}
	for _, n := range root.children("image") {
		d.image(n)
	}
	for _, n := range root.children("video") {
		d.video(n)
	}
	for _, n := range root.children("text") {
		d.text(n)
	}
	for _, n := range root.children("statusText") {
		t := component.NewText(d.page, "", d.font(n, nil), d.monitorOf(n))
		if d.add(t, n) {
			d.page.SetStatusText(t)
		}
	}
	for _, tag := range []string{"reloadableImage", "reloadableAudio", "reloadableVideo", "reloadableText", "reloadableScrollingText"} {
		for _, n := range root.children(tag) {
			d.reloadable(tag, n)
		}
	}
}

func (d *doc) sounds() {
	logger := logging.GetInternalLogger()
	var sounds page.Sounds
	for _, n := range d.root.children("sound") {
		src, _ := n.attr("src")
		kind, ok := n.attr("type")
		if !ok {
			logger.Error("Sound tag missing type attribute", "src", src)
			continue
		}
		if d.opts.NewSound == nil {
			continue
		}
		path := config.ConvertToAbsolutePath(d.dir, src)
		alt := filepath.Join(d.conf.LayoutDir(d.opts.Layout), src)

		switch kind {
		case "load":
			sounds.Load = d.opts.NewSound(path, alt)
		case "unload":
			sounds.Unload = d.opts.NewSound(path, alt)
		case "highlight":
			sounds.Highlight = d.opts.NewSound(path, alt)
		case "select":
			sounds.Select = d.opts.NewSound(path, alt)
		default:
			logger.Warn("Unsupported sound effect type", "type", kind)
		}
	}
	d.page.SetSounds(sounds)
}

// add applies the common attributes and tweens of n to c and hands it to
// the page.
func (d *doc) add(c component.Component, n *node) bool {
	c.SetID(n.intOr("id", -1))
	if n.flag("menuScrollReload") {
		c.SetMenuScrollReload(true)
	}
	d.viewInfo(n, nil, c.View())
	c.SetTweens(d.tweens(n))
	return d.page.AddComponent(c)
}

func (d *doc) monitorOf(n *node) int {
	return n.intOr("monitor", d.monitor)
}

// sources resolves src against the layout file directory, with the
// layout root as the fallback.
func (d *doc) sources(src string) (string, string) {
	return config.ConvertToAbsolutePath(d.dir, src), filepath.Join(d.conf.LayoutDir(d.opts.Layout), src)
}

func (d *doc) image(n *node) {
	src, ok := n.attr("src")
	if !ok {
		logging.GetInternalLogger().Error("Image component in layout does not specify a source image file")
		return
	}
	path, alt := d.sources(src)
	d.add(component.NewImage(d.page, path, alt, d.monitorOf(n)), n)
}

func (d *doc) video(n *node) {
	src, ok := n.attr("src")
	if !ok {
		logging.GetInternalLogger().Error("Video component in layout does not specify a source video file")
		return
	}
	path, alt := d.sources(src)
	if _, err := os.Stat(path); err != nil {
		path = alt
	}
	d.add(component.NewVideo(d.page, path, n.intOr("numLoops", 1), d.monitorOf(n)), n)
}

func (d *doc) text(n *node) {
	value, ok := n.attr("value")
	if !ok {
		logging.GetInternalLogger().Warn("Text component in layout does not specify a value")
		return
	}
	d.add(component.NewText(d.page, value, d.font(n, nil), d.monitorOf(n)), n)
}

// mode is the artwork lookup mode named by a mode attribute.
type mode struct {
	system bool
	layout bool
	common bool
}

func parseMode(n *node) mode {
	v, _ := n.attr("mode")
	switch v {
	case "system":
		return mode{system: true}
	case "layout":
		return mode{layout: true}
	case "common":
		return mode{common: true}
	case "commonlayout":
		return mode{layout: true, common: true}
	case "systemlayout":
		return mode{system: true, layout: true}
	}
	return mode{}
}

func textFormat(n *node) component.TextFormat {
	var f component.TextFormat
	f.Case, _ = n.attr("textFormat")
	f.SinglePrefix, _ = n.attr("singlePrefix")
	f.SinglePostfix, _ = n.attr("singlePostfix")
	f.PluralPrefix, _ = n.attr("pluralPrefix")
	f.PluralPostfix, _ = n.attr("pluralPostfix")
	return f
}

func (d *doc) reloadable(tag string, n *node) {
	logger := logging.GetInternalLogger()
	m := parseMode(n)
	offset := n.intOr("selectedOffset", 0)
	typ, hasType := n.attr("type")

	switch tag {
	case "reloadableVideo", "reloadableAudio":
		if !n.has("imageType") {
			logger.Warn("Reloadable media does not specify an imageType for when the video does not exist", "tag", tag)
		}
	case "reloadableImage", "reloadableText":
		if !hasType {
			logger.Error("Reloadable component in layout does not specify a type", "tag", tag)
		}
	case "reloadableScrollingText":
		if !hasType {
			logger.Error("Reloadable scrolling text component in layout does not specify a type")
		}
	}

	var c component.Component
	switch tag {
	case "reloadableText":
		if !hasType {
			return
		}
		timeFormat, _ := n.attr("timeFormat")
		c = component.NewReloadableText(d.page, d.conf, d.font(n, nil), component.TextOptions{
			Type:       typ,
			TimeFormat: timeFormat,
			SystemMode: m.system,
			Format:     textFormat(n),
		})

	case "reloadableScrollingText":
		if !hasType {
			return
		}
		direction, _ := n.attr("direction")
		c = component.NewReloadableScrollingText(d.page, d.conf, d.font(n, nil), component.ScrollingTextOptions{
			Type:          typ,
			Direction:     direction,
			Speed:         n.floatOr("scrollingSpeed", 1),
			StartPosition: n.floatOr("startPosition", 0),
			StartTime:     n.floatOr("startTime", 0),
			EndTime:       n.floatOr("endTime", 0),
			SystemMode:    m.system,
			LayoutMode:    m.layout,
			DisplayOffset: offset,
			Format:        textFormat(n),
		})

	default:
		opts := component.MediaOptions{
			Type:          "video",
			Video:         tag == "reloadableVideo" || tag == "reloadableAudio",
			SystemMode:    m.system,
			LayoutMode:    m.layout,
			CommonMode:    m.common,
			DisplayOffset: offset,
			TextFallback:  n.flag("textFallback"),
			RandomSelect:  n.intOr("randomSelect", 0),
		}
		if hasType {
			opts.Type = typ
		}
		opts.ImageType, _ = n.attr("imageType")
		if n.flag("jukebox") {
			opts.Jukebox = true
			opts.JukeboxLoops = n.intOr("jukeboxNumLoops", 1)
			d.page.SetJukebox()
		}
		c = component.NewReloadableMedia(d.page, d.conf, d.font(n, nil), opts)
	}
	d.add(c, n)
}

// font resolves the font attributes of n, then defaults, then the layout
// root. It is nil when no font service is configured or loading fails.
func (d *doc) font(n, defaults *node) component.Font {
	name, size, c := d.fontName, d.fontSize, d.fontColor
	if v, ok := lookup(n, defaults, "font"); ok {
		name = config.ConvertToAbsolutePath(d.conf.LayoutDir(d.opts.Layout), v)
	}
	if v, ok := lookup(n, defaults, "fontColor"); ok {
		c.R, c.G, c.B = toColor(v)
	}
	if v, ok := lookup(n, defaults, "loadFontSize"); ok {
		size = toInt(v)
	}
	if d.fonts == nil {
		return nil
	}
	font, err := d.fonts.Font(name, size, c, d.monitorOf(n))
	if err != nil {
		logging.GetInternalLogger().Warn("Could not load font", "font", name, "size", size, "error", err)
		return nil
	}
	return font
}
