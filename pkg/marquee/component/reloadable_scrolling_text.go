package component

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

// Scroll directions of a ReloadableScrollingText.
const (
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"
)

// ScrollingTextOptions configure a ReloadableScrollingText.
type ScrollingTextOptions struct {
	Type          string
	Direction     string
	Speed         float64 // pixels per second
	StartPosition float64
	StartTime     float64
	EndTime       float64
	SystemMode    bool
	LayoutMode    bool
	DisplayOffset int
	Format        TextFormat
}

// ReloadableScrollingText scrolls a text file, or an item attribute,
// through its box.
type ReloadableScrollingText struct {
	Base
	conf *config.Store
	font Font
	opts ScrollingTextOptions
	art  artSource

	lines     []string
	position  float64
	waitStart float64
	waitEnd   float64
}

func NewReloadableScrollingText(host Host, conf *config.Store, font Font, opts ScrollingTextOptions) *ReloadableScrollingText {
	if opts.Direction == "" {
		opts.Direction = DirectionHorizontal
	}
	return &ReloadableScrollingText{
		Base: NewBase(host),
		conf: conf,
		font: font,
		opts: opts,
		art:  artSource{conf: conf, layoutMode: opts.LayoutMode},
	}
}

// Lines is the loaded text.
func (s *ReloadableScrollingText) Lines() []string {
	return s.lines
}

func (s *ReloadableScrollingText) Update(dt float64) {
	switch {
	case s.waitEnd > 0:
		s.waitEnd -= dt
	case s.waitStart > 0:
		s.waitStart -= dt
	default:
		s.position += s.opts.Speed * dt
	}
	if s.newItemSelected || (s.newScrollItemSelected && s.menuScrollReload) {
		s.reload()
		s.newItemSelected = false
		s.newScrollItemSelected = false
	}
	s.Base.Update(dt)
}

func (s *ReloadableScrollingText) AllocateGraphicsMemory() {
	s.Base.AllocateGraphicsMemory()
	s.reload()
}

func (s *ReloadableScrollingText) FreeGraphicsMemory() {
	s.Base.FreeGraphicsMemory()
	s.lines = nil
}

func (s *ReloadableScrollingText) restartScroll() {
	s.position = -s.opts.StartPosition
	s.waitStart = s.opts.StartTime
}

func (s *ReloadableScrollingText) reload() {
	s.restartScroll()
	s.waitEnd = 0
	s.lines = nil

	item := s.host.ItemByOffset(s.opts.DisplayOffset)
	if item == nil {
		return
	}

	names := []string{item.Name, item.FullTitle}
	if item.CloneOf != "" {
		names = append(names, item.CloneOf)
	}
	typ := s.opts.Type
	for _, name := range names {
		if s.lines != nil {
			break
		}
		name = safeName(name)
		if s.opts.SystemMode {
			s.lines = readLines(s.art.systemDir(s.collectionName, typ), typ)
			if s.lines == nil {
				s.lines = readLines(s.art.systemDir(item.CollectionName(), typ), typ)
			}
			continue
		}
		s.lines = readLines(s.art.mediaDir(s.collectionName, typ), name)
		if s.lines == nil {
			s.lines = readLines(s.art.mediaDir(item.CollectionName(), typ), name)
		}
		if s.lines == nil && !item.Leaf {
			s.lines = readLines(s.art.systemDir(item.Name, typ), typ)
		}
	}
	if s.lines == nil && item.Filepath != "" {
		s.lines = readLines(item.Filepath, typ)
	}
	if s.lines == nil {
		if text := s.fieldText(item); text != "" {
			s.lines = []string{text}
		}
	}
}

// fieldText is the attribute fallback when no text file exists.
func (s *ReloadableScrollingText) fieldText(item *collection.Item) string {
	f := s.opts.Format
	if v, ok := f.pageValue(s.host, s.opts.Type); ok {
		return v
	}
	var text string
	switch s.opts.Type {
	case "year", "manufacturer", "genre":
		if item.Leaf {
			text = itemValue(item, s.opts.Type, s.playlistName)
		} else {
			text = configured(s.conf, item.Name, s.opts.Type)
		}
	default:
		text = itemValue(item, s.opts.Type, s.playlistName)
		if _, known := fieldValue(item, s.opts.Type); !known && !item.Leaf && text == "" {
			text = configured(s.conf, item.Name, s.opts.Type)
		}
	}
	return f.decorate(text)
}

// readLines reads dir/name.txt. Trailing carriage returns are dropped.
func readLines(dir, name string) []string {
	f, err := os.Open(filepath.Join(dir, name+".txt"))
	if err != nil {
		return nil
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func (s *ReloadableScrollingText) Draw() {
	s.Base.Draw()
	if len(s.lines) == 0 || s.waitEnd > 0 || s.info.Alpha <= 0 {
		return
	}
	font := viewFont(s.info.Font, s.font)
	if font == nil || font.Height() <= 0 {
		return
	}
	if s.opts.Direction == DirectionVertical {
		s.drawVertical(font)
		return
	}
	s.drawHorizontal(font)
}

func (s *ReloadableScrollingText) box() (x, y, w, h float32) {
	return s.info.XRelativeToOrigin(), s.info.YRelativeToOrigin(),
		boxLimit(s.info.Width, s.info.MaxWidth), boxLimit(s.info.Height, s.info.MaxHeight)
}

// drawHorizontal runs every line together as one strip clipped to the box.
func (s *ReloadableScrollingText) drawHorizontal(font Font) {
	scale := s.info.FontSize / float32(font.Height())
	x0, y0, boxW, _ := s.box()
	right := x0 + boxW
	current := float32(s.position)

	r := s.host.Renderer()
	lw, lh := s.layoutSize()
	tex := font.Texture()

	x := x0
	if current < 0 {
		x -= current
	}
	var position, width float32
	for _, line := range s.lines {
		for _, ch := range line {
			g, ok := font.Glyph(ch)
			if !ok {
				continue
			}
			advance := float32(g.Advance) * scale
			width += float32(g.Advance)
			if x >= right || g.Rect.H <= 0 {
				position += advance
				continue
			}
			src := g.Rect
			dst := Rect{
				X: int32(x),
				Y: int32(y0),
				W: int32(float32(src.W) * scale),
				H: int32(float32(src.H) * scale),
			}
			if font.Ascent() < g.MaxY {
				dst.Y += int32(float32(font.Ascent()-g.MaxY) * scale)
			}
			if x+advance >= right {
				dst.W = int32(right - x)
				src.W = int32(float32(dst.W) / scale)
			}
			if position+advance > current {
				if position < current {
					dst.W = int32(advance + position - current)
					src.X += src.W - int32(float32(dst.W)/scale)
					src.W = int32(float32(dst.W) / scale)
				}
				if dst.W > 0 {
					r.Copy(tex, s.info.Alpha, &src, dst, s.info, lw, lh)
					x += float32(dst.W)
				}
			}
			position += advance
		}
	}

	if current > width*scale {
		s.finishPass()
	}
}

// drawVertical word-wraps the text to the box width and scrolls it up.
func (s *ReloadableScrollingText) drawVertical(font Font) {
	scale := s.info.FontSize / float32(font.Height())
	x0, y0, boxW, boxH := s.box()
	lineHeight := float32(font.Height()) * scale
	lines := wrap(font, scale, boxW, s.lines)
	current := float32(s.position)

	r := s.host.Renderer()
	lw, lh := s.layoutSize()
	tex := font.Texture()

	for i, line := range lines {
		top := y0 + float32(i)*lineHeight - current
		if top+lineHeight <= y0 || top >= y0+boxH {
			continue
		}
		x := x0
		for _, ch := range line {
			g, ok := font.Glyph(ch)
			if !ok {
				continue
			}
			if g.Rect.H > 0 {
				src := g.Rect
				dst := Rect{
					X: int32(x),
					Y: int32(top),
					W: int32(float32(src.W) * scale),
					H: int32(float32(src.H) * scale),
				}
				if font.Ascent() < g.MaxY {
					dst.Y += int32(float32(font.Ascent()-g.MaxY) * scale)
				}
				r.Copy(tex, s.info.Alpha, &src, dst, s.info, lw, lh)
			}
			x += float32(g.Advance) * scale
		}
	}

	if current > float32(len(lines))*lineHeight {
		s.finishPass()
	}
}

func (s *ReloadableScrollingText) finishPass() {
	s.restartScroll()
	s.waitEnd = s.opts.EndTime
}

// wrap breaks lines at word boundaries so none is wider than width.
func wrap(font Font, scale, width float32, lines []string) []string {
	measure := func(word string) float32 {
		var w float32
		for _, ch := range word {
			if g, ok := font.Glyph(ch); ok {
				w += float32(g.Advance) * scale
			}
		}
		return w
	}
	space := measure(" ")

	var out []string
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current, w := "", float32(0)
		for _, word := range words {
			ww := measure(word)
			switch {
			case current == "":
				current, w = word, ww
			case w+space+ww > width:
				out = append(out, current)
				current, w = word, ww
			default:
				current += " " + word
				w += space + ww
			}
		}
		out = append(out, current)
	}
	return out
}
