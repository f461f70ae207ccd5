package component

// Text draws a string from a font atlas.
type Text struct {
	Base
	text string
	font Font
}

func NewText(host Host, text string, font Font, monitor int) *Text {
	t := &Text{Base: NewBase(host), text: text, font: font}
	t.info.Monitor = monitor
	return t
}

func (t *Text) String() string {
	return t.text
}

func (t *Text) SetText(text string, id int) {
	if id == t.id {
		t.text = text
	}
}

// activeFont prefers the per-slot font carried by the view.
func (t *Text) activeFont() Font {
	return viewFont(t.info.Font, t.font)
}

func viewFont(override any, fallback Font) Font {
	if f, ok := override.(Font); ok && f != nil {
		return f
	}
	return fallback
}

// boxLimit is the set dimension when it is tighter than the maximum.
func boxLimit(width, max float32) float32 {
	if width < max && width > 0 {
		return width
	}
	return max
}

func (t *Text) Draw() {
	t.Base.Draw()
	font := t.activeFont()
	if font == nil || t.text == "" {
		return
	}
	fontHeight := float32(font.Height())
	if fontHeight <= 0 {
		return
	}
	scale := t.info.FontSize / fontHeight
	limit := boxLimit(t.info.Width, t.info.MaxWidth)

	runes := []rune(t.text)
	var width float32
	last := -1
	for i, r := range runes {
		g, ok := font.Glyph(r)
		if !ok {
			continue
		}
		if g.MinX < 0 {
			width += float32(g.MinX)
		}
		if (width+float32(g.Advance))*scale > limit {
			break
		}
		last = i
		width += float32(g.Advance)
	}

	// The origin is computed as if the view were exactly the text box.
	v := t.info
	v.Width = width * scale
	v.Height = t.info.FontSize
	v.ImageWidth = width
	v.ImageHeight = fontHeight
	x := v.XRelativeToOrigin()
	y := v.YRelativeToOrigin()

	tex := font.Texture()
	r := t.host.Renderer()
	lw, lh := t.layoutSize()
	dst := Rect{X: int32(x)}
	for i := 0; i <= last; i++ {
		g, ok := font.Glyph(runes[i])
		if !ok || g.Rect.H <= 0 {
			continue
		}
		src := g.Rect
		dst.W = int32(float32(src.W) * scale)
		dst.H = int32(float32(src.H) * scale)
		dst.Y = int32(y)
		if g.MinX < 0 {
			dst.X += int32(float32(g.MinX) * scale)
		}
		if font.Ascent() < g.MaxY {
			dst.Y += int32(float32(font.Ascent()-g.MaxY) * scale)
		}
		r.Copy(tex, t.info.Alpha, &src, dst, t.info, lw, lh)
		dst.X += int32(float32(g.Advance) * scale)
	}
}
