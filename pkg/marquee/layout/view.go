package layout

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// horizontal reads an x axis value. The keywords left, center, right and
// stretch resolve against the layout width.
func (d *doc) horizontal(v string, ok bool, fallback float32) float32 {
	if !ok {
		return fallback
	}
	switch v {
	case "left":
		return 0
	case "center":
		return d.width / 2
	case "right", "stretch":
		return d.width
	}
	return float32(toFloat(v))
}

// vertical reads a y axis value. The keywords top, center, bottom and
// stretch resolve against the layout height.
func (d *doc) vertical(v string, ok bool, fallback float32) float32 {
	if !ok {
		return fallback
	}
	switch v {
	case "top":
		return 0
	case "center":
		return d.height / 2
	case "bottom", "stretch":
		return d.height
	}
	return float32(toFloat(v))
}

// viewInfo fills info from the attributes of n, falling back to defaults
// for each one that n leaves out.
func (d *doc) viewInfo(n, defaults *node, info *view.Info) {
	attr := func(name string) (string, bool) { return lookup(n, defaults, name) }
	h := func(name string, fallback float32) float32 {
		v, ok := attr(name)
		return d.horizontal(v, ok, fallback)
	}
	v := func(name string, fallback float32) float32 {
		s, ok := attr(name)
		return d.vertical(s, ok, fallback)
	}
	f := func(name string, fallback float32) float32 {
		if s, ok := attr(name); ok {
			return float32(toFloat(s))
		}
		return fallback
	}
	i := func(name string, fallback int) int {
		if s, ok := attr(name); ok {
			return toInt(s)
		}
		return fallback
	}

	info.X = h("x", 0)
	info.Y = v("y", 0)
	info.XOffset = h("xOffset", 0)
	info.YOffset = v("yOffset", 0)

	// Origins are stored as a fraction of the size since both may scale.
	info.XOrigin = h("xOrigin", 0) / d.width
	info.YOrigin = v("yOrigin", 0) / d.height

	info.Width = h("width", -1)
	info.Height = v("height", -1)
	info.FontSize = v("fontSize", -1)
	info.MinWidth = h("minWidth", 0)
	info.MinHeight = v("minHeight", 0)
	info.MaxWidth = v("maxWidth", view.Unbounded)
	info.MaxHeight = v("maxHeight", view.Unbounded)

	info.Alpha = f("alpha", 1)
	info.Angle = f("angle", 0)
	info.Layer = i("layer", 0)
	info.Reflection, _ = attr("reflection")
	info.ReflectionDistance = i("reflectionDistance", 0)
	info.ReflectionScale = f("reflectionScale", 0.25)
	info.ReflectionAlpha = f("reflectionAlpha", 1)
	info.ContainerX = f("containerX", 0)
	info.ContainerY = f("containerY", 0)
	info.ContainerWidth = f("containerWidth", -1)
	info.ContainerHeight = f("containerHeight", -1)
	info.Monitor = i("monitor", d.monitor)
	info.Volume = f("volume", 1)

	if _, ok := attr("fontColor"); ok {
		if font := d.font(n, defaults); font != nil {
			info.Font = font
		}
	}
	if s, ok := attr("backgroundColor"); ok {
		r, g, b := toColor(s)
		info.BackgroundRed = float32(r) / 255
		info.BackgroundGreen = float32(g) / 255
		info.BackgroundBlue = float32(b) / 255
	}
	if _, ok := attr("backgroundAlpha"); ok {
		info.BackgroundAlpha = f("backgroundAlpha", 1)
	}
}
