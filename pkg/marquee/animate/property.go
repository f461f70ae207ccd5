package animate

import "strings"

// Property identifies the view channel a Tween drives.
type Property int

const (
	PropertyX Property = iota
	PropertyY
	PropertyAngle
	PropertyAlpha
	PropertyWidth
	PropertyHeight
	PropertyXOrigin
	PropertyYOrigin
	PropertyXOffset
	PropertyYOffset
	PropertyFontSize
	PropertyBackgroundAlpha
	PropertyMaxWidth
	PropertyMaxHeight
	PropertyLayer
	PropertyContainerX
	PropertyContainerY
	PropertyContainerWidth
	PropertyContainerHeight
	PropertyVolume
	PropertyMonitor
	PropertyNop
	PropertyRestart
)

var propertyNames = map[string]Property{
	"x":               PropertyX,
	"y":               PropertyY,
	"angle":           PropertyAngle,
	"alpha":           PropertyAlpha,
	"width":           PropertyWidth,
	"height":          PropertyHeight,
	"xorigin":         PropertyXOrigin,
	"yorigin":         PropertyYOrigin,
	"xoffset":         PropertyXOffset,
	"yoffset":         PropertyYOffset,
	"fontsize":        PropertyFontSize,
	"backgroundalpha": PropertyBackgroundAlpha,
	"maxwidth":        PropertyMaxWidth,
	"maxheight":       PropertyMaxHeight,
	"layer":           PropertyLayer,
	"containerx":      PropertyContainerX,
	"containery":      PropertyContainerY,
	"containerwidth":  PropertyContainerWidth,
	"containerheight": PropertyContainerHeight,
	"volume":          PropertyVolume,
	"monitor":         PropertyMonitor,
	"nop":             PropertyNop,
	"restart":         PropertyRestart,
}

// ParseProperty resolves a property name case-insensitively.
func ParseProperty(name string) (Property, bool) {
	p, ok := propertyNames[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (p Property) String() string {
	for name, v := range propertyNames {
		if v == p {
			return name
		}
	}
	return "unknown"
}

// Horizontal reports whether layout alignment keywords for p resolve against
// the layout width (left, center, right, stretch).
func (p Property) Horizontal() bool {
	switch p {
	case PropertyX, PropertyWidth, PropertyXOffset, PropertyXOrigin, PropertyContainerX, PropertyContainerWidth:
		return true
	}
	return false
}

// Vertical reports whether layout alignment keywords for p resolve against
// the layout height (top, center, bottom, stretch).
func (p Property) Vertical() bool {
	switch p {
	case PropertyY, PropertyHeight, PropertyYOffset, PropertyYOrigin, PropertyFontSize,
		PropertyContainerY, PropertyContainerHeight, PropertyMaxWidth, PropertyMaxHeight:
		return true
	}
	return false
}
