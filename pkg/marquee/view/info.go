// Package view holds the positional and visual attributes every drawable
// component carries and animates.
package view

import (
	"math"
	"strings"
)

// Font is the drawable font a view may carry as a per-slot override.
// It is opaque to this package.
type Font interface{}

// Unbounded is the default max width/height.
const Unbounded = math.MaxFloat32

// Info is a value type: copy it freely. Width and Height of -1 mean "derive
// from the image aspect".
type Info struct {
	X, Y             float32
	XOrigin, YOrigin float32 // fraction of the scaled size
	XOffset, YOffset float32

	Width, MinWidth, MaxWidth    float32
	Height, MinHeight, MaxHeight float32
	ImageWidth, ImageHeight      float32

	FontSize float32
	Font     Font

	Angle float32
	Alpha float32
	Layer int

	BackgroundRed, BackgroundGreen, BackgroundBlue, BackgroundAlpha float32

	Reflection         string
	ReflectionDistance int
	ReflectionScale    float32
	ReflectionAlpha    float32

	ContainerX, ContainerY          float32
	ContainerWidth, ContainerHeight float32

	Monitor int
	Volume  float32
	Restart bool
}

// New returns an Info with the layout defaults.
func New() Info {
	return Info{
		Width:           -1,
		MaxWidth:        Unbounded,
		Height:          -1,
		MaxHeight:       Unbounded,
		FontSize:        -1,
		Alpha:           1,
		ReflectionScale: 0.25,
		ReflectionAlpha: 1,
		ContainerWidth:  -1,
		ContainerHeight: -1,
	}
}

// AbsoluteWidth is Width, or the width implied by Height and the image
// aspect, or the image width when neither is set.
func (v Info) AbsoluteWidth() float32 {
	if v.Height < 0 && v.Width < 0 {
		return v.ImageWidth
	}
	if v.Width < 0 && v.ImageHeight != 0 {
		return v.ImageWidth * v.Height / v.ImageHeight
	}
	return v.Width
}

// AbsoluteHeight mirrors AbsoluteWidth.
func (v Info) AbsoluteHeight() float32 {
	if v.Height < 0 && v.Width < 0 {
		return v.ImageHeight
	}
	if v.Height < 0 && v.ImageWidth != 0 {
		return v.ImageHeight * v.Width / v.ImageWidth
	}
	return v.Height
}

// ScaledWidth is the absolute width after the min/max clamps.
func (v Info) ScaledWidth() float32 {
	w, _ := v.scaled()
	return w
}

// ScaledHeight is the absolute height after the min/max clamps.
func (v Info) ScaledHeight() float32 {
	_, h := v.scaled()
	return h
}

// scaled applies the aspect-preserving clamps. If only one dimension breaks
// a bound it is pinned to that bound and the other follows; if both do, the
// more severe violation is pinned and the other scales by the same factor.
func (v Info) scaled() (float32, float32) {
	w := v.AbsoluteWidth()
	h := v.AbsoluteHeight()

	if w < v.MinWidth || h < v.MinHeight {
		sw := v.MinWidth / w
		sh := v.MinHeight / h
		switch {
		case w >= v.MinWidth:
			w, h = w*sh, v.MinHeight
		case h >= v.MinHeight:
			w, h = v.MinWidth, h*sw
		case sh > sw:
			w, h = w*sh, v.MinHeight
		default:
			w, h = v.MinWidth, h*sw
		}
	}

	if w > v.MaxWidth || h > v.MaxHeight {
		sw := v.MaxWidth / w
		sh := v.MaxHeight / h
		switch {
		case w <= v.MaxWidth:
			w, h = w*sh, v.MaxHeight
		case h <= v.MaxHeight:
			w, h = v.MaxWidth, h*sw
		case sh < sw:
			w, h = w*sh, v.MaxHeight
		default:
			w, h = v.MaxWidth, h*sw
		}
	}

	return w, h
}

// XRelativeToOrigin is the left edge after offset and origin.
func (v Info) XRelativeToOrigin() float32 {
	return v.X + v.XOffset - v.XOrigin*v.ScaledWidth()
}

// YRelativeToOrigin is the top edge after offset and origin.
func (v Info) YRelativeToOrigin() float32 {
	return v.Y + v.YOffset - v.YOrigin*v.ScaledHeight()
}

// Reflects reports whether a reflection is configured on edge
// ("top", "bottom", "left" or "right").
func (v Info) Reflects(edge string) bool {
	for _, e := range strings.Fields(strings.ReplaceAll(v.Reflection, ",", " ")) {
		if strings.EqualFold(e, edge) {
			return true
		}
	}
	return false
}

// Clipped reports whether a container box is set.
func (v Info) Clipped() bool {
	return v.ContainerWidth > 0 && v.ContainerHeight > 0
}
