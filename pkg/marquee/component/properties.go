package component

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// property reads the view channel p drives.
func property(v *view.Info, p animate.Property) float64 {
	switch p {
	case animate.PropertyX:
		return float64(v.X)
	case animate.PropertyY:
		return float64(v.Y)
	case animate.PropertyAngle:
		return float64(v.Angle)
	case animate.PropertyAlpha:
		return float64(v.Alpha)
	case animate.PropertyWidth:
		return float64(v.Width)
	case animate.PropertyHeight:
		return float64(v.Height)
	case animate.PropertyXOrigin:
		return float64(v.XOrigin)
	case animate.PropertyYOrigin:
		return float64(v.YOrigin)
	case animate.PropertyXOffset:
		return float64(v.XOffset)
	case animate.PropertyYOffset:
		return float64(v.YOffset)
	case animate.PropertyFontSize:
		return float64(v.FontSize)
	case animate.PropertyBackgroundAlpha:
		return float64(v.BackgroundAlpha)
	case animate.PropertyMaxWidth:
		return float64(v.MaxWidth)
	case animate.PropertyMaxHeight:
		return float64(v.MaxHeight)
	case animate.PropertyLayer:
		return float64(v.Layer)
	case animate.PropertyContainerX:
		return float64(v.ContainerX)
	case animate.PropertyContainerY:
		return float64(v.ContainerY)
	case animate.PropertyContainerWidth:
		return float64(v.ContainerWidth)
	case animate.PropertyContainerHeight:
		return float64(v.ContainerHeight)
	case animate.PropertyVolume:
		return float64(v.Volume)
	case animate.PropertyMonitor:
		return float64(v.Monitor)
	case animate.PropertyRestart:
		if v.Restart {
			return 1
		}
	}
	return 0
}

// setProperty writes value to the channel p drives. Layer and Monitor
// truncate.
func setProperty(v *view.Info, p animate.Property, value float32) {
	switch p {
	case animate.PropertyX:
		v.X = value
	case animate.PropertyY:
		v.Y = value
	case animate.PropertyAngle:
		v.Angle = value
	case animate.PropertyAlpha:
		v.Alpha = value
	case animate.PropertyWidth:
		v.Width = value
	case animate.PropertyHeight:
		v.Height = value
	case animate.PropertyXOrigin:
		v.XOrigin = value
	case animate.PropertyYOrigin:
		v.YOrigin = value
	case animate.PropertyXOffset:
		v.XOffset = value
	case animate.PropertyYOffset:
		v.YOffset = value
	case animate.PropertyFontSize:
		v.FontSize = value
	case animate.PropertyBackgroundAlpha:
		v.BackgroundAlpha = value
	case animate.PropertyMaxWidth:
		v.MaxWidth = value
	case animate.PropertyMaxHeight:
		v.MaxHeight = value
	case animate.PropertyLayer:
		v.Layer = int(value)
	case animate.PropertyContainerX:
		v.ContainerX = value
	case animate.PropertyContainerY:
		v.ContainerY = value
	case animate.PropertyContainerWidth:
		v.ContainerWidth = value
	case animate.PropertyContainerHeight:
		v.ContainerHeight = value
	case animate.PropertyVolume:
		v.Volume = value
	case animate.PropertyMonitor:
		v.Monitor = int(value)
	case animate.PropertyRestart:
		v.Restart = value != 0
	case animate.PropertyNop:
	}
}
