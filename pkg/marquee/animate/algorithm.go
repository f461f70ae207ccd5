package animate

import (
	"math"
	"strings"
)

// Algorithm identifies an easing curve.
type Algorithm int

const (
	Linear Algorithm = iota
	EaseInQuadratic
	EaseOutQuadratic
	EaseInOutQuadratic
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuartic
	EaseOutQuartic
	EaseInOutQuartic
	EaseInQuintic
	EaseOutQuintic
	EaseInOutQuintic
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInExponential
	EaseOutExponential
	EaseInOutExponential
	EaseInCircular
	EaseOutCircular
	EaseInOutCircular
	algorithmCount
)

var algorithmNames = map[string]Algorithm{
	"linear":               Linear,
	"easeinquadratic":      EaseInQuadratic,
	"easeoutquadratic":     EaseOutQuadratic,
	"easeinoutquadratic":   EaseInOutQuadratic,
	"easeincubic":          EaseInCubic,
	"easeoutcubic":         EaseOutCubic,
	"easeinoutcubic":       EaseInOutCubic,
	"easeinquartic":        EaseInQuartic,
	"easeoutquartic":       EaseOutQuartic,
	"easeinoutquartic":     EaseInOutQuartic,
	"easeinquintic":        EaseInQuintic,
	"easeoutquintic":       EaseOutQuintic,
	"easeinoutquintic":     EaseInOutQuintic,
	"easeonoutquintic":     EaseInOutQuintic, // legacy layouts use this spelling
	"easeinsine":           EaseInSine,
	"easeoutsine":          EaseOutSine,
	"easeinoutsine":        EaseInOutSine,
	"easeinexponential":    EaseInExponential,
	"easeoutexponential":   EaseOutExponential,
	"easeinoutexponential": EaseInOutExponential,
	"easeincircular":       EaseInCircular,
	"easeoutcircular":      EaseOutCircular,
	"easeinoutcircular":    EaseInOutCircular,
}

// Algorithms lists every curve, in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, algorithmCount)
	for a := Linear; a < algorithmCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAlgorithm resolves a curve name case-insensitively.
// Unknown names resolve to Linear.
func ParseAlgorithm(name string) Algorithm {
	if a, ok := algorithmNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a
	}
	return Linear
}

var algorithmStrings = func() [algorithmCount]string {
	var out [algorithmCount]string
	for name, a := range algorithmNames {
		if name != "easeonoutquintic" {
			out[a] = name
		}
	}
	return out
}()

func (a Algorithm) String() string {
	if a < 0 || a >= algorithmCount {
		return "linear"
	}
	return algorithmStrings[a]
}

// curve evaluates a at time t of duration d, from b by change c.
// Callers guarantee 0 < t < d.
type curve func(t, d, b, c float64) float64

var curves = [algorithmCount]curve{
	Linear:               linear,
	EaseInQuadratic:      easeInQuadratic,
	EaseOutQuadratic:     easeOutQuadratic,
	EaseInOutQuadratic:   easeInOutQuadratic,
	EaseInCubic:          easeInCubic,
	EaseOutCubic:         easeOutCubic,
	EaseInOutCubic:       easeInOutCubic,
	EaseInQuartic:        easeInQuartic,
	EaseOutQuartic:       easeOutQuartic,
	EaseInOutQuartic:     easeInOutQuartic,
	EaseInQuintic:        easeInQuintic,
	EaseOutQuintic:       easeOutQuintic,
	EaseInOutQuintic:     easeInOutQuintic,
	EaseInSine:           easeInSine,
	EaseOutSine:          easeOutSine,
	EaseInOutSine:        easeInOutSine,
	EaseInExponential:    easeInExponential,
	EaseOutExponential:   easeOutExponential,
	EaseInOutExponential: easeInOutExponential,
	EaseInCircular:       easeInCircular,
	EaseOutCircular:      easeOutCircular,
	EaseInOutCircular:    easeInOutCircular,
}

func linear(t, d, b, c float64) float64 {
	return c*t/d + b
}

func easeInQuadratic(t, d, b, c float64) float64 {
	t /= d
	return c*t*t + b
}

func easeOutQuadratic(t, d, b, c float64) float64 {
	t /= d
	return -c*t*(t-2) + b
}

func easeInOutQuadratic(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}

func easeInCubic(t, d, b, c float64) float64 {
	t /= d
	return c*t*t*t + b
}

func easeOutCubic(t, d, b, c float64) float64 {
	t = t/d - 1
	return c*(t*t*t+1) + b
}

func easeInOutCubic(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t*t + b
	}
	t -= 2
	return c/2*(t*t*t+2) + b
}

func easeInQuartic(t, d, b, c float64) float64 {
	t /= d
	return c*t*t*t*t + b
}

func easeOutQuartic(t, d, b, c float64) float64 {
	t = t/d - 1
	return -c*(t*t*t*t-1) + b
}

func easeInOutQuartic(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t*t*t + b
	}
	t -= 2
	return -c/2*(t*t*t*t-2) + b
}

func easeInQuintic(t, d, b, c float64) float64 {
	t /= d
	return c*t*t*t*t*t + b
}

func easeOutQuintic(t, d, b, c float64) float64 {
	t = t/d - 1
	return c*(t*t*t*t*t+1) + b
}

func easeInOutQuintic(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t*t*t*t + b
	}
	t -= 2
	return c/2*(t*t*t*t*t+2) + b
}

func easeInSine(t, d, b, c float64) float64 {
	return -c*math.Cos(t/d*(math.Pi/2)) + c + b
}

func easeOutSine(t, d, b, c float64) float64 {
	return c*math.Sin(t/d*(math.Pi/2)) + b
}

func easeInOutSine(t, d, b, c float64) float64 {
	return -c/2*(math.Cos(math.Pi*t/d)-1) + b
}

func easeInExponential(t, d, b, c float64) float64 {
	return c*math.Pow(2, 10*(t/d-1)) + b
}

func easeOutExponential(t, d, b, c float64) float64 {
	return c*(-math.Pow(2, -10*t/d)+1) + b
}

func easeInOutExponential(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return c/2*math.Pow(2, 10*(t-1)) + b
	}
	t--
	return c/2*(-math.Pow(2, -10*t)+2) + b
}

func easeInCircular(t, d, b, c float64) float64 {
	t /= d
	return -c*(math.Sqrt(1-t*t)-1) + b
}

func easeOutCircular(t, d, b, c float64) float64 {
	t = t/d - 1
	return c*math.Sqrt(1-t*t) + b
}

func easeInOutCircular(t, d, b, c float64) float64 {
	t /= d / 2
	if t < 1 {
		return -c/2*(math.Sqrt(1-t*t)-1) + b
	}
	t -= 2
	return c/2*(math.Sqrt(1-t*t)+1) + b
}
