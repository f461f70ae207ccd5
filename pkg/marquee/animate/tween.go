package animate

// Tween interpolates a single property from Start to End over Duration
// seconds. When StartDefined is false the start value comes from the
// caller (the component's baseline when the phase began).
type Tween struct {
	Property     Property
	Algorithm    Algorithm
	Start        float64
	End          float64
	Duration     float64
	StartDefined bool
}

// NewTween returns a tween with an absolute start value.
func NewTween(property Property, algorithm Algorithm, start, end, duration float64) *Tween {
	return &Tween{
		Property:     property,
		Algorithm:    algorithm,
		Start:        start,
		End:          end,
		Duration:     duration,
		StartDefined: true,
	}
}

// NewRelativeTween returns a tween whose start value is supplied at playback.
func NewRelativeTween(property Property, algorithm Algorithm, end, duration float64) *Tween {
	return &Tween{
		Property:  property,
		Algorithm: algorithm,
		End:       end,
		Duration:  duration,
	}
}

// Animate evaluates the tween at elapsed seconds using its own start value.
func (t *Tween) Animate(elapsed float64) float32 {
	return Ease(t.Algorithm, t.Start, t.End, t.Duration, elapsed)
}

// AnimateFrom evaluates the tween at elapsed seconds from start.
func (t *Tween) AnimateFrom(elapsed, start float64) float32 {
	return Ease(t.Algorithm, start, t.End, t.Duration, elapsed)
}

// Value evaluates the tween from baseline when the start is not baked in.
func (t *Tween) Value(elapsed, baseline float64) float32 {
	if t.StartDefined {
		return t.Animate(elapsed)
	}
	return t.AnimateFrom(elapsed, baseline)
}

// Done reports whether elapsed has reached the tween's duration.
func (t *Tween) Done(elapsed float64) bool {
	return elapsed >= t.Duration
}

// Ease evaluates curve a from start to end over duration at elapsed.
// Elapsed is clamped to [0, duration]; a zero duration yields start.
func Ease(a Algorithm, start, end, duration, elapsed float64) float32 {
	if duration <= 0 || elapsed <= 0 {
		return float32(start)
	}
	if elapsed >= duration {
		return float32(end)
	}
	fn := curves[Linear]
	if a >= 0 && a < algorithmCount {
		fn = curves[a]
	}
	return float32(fn(elapsed, duration, start, end-start))
}
