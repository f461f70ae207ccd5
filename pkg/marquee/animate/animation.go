package animate

// TweenSet is a group of tweens that play simultaneously. The set is
// complete once every member reached its own duration.
type TweenSet struct {
	tweens []*Tween
}

// NewTweenSet returns a set holding tweens.
func NewTweenSet(tweens ...*Tween) *TweenSet {
	return &TweenSet{tweens: tweens}
}

// Push appends a tween.
func (s *TweenSet) Push(t *Tween) {
	s.tweens = append(s.tweens, t)
}

// Tweens returns the member tweens.
func (s *TweenSet) Tweens() []*Tween {
	return s.tweens
}

// Len returns the number of tweens.
func (s *TweenSet) Len() int {
	return len(s.tweens)
}

// Find returns the first tween driving p.
func (s *TweenSet) Find(p Property) *Tween {
	for _, t := range s.tweens {
		if t.Property == p {
			return t
		}
	}
	return nil
}

// Done reports whether every tween finished at elapsed.
func (s *TweenSet) Done(elapsed float64) bool {
	for _, t := range s.tweens {
		if !t.Done(elapsed) {
			return false
		}
	}
	return true
}

// Animation is an ordered sequence of tween sets played one after another.
type Animation struct {
	sets []*TweenSet
}

// NewAnimation returns an animation playing sets in order.
func NewAnimation(sets ...*TweenSet) *Animation {
	return &Animation{sets: sets}
}

// Push appends a phase.
func (a *Animation) Push(s *TweenSet) {
	a.sets = append(a.sets, s)
}

// Len returns the number of phases. A nil animation has none.
func (a *Animation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.sets)
}

// Set returns phase i.
func (a *Animation) Set(i int) *TweenSet {
	return a.sets[i]
}

// Duration is the sum of the longest tween of every phase.
func (a *Animation) Duration() float64 {
	var total float64
	for _, s := range a.sets {
		var longest float64
		for _, t := range s.tweens {
			if t.Duration > longest {
				longest = t.Duration
			}
		}
		total += longest
	}
	return total
}
