package animation

import (
	"sort"
	"time"
)

// stepKind is the next motion a phase machine will emit.
type stepKind int

const (
	stepForward stepKind = iota
	stepBackward
	stepSnap
	stepDone
)

// phase is the explicit per-animation playback state. It is advanced only by
// pure transition functions so the scheduler needs no live clock.
type phase struct {
	next        stepKind
	repeatCount int
	nextFire    time.Duration
}

// Frame is one emitted playback primitive: reach Target over Duration with
// Easing, starting at absolute elapsed time FireAt. Snap frames have zero
// duration and jump without easing. Delay is the wait between the previous
// frame's end and FireAt.
type Frame[T any] struct {
	Target   T
	Duration time.Duration
	Delay    time.Duration
	FireAt   time.Duration
	Easing   Easing
	Snap     bool
}

// Timeline schedules a group of animations over one property. Animations are
// sorted by start delay; at each step the timeline picks the live animation
// with the smallest pending fire time, advances global elapsed time and emits
// a Frame.
type Timeline[T any] struct {
	anims   []Animation[T]
	phases  []phase
	elapsed time.Duration
}

// NewTimeline builds a timeline over the animation group. The slice is
// copied and sorted by start delay.
func NewTimeline[T any](anims []Animation[T]) *Timeline[T] {
	sorted := make([]Animation[T], len(anims))
	copy(sorted, anims)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDelay < sorted[j].StartDelay
	})

	phases := make([]phase, len(sorted))
	for i := range sorted {
		phases[i] = phase{next: stepForward, nextFire: sorted[i].StartDelay}
	}
	return &Timeline[T]{anims: sorted, phases: phases}
}

// Next emits the next frame, or false when every animation is exhausted.
func (t *Timeline[T]) Next() (Frame[T], bool) {
	idx := -1
	for i := range t.phases {
		if t.phases[i].next == stepDone {
			continue
		}
		if idx == -1 || t.phases[i].nextFire < t.phases[idx].nextFire {
			idx = i
		}
	}
	if idx == -1 {
		return Frame[T]{}, false
	}

	anim := &t.anims[idx]
	p := &t.phases[idx]

	delay := p.nextFire - t.elapsed
	if delay < 0 {
		delay = 0
	}
	fireAt := t.elapsed + delay

	var frame Frame[T]
	switch p.next {
	case stepForward:
		frame = Frame[T]{Target: anim.End, Duration: anim.Duration, Delay: delay, FireAt: fireAt, Easing: anim.Easing}
	case stepBackward:
		frame = Frame[T]{Target: anim.Start, Duration: anim.Duration, Delay: delay, FireAt: fireAt, Easing: anim.Easing}
	case stepSnap:
		frame = Frame[T]{Target: anim.Start, Delay: delay, FireAt: fireAt, Snap: true}
	}

	t.elapsed = fireAt + frame.Duration
	*p = advance(*p, anim, t.elapsed)
	return frame, true
}

// Elapsed is the total scheduled time consumed so far.
func (t *Timeline[T]) Elapsed() time.Duration {
	return t.elapsed
}

// advance is the pure phase transition: given the step just emitted, produce
// the phase for the next one.
func advance[T any](p phase, anim *Animation[T], elapsed time.Duration) phase {
	switch p.next {
	case stepForward:
		switch anim.Repeat {
		case RepeatNormal:
			// A round is snap-back plus forward; the first pass counts as a
			// completed round on its own
			p.repeatCount++
			if exhausted(p.repeatCount, anim.RepeatMaxCount) {
				p.next = stepDone
				return p
			}
			p.next = stepSnap
			p.nextFire = elapsed + anim.RepeatDelay
		case RepeatPingPong:
			p.next = stepBackward
			p.nextFire = elapsed + anim.PingPongDelay
		default:
			p.next = stepDone
		}
	case stepBackward:
		p.repeatCount++
		if exhausted(p.repeatCount, anim.RepeatMaxCount) {
			p.next = stepDone
			return p
		}
		p.next = stepForward
		p.nextFire = elapsed + anim.RepeatDelay
	case stepSnap:
		p.next = stepForward
		p.nextFire = elapsed
	}
	return p
}

func exhausted(count, maxCount int) bool {
	if maxCount <= 0 || maxCount == Unlimited {
		return false
	}
	return count >= maxCount
}
