package player

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/skylineapps/paywallkit/internal/elements"
)

// pagerState is the player-side clock of one pager: the logical page index,
// the spring-smoothed display position and the auto-advance schedule.
type pagerState struct {
	pageCount int
	anim      *elements.PagerAnimation

	index     int
	pos       float64
	vel       float64
	spring    harmonica.Spring
	nextFire  time.Time
	cancelled bool
}

func newPagerState(p *elements.Pager, now time.Time) *pagerState {
	s := &pagerState{
		pageCount: p.PageCount(),
		anim:      p.Animation,
		spring:    harmonica.NewSpring(harmonica.FPS(frameRate), 6.0, 0.8),
	}
	if s.anim != nil {
		s.nextFire = now.Add(s.anim.StartDelay)
	}
	return s
}

// tick advances the auto-play schedule and the display spring.
func (s *pagerState) tick(now time.Time) {
	if s.anim != nil && !s.cancelled && s.pageCount > 1 && !now.Before(s.nextFire) {
		next := s.index + 1
		if next >= s.pageCount {
			if s.anim.RepeatTransition > 0 {
				next = 0
			} else {
				// Played through once; stay on the last page
				s.cancelled = true
				next = s.index
			}
		}
		s.index = next
		s.nextFire = now.Add(s.dwell())
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, float64(s.index))
}

// dwell is how long a page stays before the next automatic transition.
func (s *pagerState) dwell() time.Duration {
	if s.anim.StartDelay > 0 {
		return s.anim.StartDelay
	}
	if s.anim.PageTransition > 0 {
		return s.anim.PageTransition
	}
	return 3 * time.Second
}

// flip applies a user page change and the configured interruption policy.
func (s *pagerState) flip(delta int, now time.Time) {
	next := s.index + delta
	if next < 0 {
		next = 0
	}
	if next > s.pageCount-1 {
		next = s.pageCount - 1
	}
	s.index = next

	if s.anim == nil {
		return
	}
	switch s.anim.Interruption {
	case elements.InterruptionPause:
		s.nextFire = now.Add(s.anim.StartDelay)
	default:
		s.cancelled = true
	}
}

// displayIndex is the spring-smoothed page the renderer should show.
func (s *pagerState) displayIndex() int {
	idx := int(math.Round(s.pos))
	if idx < 0 {
		idx = 0
	}
	if idx > s.pageCount-1 {
		idx = s.pageCount - 1
	}
	return idx
}
