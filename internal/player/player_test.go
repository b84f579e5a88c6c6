package player

import (
	"testing"
	"time"

	"github.com/skylineapps/paywallkit/internal/elements"
)

func autoPager(pages int, anim *elements.PagerAnimation) *elements.Pager {
	els := make([]elements.Element, pages)
	for i := range els {
		els[i] = &elements.Space{Props: elements.NewBaseProps()}
	}
	return &elements.Pager{Props: elements.NewBaseProps(), ID: "carousel", Pages: els, Animation: anim}
}

func settle(s *pagerState) {
	// Let the display spring catch up with the logical index
	for i := 0; i < 200; i++ {
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, float64(s.index))
	}
}

func TestPager_AutoAdvanceAfterDwell(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	anim := &elements.PagerAnimation{
		StartDelay:     2 * time.Second,
		PageTransition: 300 * time.Millisecond,
	}
	s := newPagerState(autoPager(3, anim), base)

	s.tick(base.Add(time.Second))
	if s.index != 0 {
		t.Fatalf("advanced before start delay: index=%d", s.index)
	}

	s.tick(base.Add(2 * time.Second))
	if s.index != 1 {
		t.Fatalf("index = %d, want 1 after start delay", s.index)
	}

	// Next advance waits a full dwell again
	s.tick(base.Add(2*time.Second + time.Second))
	if s.index != 1 {
		t.Errorf("index = %d, advanced before dwell elapsed", s.index)
	}
	s.tick(base.Add(4 * time.Second))
	if s.index != 2 {
		t.Errorf("index = %d, want 2", s.index)
	}
}

func TestPager_RepeatWrapsToFirstPage(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	anim := &elements.PagerAnimation{
		StartDelay:       time.Second,
		RepeatTransition: 500 * time.Millisecond,
	}
	s := newPagerState(autoPager(2, anim), base)

	s.tick(base.Add(time.Second))     // -> 1
	s.tick(base.Add(2 * time.Second)) // wraps -> 0
	if s.index != 0 {
		t.Errorf("index = %d, want wrap to 0", s.index)
	}
	if s.cancelled {
		t.Error("repeat pager must keep playing")
	}
}

func TestPager_WithoutRepeatStopsOnLastPage(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	anim := &elements.PagerAnimation{StartDelay: time.Second}
	s := newPagerState(autoPager(2, anim), base)

	s.tick(base.Add(time.Second))
	s.tick(base.Add(2 * time.Second))
	if s.index != 1 {
		t.Errorf("index = %d, want to stay on last page", s.index)
	}
	if !s.cancelled {
		t.Error("auto-play should stop after the last page without repeat")
	}
}

func TestPager_UserFlipInterruption(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancel policy stops auto-play permanently", func(t *testing.T) {
		anim := &elements.PagerAnimation{
			StartDelay:   time.Second,
			Interruption: elements.InterruptionCancel,
		}
		s := newPagerState(autoPager(3, anim), base)
		s.flip(1, base.Add(500*time.Millisecond))
		if !s.cancelled {
			t.Fatal("cancel policy did not cancel auto-play")
		}
		s.tick(base.Add(10 * time.Second))
		if s.index != 1 {
			t.Errorf("index = %d, auto-play resumed after cancel", s.index)
		}
	})

	t.Run("pause policy reschedules", func(t *testing.T) {
		anim := &elements.PagerAnimation{
			StartDelay:   time.Second,
			Interruption: elements.InterruptionPause,
		}
		s := newPagerState(autoPager(3, anim), base)
		s.flip(1, base.Add(900*time.Millisecond))
		if s.cancelled {
			t.Fatal("pause policy cancelled auto-play")
		}
		// The original schedule (base+1s) must not fire; the new one does
		s.tick(base.Add(1500 * time.Millisecond))
		if s.index != 1 {
			t.Errorf("index = %d, advanced before rescheduled delay", s.index)
		}
		s.tick(base.Add(1900 * time.Millisecond))
		if s.index != 2 {
			t.Errorf("index = %d, want 2 after rescheduled delay", s.index)
		}
	})
}

func TestPager_DisplayIndexFollowsSpring(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newPagerState(autoPager(3, nil), base)

	s.flip(2, base)
	if got := s.displayIndex(); got != 0 {
		t.Errorf("display index jumped to %d before the spring moved", got)
	}
	settle(s)
	if got := s.displayIndex(); got != 2 {
		t.Errorf("display index = %d after settling, want 2", got)
	}
}

func TestHotspotForKey(t *testing.T) {
	m := &Model{hotspots: []elements.Hotspot{
		{ID: "buy"},
		{ID: "restore"},
	}}

	if spot, ok := m.hotspotForKey("2"); !ok || spot.ID != "restore" {
		t.Errorf("key 2 = %+v %v", spot, ok)
	}
	if _, ok := m.hotspotForKey("3"); ok {
		t.Error("key beyond hotspot count should not match")
	}
	if _, ok := m.hotspotForKey("0"); ok {
		t.Error("key 0 should not match")
	}
}
