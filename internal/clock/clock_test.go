package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := &RealClock{}

	before := time.Now()
	actual := clock.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("RealClock.Now() returned time outside expected range: got %v, expected between %v and %v", actual, before, after)
	}
	if actual.Location() != time.UTC {
		t.Errorf("RealClock.Now() location = %v, want UTC", actual.Location())
	}
}

func TestFakeClock(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	fixedTime := time.Date(2024, 1, 15, 12, 30, 0, 0, local)
	clock := NewFakeClock(fixedTime)

	t.Run("returns fixed time in UTC", func(t *testing.T) {
		actual := clock.Now()
		if !actual.Equal(fixedTime) {
			t.Errorf("FakeClock.Now() = %v, want %v", actual, fixedTime)
		}
		if actual.Hour() != 10 {
			t.Errorf("FakeClock.Now().Hour() = %d, want 10", actual.Hour())
		}
	})

	t.Run("advance", func(t *testing.T) {
		start := clock.Now()
		clock.Advance(1500 * time.Millisecond)
		if got := clock.Now().Sub(start); got != 1500*time.Millisecond {
			t.Errorf("elapsed = %v, want 1.5s", got)
		}
	})
}
