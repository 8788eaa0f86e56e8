package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_DueImmediately(t *testing.T) {
	s := NewScheduler(5 * time.Second)
	assert.True(t, s.Due(time.Now()))
	assert.True(t, s.Last().IsZero())
}

func TestScheduler_Interval(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	s := NewScheduler(5 * time.Second)
	s.Mark(t0)

	assert.False(t, s.Due(t0))
	assert.False(t, s.Due(t0.Add(4999*time.Millisecond)))
	assert.True(t, s.Due(t0.Add(5*time.Second)))
	assert.True(t, s.Due(t0.Add(time.Minute)))
	assert.Equal(t, t0, s.Last())
	assert.Equal(t, 5*time.Second, s.Interval())
}

func TestScheduler_ManualMarkPushesNextRefresh(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	s := NewScheduler(5 * time.Second)
	s.Mark(t0)

	// Manual refresh four seconds in.
	s.Mark(t0.Add(4 * time.Second))

	assert.False(t, s.Due(t0.Add(5*time.Second)), "no near-duplicate refresh right after a manual one")
	assert.False(t, s.Due(t0.Add(8*time.Second)))
	assert.True(t, s.Due(t0.Add(9*time.Second)))
}
