package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerScheduler_FiresOnDeadline(t *testing.T) {
	fired := make(chan string, 1)
	sched := NewTimerScheduler(func(id string) { fired <- id })
	defer sched.Stop()

	sched.Schedule("sess-1", time.Now().Add(10*time.Millisecond))

	select {
	case id := <-fired:
		assert.Equal(t, "sess-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("deadline never fired")
	}
}

func TestTimerScheduler_CancelPreventsFiring(t *testing.T) {
	fired := make(chan string, 1)
	sched := NewTimerScheduler(func(id string) { fired <- id })
	defer sched.Stop()

	sched.Schedule("sess-1", time.Now().Add(30*time.Millisecond))
	sched.Cancel("sess-1")

	select {
	case <-fired:
		t.Fatal("cancelled deadline fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerScheduler_RescheduleReplacesDeadline(t *testing.T) {
	fired := make(chan string, 2)
	sched := NewTimerScheduler(func(id string) { fired <- id })
	defer sched.Stop()

	sched.Schedule("sess-1", time.Now().Add(20*time.Millisecond))
	sched.Schedule("sess-1", time.Now().Add(60*time.Millisecond))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("deadline never fired")
	}

	// the first timer was replaced, not left to fire a second time
	select {
	case <-fired:
		t.Fatal("replaced deadline fired twice")
	case <-time.After(100 * time.Millisecond):
	}
}
