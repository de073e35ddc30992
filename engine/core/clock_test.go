package core

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("unstarted clock advanced to %s", c.Elapsed())
	}

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	elapsed := c.Elapsed()
	if elapsed < 5*time.Millisecond {
		t.Fatalf("elapsed %s after a 5ms sleep", elapsed)
	}

	c.Stop()
	time.Sleep(time.Millisecond)
	c.Update()
	if c.Elapsed() != elapsed {
		t.Errorf("stopped clock moved from %s to %s", elapsed, c.Elapsed())
	}

	c.Start()
	if c.Elapsed() != 0 {
		t.Error("Start did not reset the elapsed time")
	}
}
