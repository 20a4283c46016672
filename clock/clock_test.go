package clock

import "testing"

func TestAdvanceFiresInDueOrder(t *testing.T) {
	c := New()
	var got []string
	c.After(30, func() { got = append(got, "b") })
	c.After(10, func() { got = append(got, "a") })
	c.After(30, func() { got = append(got, "c") })
	c.After(31, func() { got = append(got, "late") })

	c.Advance(30)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if c.Now() != 30 {
		t.Fatalf("expected now=30, got %v", c.Now())
	}
}

func TestNowInsideCallbackIsDueTime(t *testing.T) {
	c := New()
	var seen []float64
	c.Every(40, func() { seen = append(seen, c.Now()) })

	c.Advance(130)

	want := []float64{40, 80, 120}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
}

func TestCallbackScheduledTasksWaitForNextAdvance(t *testing.T) {
	c := New()
	fired := 0
	c.After(5, func() {
		c.After(0.1, func() { fired++ })
	})

	c.Advance(16)
	if fired != 0 {
		t.Fatalf("nested task fired in the same advance")
	}
	c.Advance(16)
	if fired != 1 {
		t.Fatalf("expected nested task to fire once, got %d", fired)
	}
}

func TestDeferredTaskSeesItsDueTime(t *testing.T) {
	tests := []struct {
		name  string
		delay float64
		want  float64
	}{
		{"inside_previous_advance", 0.1, 5.1},
		{"inside_next_advance", 20, 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			seen := -1.0
			c.After(5, func() {
				c.After(tc.delay, func() { seen = c.Now() })
			})

			c.Advance(16)
			c.Advance(16)
			if seen != tc.want {
				t.Fatalf("deferred task saw now=%v, want %v", seen, tc.want)
			}
			if c.Now() != 32 {
				t.Fatalf("expected now=32 after the advance, got %v", c.Now())
			}
		})
	}
}

func TestPauseFreezesTimeAndTasks(t *testing.T) {
	c := New()
	fired := 0
	c.After(50, func() { fired++ })

	c.Advance(20)
	c.Pause()
	c.Advance(1000)
	if fired != 0 || c.Now() != 20 {
		t.Fatalf("paused clock moved: now=%v fired=%d", c.Now(), fired)
	}

	c.Resume()
	c.Advance(29)
	if fired != 0 {
		t.Fatalf("task fired early")
	}
	c.Advance(1)
	if fired != 1 {
		t.Fatalf("expected task to fire after resume, got %d", fired)
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name   string
		cancel func(c *Clock, task *Task)
	}{
		{"handle", func(_ *Clock, task *Task) { task.Cancel() }},
		{"cancel_all", func(c *Clock, _ *Task) { c.CancelAll() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			fired := 0
			task := c.Every(10, func() { fired++ })
			c.Advance(25)
			tc.cancel(c, task)
			c.Advance(100)
			if fired != 2 {
				t.Fatalf("expected 2 firings before cancel, got %d", fired)
			}
			if task.Active() || c.Len() != 0 {
				t.Fatalf("task should be inactive and registry empty")
			}
		})
	}
}

func TestCancelFromInsideCallback(t *testing.T) {
	c := New()
	fired := 0
	var task *Task
	task = c.Every(10, func() {
		fired++
		if fired == 3 {
			task.Cancel()
		}
	})
	c.Advance(100)
	if fired != 3 {
		t.Fatalf("expected 3 firings, got %d", fired)
	}
}

func TestOneShotBecomesInactive(t *testing.T) {
	c := New()
	task := c.After(5, func() {})
	if !task.Active() {
		t.Fatalf("expected task to be active before firing")
	}
	c.Advance(5)
	if task.Active() {
		t.Fatalf("one-shot should be inactive after firing")
	}
}
