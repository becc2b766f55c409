package clock

import "time"

// FakeClock is a Clock pinned to a fixed instant. Invoice tests use it
// to move "today" past a due date and watch the overdue sweep react.
type FakeClock struct {
	current time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward without touching real time.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
