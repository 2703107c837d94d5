package input

import "time"

const (
	DoubleClickWindow   = 350 * time.Millisecond
	DoubleClickDistance = 5
)

// ClickTracker recognizes two presses close together in time and space.
type ClickTracker struct {
	lastClick time.Time
	lastPos   [2]int
}

// Click records a press at (x, y) and reports whether it completes a
// double click. A completed double click does not start another one.
func (c *ClickTracker) Click(now time.Time, x, y int) bool {
	double := false
	if !c.lastClick.IsZero() && now.Sub(c.lastClick) < DoubleClickWindow {
		dx := x - c.lastPos[0]
		dy := y - c.lastPos[1]
		if dx*dx+dy*dy <= DoubleClickDistance*DoubleClickDistance {
			double = true
		}
	}

	if double {
		c.lastClick = time.Time{}
	} else {
		c.lastClick = now
	}
	c.lastPos = [2]int{x, y}
	return double
}
