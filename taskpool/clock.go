package taskpool

import "time"

// clock seams, grounded on catrate's timeNow/timeNewTicker test-seam pattern:
// tests may substitute these to control timing without a fake-clock
// dependency.
var (
	timeNow      = time.Now
	timeNewTimer = time.NewTimer
)
