package framework

// Before reports whether t is earlier than deadline on a wrapping
// millisecond clock. Valid while the two are less than 2^31 ms apart.
func Before(t, deadline uint32) bool {
	return int32(t-deadline) < 0
}

// WaitUntil spins until the clock reaches deadline and returns the
// reading which ended the wait. tick is called on every spin with the
// current reading. If the clock is also a Sleeper, each spin sleeps for
// at most interval ms and never past the deadline; otherwise it busy-waits.
func WaitUntil(clock Clock, deadline, interval uint32, tick func(now uint32)) uint32 {
	sleeper, _ := clock.(Sleeper)
	for {
		now := clock.Millis()
		if !Before(now, deadline) {
			return now
		}
		if tick != nil {
			tick(now)
		}
		if sleeper != nil {
			d := deadline - now
			if interval > 0 && interval < d {
				d = interval
			}
			sleeper.Sleep(d)
		}
	}
}
