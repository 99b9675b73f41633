package tui

import "time"

// timers is the tick/render clock pair driving a poller
type timers struct {
	tick   *time.Ticker
	render *time.Ticker
}

func newTimers(tickRate, frameRate float64) *timers {
	return &timers{
		tick:   time.NewTicker(period(tickRate)),
		render: time.NewTicker(period(frameRate)),
	}
}

func (t *timers) stop() {
	t.tick.Stop()
	t.render.Stop()
}

// period converts a frequency in Hz into a ticker interval
func period(hz float64) time.Duration {
	if hz <= 0 {
		return time.Second
	}
	d := time.Duration(float64(time.Second) / hz)
	if d <= 0 {
		// Absurdly high rates still need a positive interval
		d = time.Microsecond
	}
	return d
}
