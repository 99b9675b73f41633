package model

import (
	"fmt"
	"time"
)

// FPSCounter estimates the tick and render rates. Each rate is recomputed
// once at least a second has passed since its last update.
type FPSCounter struct {
	now func() time.Time

	tickStart  time.Time
	ticks      int
	tickRate   float64
	frameStart time.Time
	frames     int
	frameRate  float64
}

// NewFPSCounter creates a counter reading time from now, or the wall clock
// when now is nil
func NewFPSCounter(now func() time.Time) *FPSCounter {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &FPSCounter{
		now:        now,
		tickStart:  start,
		frameStart: start,
	}
}

// Tick records one tick
func (c *FPSCounter) Tick() {
	c.ticks++
	c.tickRate, c.ticks, c.tickStart = c.sample(c.ticks, c.tickStart, c.tickRate)
}

// Render records one rendered frame
func (c *FPSCounter) Render() {
	c.frames++
	c.frameRate, c.frames, c.frameStart = c.sample(c.frames, c.frameStart, c.frameRate)
}

func (c *FPSCounter) sample(count int, start time.Time, rate float64) (float64, int, time.Time) {
	now := c.now()
	elapsed := now.Sub(start).Seconds()
	if elapsed < 1 {
		return rate, count, start
	}
	return float64(count) / elapsed, 0, now
}

// TickRate returns the last measured ticks per second
func (c *FPSCounter) TickRate() float64 {
	return c.tickRate
}

// FrameRate returns the last measured frames per second
func (c *FPSCounter) FrameRate() float64 {
	return c.frameRate
}

// String formats the rates for the status box
func (c *FPSCounter) String() string {
	return fmt.Sprintf("%.2ffps, %.2ftps", c.frameRate, c.tickRate)
}
