// Package metrics keeps in-process counters for outgoing calls.
package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Add(n uint64) {
	c.value.Add(n)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Calls tracks one kind of outgoing call. The zero value is ready to use.
type Calls struct {
	total   Counter
	failed  Counter
	elapsed atomic.Int64
}

type CallStats struct {
	Total      uint64
	Failed     uint64
	AvgLatency time.Duration
}

// Observe records a finished call.
func (c *Calls) Observe(d time.Duration, err error) {
	c.total.Inc()
	if err != nil {
		c.failed.Inc()
	}
	c.elapsed.Add(int64(d))
}

func (c *Calls) Snapshot() CallStats {
	s := CallStats{
		Total:  c.total.Load(),
		Failed: c.failed.Load(),
	}
	if s.Total > 0 {
		s.AvgLatency = time.Duration(c.elapsed.Load() / int64(s.Total))
	}
	return s
}
