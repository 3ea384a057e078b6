// Package metrics holds in-process counters reported by the health endpoint.
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

type Registry struct {
	OrdersPlaced Counter
	Requests     Counter
	startedAt    time.Time
}

func NewRegistry() *Registry {
	return &Registry{startedAt: time.Now()}
}

type Snapshot struct {
	OrdersPlaced uint64 `json:"ordersPlaced"`
	Requests     uint64 `json:"requests"`
	Uptime       string `json:"uptime"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		OrdersPlaced: r.OrdersPlaced.Load(),
		Requests:     r.Requests.Load(),
		Uptime:       time.Since(r.startedAt).Truncate(time.Second).String(),
	}
}
