package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(5)

	assert.Equal(t, uint64(55), c.Load())
}

func TestTimer_Duration(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.OrdersPlaced.Inc()
	r.Requests.Add(3)

	s := r.Snapshot()
	assert.Equal(t, uint64(1), s.OrdersPlaced)
	assert.Equal(t, uint64(3), s.Requests)
	assert.NotEmpty(t, s.Uptime)
}
