package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleState_EnqueueAndRemove(t *testing.T) {
	depot := &Request{Idx: 0}
	v := NewVehicleState(0, depot, 10)
	r1 := &Request{Idx: 1, Demand: 2}
	r2 := &Request{Idx: 2, Demand: 3}

	v.Enqueue(r1, 0)
	v.Enqueue(r2, 1)
	assert.Equal(t, 5.0, v.QueuedDemand())

	removed := v.RemoveQueueIndex(0)
	assert.Equal(t, r1, removed.Req)
	assert.Len(t, v.Queue, 1)
	assert.Equal(t, 3.0, v.QueuedDemand())
}

func TestVehicleState_ResetCapacity(t *testing.T) {
	v := NewVehicleState(0, &Request{Idx: 0}, 20)
	v.Capacity = 4
	v.ResetCapacity()
	assert.Equal(t, 20.0, v.Capacity)
}

func TestMedianQueuePosition(t *testing.T) {
	v := NewVehicleState(0, &Request{Idx: 0}, 10)

	x, y := v.MedianQueuePosition()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	v.Enqueue(&Request{X: 1, Y: 10}, 0)
	v.Enqueue(&Request{X: 3, Y: 30}, 0)
	v.Enqueue(&Request{X: 2, Y: 20}, 0)
	x, y = v.MedianQueuePosition()
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 20.0, y)

	v.Enqueue(&Request{X: 4, Y: 40}, 0)
	x, y = v.MedianQueuePosition()
	assert.Equal(t, 2.5, x)
	assert.Equal(t, 25.0, y)
}
