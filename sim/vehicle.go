// VehicleState is the per-truck runtime state the simulator mutates:
// position, queue, remaining capacity, busy-until clock, and the
// append-only route/drop logs (spec §3).

package sim

import "sort"

// QueueEntry pairs a queued Request with the time it was enqueued —
// needed by the sequencing rule's "queue wait" terminal (spec §4.6).
type QueueEntry struct {
	Req        *Request
	EnqueueTime float64
}

// RouteEntry records one dispatch: when the vehicle started traveling to
// ReqIdx. Append-only, keyed by StartTime.
type RouteEntry struct {
	StartTime float64
	ReqIdx    int
}

// DropEntry records one capacity-triggered abandonment: the vehicle broke
// off queue service and returned to the depot to refill rather than serve
// ReqIdx, which remains queued. Append-only, keyed by Time.
type DropEntry struct {
	Time   float64
	ReqIdx int
}

// VehicleState is one truck's runtime state. Created pointing at the depot
// with full capacity; mutated by Enqueue and by the simulator's dispatch;
// never destroyed until the simulation ends.
type VehicleState struct {
	ID          int
	Position    *Request // last request served (or the depot, initially)
	Queue       []QueueEntry
	Capacity    float64 // remaining cargo capacity
	MaxCapacity float64
	BusyUntil   float64
	RouteLog    []RouteEntry
	DropLog     []DropEntry
}

// NewVehicleState creates a vehicle at the depot with full capacity.
func NewVehicleState(id int, depot *Request, capacity float64) *VehicleState {
	return &VehicleState{
		ID:          id,
		Position:    depot,
		Capacity:    capacity,
		MaxCapacity: capacity,
	}
}

// Enqueue adds r to the vehicle's wait queue at time t.
func (v *VehicleState) Enqueue(r *Request, t float64) {
	v.Queue = append(v.Queue, QueueEntry{Req: r, EnqueueTime: t})
}

// RemoveQueueIndex removes and returns the queue entry at i.
func (v *VehicleState) RemoveQueueIndex(i int) QueueEntry {
	e := v.Queue[i]
	v.Queue = append(v.Queue[:i], v.Queue[i+1:]...)
	return e
}

// QueuedDemand sums demand over everything currently queued.
func (v *VehicleState) QueuedDemand() float64 {
	var total float64
	for _, e := range v.Queue {
		total += e.Req.Demand
	}
	return total
}

// ResetCapacity restores full cargo capacity (called on depot visits).
func (v *VehicleState) ResetCapacity() {
	v.Capacity = v.MaxCapacity
}

// MedianQueuePosition returns the per-coordinate median of queued
// requests' (x, y) — 0 for an empty queue, the middle element for an odd
// count, the mean of the two middles for an even count (spec §4.6).
func (v *VehicleState) MedianQueuePosition() (float64, float64) {
	xs := make([]float64, len(v.Queue))
	ys := make([]float64, len(v.Queue))
	for i, e := range v.Queue {
		xs[i] = e.Req.X
		ys[i] = e.Req.Y
	}
	return median(xs), median(ys)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
