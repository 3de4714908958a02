// Event types driving the discrete-event simulator (spec §4.4), and the
// min-heap that orders them — the same container/heap.Interface shape the
// teacher's sim.EventQueue / cluster.EventHeap use.

package sim

// Event is anything the simulator's event heap can order and pop.
type Event interface {
	Time() float64
}

// requestsEvent carries a batch of customers visible from time onward —
// one per populated time-slot bucket (spec §4.4 pre-loop).
type requestsEvent struct {
	requests []*Request
	time     float64
}

func (e *requestsEvent) Time() float64 { return e.time }

// vehicleFinishEvent marks a truck completing service of a request.
// Processing it is a no-op beyond advancing the clock — the vehicle's
// BusyUntil already reflects completion (spec §4.4).
type vehicleFinishEvent struct {
	vehicle int
	request *Request
	time    float64
}

func (e *vehicleFinishEvent) Time() float64 { return e.time }

// eventQueue implements heap.Interface, ordering events by time. Ties are
// broken arbitrarily (spec §5) — no secondary key.
type eventQueue []Event

func (eq eventQueue) Len() int            { return len(eq) }
func (eq eventQueue) Less(i, j int) bool  { return eq[i].Time() < eq[j].Time() }
func (eq eventQueue) Swap(i, j int)       { eq[i], eq[j] = eq[j], eq[i] }
func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}
func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[:n-1]
	return item
}
