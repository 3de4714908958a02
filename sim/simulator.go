// Simulation is the one-shot discrete-event dispatch engine (spec §4.4,
// §4.5): a min-heap of request-arrival and vehicle-completion events, a
// vehicle fleet, and the routing/sequencing rules evaluated at every
// decision point. Constructed, run once, read for results.

package sim

import (
	"container/heap"
	"math"
)

// Simulation owns the Problem, both rule Programs, the clock, the vehicle
// fleet, and the pending-event heap. One-shot: Run() drives it to
// termination and returns the result.
type Simulation struct {
	Problem    *Problem
	Routing    *Program
	Sequencing *Program

	Clock   float64
	TimeMax float64

	Vehicles []*VehicleState
	events   eventQueue

	TotalDistance float64
	NumFailed     int
}

// NewSimulation buckets customers into time-slot events of width delta and
// builds a fresh vehicle fleet at the depot (spec §4.4 pre-loop).
func NewSimulation(problem *Problem, routing, sequencing *Program, delta, timeMax float64) *Simulation {
	s := &Simulation{
		Problem:    problem,
		Routing:    routing,
		Sequencing: sequencing,
		TimeMax:    timeMax,
		Vehicles:   make([]*VehicleState, problem.NumTrucks),
	}
	for i := range s.Vehicles {
		s.Vehicles[i] = NewVehicleState(i, problem.Depot, problem.Capacity)
	}

	heap.Init(&s.events)
	buckets := make(map[int][]*Request)
	var order []int
	for _, c := range problem.Customers {
		idx := int(math.Ceil(c.Arrival / delta))
		if _, ok := buckets[idx]; !ok {
			order = append(order, idx)
		}
		buckets[idx] = append(buckets[idx], c)
	}
	for _, idx := range order {
		heap.Push(&s.events, &requestsEvent{requests: buckets[idx], time: float64(idx) * delta})
	}

	return s
}

// Run drives the event loop to termination (heap empty or event time past
// TimeMax), sends every vehicle back to the depot, and returns the total
// distance traveled and the number of requests that could never be routed.
func (s *Simulation) Run() (totalDistance float64, numFailed int) {
	for s.events.Len() > 0 {
		ev := heap.Pop(&s.events).(Event)
		if ev.Time() > s.TimeMax {
			break
		}
		s.Clock = ev.Time()

		switch e := ev.(type) {
		case *requestsEvent:
			for _, r := range e.requests {
				s.routeRequest(r)
			}
		case *vehicleFinishEvent:
			// No action beyond advancing the clock: BusyUntil already
			// reflects completion.
			_ = e
		}

		for _, v := range s.Vehicles {
			s.serviceQueue(v)
		}
	}

	for _, v := range s.Vehicles {
		s.routeVehicleTo(v, s.Problem.Depot)
	}

	return s.TotalDistance, s.NumFailed
}

// routeRequest runs the routing decision for r at the current clock (spec
// §4.5): restrict to vehicles that could still make the window even in
// free space, then pick the minimum-scoring candidate. No candidate means
// the request is counted as failed.
func (s *Simulation) routeRequest(r *Request) {
	var candidates []*VehicleState
	for _, v := range s.Vehicles {
		if s.Clock+rawTimeCost(v, r, s.Problem.Speed) <= r.Close {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		s.NumFailed++
		return
	}

	best := candidates[0]
	bestScore := s.routingScore(best, r)
	for _, v := range candidates[1:] {
		score := s.routingScore(v, r)
		if score < bestScore {
			bestScore = score
			best = v
		}
	}
	best.Enqueue(r, s.Clock)
}

func (s *Simulation) routingScore(v *VehicleState, r *Request) float32 {
	ctx := &RoutingContext{Vehicle: v, Problem: s.Problem, Time: s.Clock, Request: r}
	return s.Routing.Evaluate(ctx)
}

// serviceQueue drains v's queue while it is free and non-empty (spec
// §4.5): pick the minimum-scoring queued request; if it would overflow
// capacity, divert to the depot and stop; otherwise dispatch it, or give
// it a second chance through routing if it can no longer make its window.
func (s *Simulation) serviceQueue(v *VehicleState) {
	for v.BusyUntil <= s.Clock && len(v.Queue) > 0 {
		idx := s.pickSequencingIndex(v)
		entry := v.Queue[idx]

		if entry.Req.Demand > v.Capacity {
			v.DropLog = append(v.DropLog, DropEntry{Time: s.Clock, ReqIdx: entry.Req.Idx})
			s.routeVehicleTo(v, s.Problem.Depot)
			return
		}

		v.RemoveQueueIndex(idx)
		startTime := s.Clock + timeCost(v, entry.Req, s.Clock, s.Problem.Speed)
		if startTime > entry.Req.Close {
			s.routeRequest(entry.Req)
			continue
		}
		s.routeVehicleTo(v, entry.Req)
	}
}

func (s *Simulation) pickSequencingIndex(v *VehicleState) int {
	best := 0
	bestScore := s.sequencingScore(v, v.Queue[0])
	for i := 1; i < len(v.Queue); i++ {
		score := s.sequencingScore(v, v.Queue[i])
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func (s *Simulation) sequencingScore(v *VehicleState, e QueueEntry) float32 {
	ctx := &SequencingContext{
		Vehicle:   v,
		Problem:   s.Problem,
		Time:      s.Clock,
		Request:   e.Req,
		ReadyTime: e.EnqueueTime,
	}
	return s.Sequencing.Evaluate(ctx)
}

// routeVehicleTo dispatches v to r: accumulates distance, schedules the
// completion event, updates position/capacity/busy-until, and appends the
// route log entry (spec §4.5 "Dispatch").
func (s *Simulation) routeVehicleTo(v *VehicleState, r *Request) {
	d := distance(v.Position, r)
	s.TotalDistance += d

	finish := math.Max(s.Clock+d/s.Problem.Speed, r.Open) + r.Service
	heap.Push(&s.events, &vehicleFinishEvent{vehicle: v.ID, request: r, time: finish})

	v.Position = r
	v.BusyUntil = finish
	v.RouteLog = append(v.RouteLog, RouteEntry{StartTime: s.Clock, ReqIdx: r.Idx})

	if r.IsDepot() {
		v.ResetCapacity()
	} else {
		v.Capacity -= r.Demand
	}
}

// distanceTo is the Euclidean distance from v's current position to r.
func distanceTo(v *VehicleState, r *Request) float64 {
	return distance(v.Position, r)
}

// timeCost is travel time floored by waiting for the window to open.
func timeCost(v *VehicleState, r *Request, t, speed float64) float64 {
	return math.Max(distanceTo(v, r)/speed, r.Open-t)
}

// rawTimeCost is travel time alone, ignoring any wait for the window.
func rawTimeCost(v *VehicleState, r *Request, speed float64) float64 {
	return distanceTo(v, r) / speed
}
