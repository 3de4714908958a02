package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroProgram is a single-node Program that always evaluates to 0 — used
// to make scoring deterministic (ties keep the first candidate) so these
// tests exercise dispatch mechanics rather than rule behavior.
func zeroProgram() *Program {
	p := NewProgram()
	p.set(0, encodeConstBucket(0))
	return p
}

func TestSimulation_NoCustomers_ZeroDistanceZeroFailures(t *testing.T) {
	depot := &Request{Idx: 0, X: 0, Y: 0, Open: 0, Close: 100}
	problem := &Problem{Depot: depot, Customers: nil, Speed: 1, Capacity: 10, NumTrucks: 2}

	routing := zeroProgram()
	sequencing := zeroProgram()
	s := NewSimulation(problem, routing, sequencing, 10, 100)

	dist, failed := s.Run()
	assert.Equal(t, 0.0, dist)
	assert.Equal(t, 0, failed)
}

func TestSimulation_SingleReachableCustomer_IsServed(t *testing.T) {
	depot := &Request{Idx: 0, X: 0, Y: 0, Open: 0, Close: 1000}
	customer := &Request{Idx: 1, X: 10, Y: 0, Demand: 1, Open: 0, Close: 1000, Service: 5, Arrival: 0}
	problem := &Problem{Depot: depot, Customers: []*Request{customer}, Speed: 1, Capacity: 10, NumTrucks: 1}

	routing := zeroProgram()
	sequencing := zeroProgram()
	s := NewSimulation(problem, routing, sequencing, 10, 1000)

	dist, failed := s.Run()
	require.Equal(t, 0, failed)
	// out to the customer (10) and back to depot (10).
	assert.Equal(t, 20.0, dist)
}

func TestSimulation_UnreachableWindow_CountsAsFailed(t *testing.T) {
	depot := &Request{Idx: 0, X: 0, Y: 0, Open: 0, Close: 1000}
	// Window closes before a truck at the depot could possibly arrive.
	customer := &Request{Idx: 1, X: 1000, Y: 0, Demand: 1, Open: 0, Close: 1, Service: 1, Arrival: 0}
	problem := &Problem{Depot: depot, Customers: []*Request{customer}, Speed: 1, Capacity: 10, NumTrucks: 1}

	routing := zeroProgram()
	sequencing := zeroProgram()
	s := NewSimulation(problem, routing, sequencing, 10, 1000)

	_, failed := s.Run()
	assert.Equal(t, 1, failed)
}

func TestSimulation_CapacityExhaustion_DivertsThenRecovers(t *testing.T) {
	depot := &Request{Idx: 0, X: 0, Y: 0, Open: 0, Close: 1000}
	first := &Request{Idx: 1, X: 5, Y: 0, Demand: 6, Open: 0, Close: 1000, Service: 1, Arrival: 0}
	second := &Request{Idx: 2, X: 8, Y: 0, Demand: 6, Open: 0, Close: 1000, Service: 1, Arrival: 0}
	problem := &Problem{Depot: depot, Customers: []*Request{first, second}, Speed: 1, Capacity: 10, NumTrucks: 1}

	routing := zeroProgram()
	sequencing := zeroProgram()
	s := NewSimulation(problem, routing, sequencing, 10, 1000)

	_, failed := s.Run()
	// Both customers fit within their windows; the second requires a
	// depot refill first (6 + 6 > 10 capacity) but is eventually served.
	assert.Equal(t, 0, failed)
	assert.NotEmpty(t, s.Vehicles[0].DropLog)
}
