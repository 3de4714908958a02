package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingContext_TerminalValues(t *testing.T) {
	depot := &Request{Idx: 0, X: 0, Y: 0, Close: 100}
	customers := []*Request{{Demand: 4}, {Demand: 6}}
	problem := &Problem{Depot: depot, Customers: customers, Speed: 2, Capacity: 10, NumTrucks: 1}

	v := NewVehicleState(0, depot, 10)
	v.Enqueue(customers[0], 0)
	req := &Request{X: 6, Y: 0, Demand: 4}

	ctx := &RoutingContext{Vehicle: v, Problem: problem, Time: 0, Request: req}

	assert.InDelta(t, float32(0.5), ctx.TerminalValue(0), 1e-9) // 1 queued / 2 customers
	assert.InDelta(t, float32(0.6), ctx.TerminalValue(1), 1e-9) // (10 - 4) / 10 total demand
	assert.InDelta(t, float32(0.4), ctx.TerminalValue(4), 1e-9) // 4 / 10 total demand
}

func TestRoutingContext_NumTerminalsAndInternals(t *testing.T) {
	ctx := &RoutingContext{}
	assert.Equal(t, 5, ctx.NumTerminals())
	assert.Equal(t, numSharedInternals, ctx.NumInternals())
	assert.Equal(t, 2, ctx.ArityOf(0))
}

func TestProtectedDiv_GuardsNearZeroDivisor(t *testing.T) {
	assert.Equal(t, float32(1), protectedDiv(5, 0))
	assert.Equal(t, float32(1), protectedDiv(5, 0.00001))
	assert.InDelta(t, float32(2.5), protectedDiv(5, 2), 1e-6)
}
