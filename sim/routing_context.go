package sim

// RoutingContext is the ProgramContext a routing-rule Program evaluates
// against when deciding which vehicle should take request Request at time
// Time (spec §4.5, §4.6).
type RoutingContext struct {
	Vehicle *VehicleState
	Problem *Problem
	Time    float64
	Request *Request
}

var routingTerminalNames = [5]string{
	"queue_fraction",
	"capacity_slack_fraction",
	"median_distance_fraction",
	"raw_time_fraction",
	"demand_fraction",
}

func (c *RoutingContext) NumTerminals() int { return 5 }
func (c *RoutingContext) NumInternals() int { return numSharedInternals }
func (c *RoutingContext) ArityOf(internalIndex int) int { return sharedArityOf(internalIndex) }
func (c *RoutingContext) InternalApply(index int, children []float32) float32 {
	return applySharedInternal(index, children)
}
func (c *RoutingContext) InternalName(index int) string { return sharedInternalName(index) }

func (c *RoutingContext) TerminalName(index int) string {
	if index < 0 || index >= len(routingTerminalNames) {
		return "?"
	}
	return routingTerminalNames[index]
}

// TerminalValue implements the five routing terminals of spec §4.6.
func (c *RoutingContext) TerminalValue(index int) float32 {
	totalDemand := c.Problem.TotalDemand()
	switch index {
	case 0:
		return float32(float64(len(c.Vehicle.Queue)) / float64(len(c.Problem.Customers)))
	case 1:
		return float32((c.Problem.Capacity - c.Vehicle.QueuedDemand()) / totalDemand)
	case 2:
		mx, my := c.Vehicle.MedianQueuePosition()
		median := &Request{X: mx, Y: my}
		d := distance(median, c.Request)
		return float32(d / c.Problem.Speed / c.Problem.Depot.Close)
	case 3:
		return float32(rawTimeCost(c.Vehicle, c.Request, c.Problem.Speed) / c.Problem.Depot.Close)
	case 4:
		return float32(c.Request.Demand / totalDemand)
	default:
		mustf(false, "routing context: unknown terminal index %d", index)
		return 0
	}
}
