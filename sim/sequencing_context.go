package sim

// SequencingContext is the ProgramContext a sequencing-rule Program
// evaluates against when an idle vehicle chooses which queued request to
// serve next (spec §4.5, §4.6). ReadyTime is the request's enqueue time.
type SequencingContext struct {
	Vehicle   *VehicleState
	Problem   *Problem
	Time      float64
	Request   *Request
	ReadyTime float64
}

var sequencingTerminalNames = [6]string{
	"raw_time_fraction",
	"queue_wait_fraction",
	"slack_ratio",
	"demand_fraction",
	"open_wait_fraction",
	"arrival_fraction",
}

func (c *SequencingContext) NumTerminals() int          { return 6 }
func (c *SequencingContext) NumInternals() int          { return numSharedInternals }
func (c *SequencingContext) ArityOf(internalIndex int) int { return sharedArityOf(internalIndex) }
func (c *SequencingContext) InternalApply(index int, children []float32) float32 {
	return applySharedInternal(index, children)
}
func (c *SequencingContext) InternalName(index int) string { return sharedInternalName(index) }

func (c *SequencingContext) TerminalName(index int) string {
	if index < 0 || index >= len(sequencingTerminalNames) {
		return "?"
	}
	return sequencingTerminalNames[index]
}

// TerminalValue implements the six sequencing terminals of spec §4.6.
func (c *SequencingContext) TerminalValue(index int) float32 {
	depotClose := c.Problem.Depot.Close
	switch index {
	case 0:
		return float32(rawTimeCost(c.Vehicle, c.Request, c.Problem.Speed) / depotClose)
	case 1:
		return float32((c.Time - c.ReadyTime) / depotClose)
	case 2:
		raw := rawTimeCost(c.Vehicle, c.Request, c.Problem.Speed)
		slack := c.Request.Close - c.Vehicle.BusyUntil
		return protectedDiv(float32(slack-raw), float32(slack))
	case 3:
		return float32(c.Request.Demand / c.Problem.TotalDemand())
	case 4:
		return float32((c.Time - c.Request.Open) / depotClose)
	case 5:
		return float32(c.Request.Arrival / depotClose)
	default:
		mustf(false, "sequencing context: unknown terminal index %d", index)
		return 0
	}
}
