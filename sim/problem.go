// Defines the Problem type: an immutable depot + customer list plus fleet
// parameters, and the training-variant transformation used to build the
// problem instance fitness is actually measured against.

package sim

import "math"

// Problem is an immutable DVRPTW instance: a depot, an ordered list of
// customers, and fleet parameters. Nothing in the GP engine or simulator
// mutates a Problem once constructed — training_variant returns a new one.
type Problem struct {
	Depot     *Request
	Customers []*Request
	Speed     float64
	Capacity  float64
	NumTrucks int
}

// TotalDemand sums demand over all customers (excludes the depot, whose
// demand is always 0).
func (p *Problem) TotalDemand() float64 {
	var total float64
	for _, c := range p.Customers {
		total += c.Demand
	}
	return total
}

// distance is the Euclidean distance between two requests' positions.
func distance(a, b *Request) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TrainingVariant builds the "training" problem fitness is measured
// against (spec §6): every customer's geometry and service time is
// stretched by stressFactor, and any customer whose original arrival falls
// beyond timeLimit is projected onto a cyclic schedule built from templates
// drawn from the earliest customers that do fit within timeLimit.
//
// Templates are the customers with Arrival <= timeLimit, in file order;
// the cursor wraps to 0 (and turn increments) after the last template, so
// no template ever exceeds timeLimit. See DESIGN.md.
func (p *Problem) TrainingVariant(timeLimit, stressFactor float64) *Problem {
	templates := make([]*Request, 0, len(p.Customers))
	for _, c := range p.Customers {
		if c.Arrival <= timeLimit {
			templates = append(templates, c)
		}
	}

	out := make([]*Request, len(p.Customers))
	cursor := 0
	turn := 0
	for i, c := range p.Customers {
		nc := &Request{
			Idx:     c.Idx,
			X:       c.X * stressFactor,
			Y:       c.Y * stressFactor,
			Demand:  c.Demand,
			Service: c.Service * stressFactor,
			Open:    c.Open,
			Close:   c.Close,
			Arrival: c.Arrival,
		}

		if c.Arrival > timeLimit {
			mustf(len(templates) > 0, "training_variant: no customer fits within time_limit=%v to use as a template", timeLimit)

			t := templates[cursor]
			nc.Arrival = float64(turn)*timeLimit + (t.Arrival+1.5*t.Open)/2.5
			nc.Open = float64(turn)*timeLimit + t.Open
			nc.Close = float64(turn)*timeLimit + t.Close

			cursor++
			if cursor >= len(templates) || templates[cursor].Arrival > timeLimit {
				cursor = 0
				turn++
			}
		}

		out[i] = nc
	}

	return &Problem{
		Depot:     p.Depot,
		Customers: out,
		Speed:     p.Speed,
		Capacity:  p.Capacity,
		NumTrucks: p.NumTrucks,
	}
}
