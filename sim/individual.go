package sim

// EvalResult caches the outcome of running one Individual's pair of
// programs through a simulation (spec §4.7): the raw distance and failure
// count plus the derived fitness, so an unchanged Individual never needs
// re-simulating within a generation.
type EvalResult struct {
	TotalDistance float64
	NumFailed     int
	Fitness       float32
}

// Individual is one candidate solution: a routing rule and a sequencing
// rule, evolved together (spec §3). Result is nil until evaluated.
type Individual struct {
	Routing    *Program
	Sequencing *Program
	Result     *EvalResult
}

// NewIndividual pairs a routing and sequencing program into an
// unevaluated Individual.
func NewIndividual(routing, sequencing *Program) *Individual {
	return &Individual{Routing: routing, Sequencing: sequencing}
}

// Clone returns an independent Individual with cloned programs and a
// fresh (nil) Result — mutation/crossover products are always unevaluated.
func (ind *Individual) Clone() *Individual {
	return &Individual{Routing: ind.Routing.Clone(), Sequencing: ind.Sequencing.Clone()}
}

// CacheKey concatenates both programs' pretty-printed forms, the fitness
// cache key of spec §4.7 ("two programs with identical printed forms are
// the same individual for caching purposes").
func (ind *Individual) CacheKey() string {
	return ind.Routing.Pretty(&RoutingContext{}) + "|" + ind.Sequencing.Pretty(&SequencingContext{})
}
