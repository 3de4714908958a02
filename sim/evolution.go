// Evolution is the generational GP driver (spec §4.7): build a
// ramped-half-and-half population, evaluate against the training problem
// with a printed-form fitness cache, truncate, and breed the next
// generation by tournament selection with crossover/mutation/reproduction.

package sim

import (
	"io"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

const tournamentSize = 8

// Evolution holds everything one evolutionary run needs: the training
// problem it measures fitness against, the simulation timing derived from
// it, the shared GP engine, and the cross-generation fitness cache.
type Evolution struct {
	Config  *EvolutionConfig
	Problem *Problem
	Delta   float64
	TimeMax float64

	RNG    *rand.Rand
	Engine *GPEngine

	cache map[string]*EvalResult
	log   *logrus.Entry
}

// NewEvolution derives the training problem (spec §6) from problem and
// cfg, wires a GPEngine off the "gp" RNG subsystem, and returns a ready
// driver. log may be nil, in which case a disabled entry is used.
func NewEvolution(cfg *EvolutionConfig, problem *Problem, key SimulationKey, log *logrus.Entry) *Evolution {
	delta := problem.Depot.Close / cfg.NumTimeSlot
	trainTimeLimit := cfg.TrainFactor * delta
	trainingProblem := problem.TrainingVariant(trainTimeLimit, cfg.StressFactor)

	rng := NewPartitionedRNG(key).ForSubsystem(SubsystemGP)
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	return &Evolution{
		Config:  cfg,
		Problem: trainingProblem,
		Delta:   delta,
		TimeMax: problem.Depot.Close,
		RNG:     rng,
		Engine:  &GPEngine{RNG: rng, MaxDepth: cfg.MaxDepth, ConstRate: cfg.ConstRate},
		cache:   make(map[string]*EvalResult),
		log:     log,
	}
}

// Run executes NUM_GEN generations and returns the final, fitness-sorted
// population truncated to POP_SIZE (spec §4.7 step 3, "emit the surviving
// population").
func (e *Evolution) Run() []*Individual {
	population := e.initialPopulation()

	for g := 1; g <= e.Config.NumGen; g++ {
		e.evaluateAll(population)
		sortByFitness(population)
		population = e.truncate(population)

		best := population[0].Result
		e.log.WithFields(logrus.Fields{
			"generation":     g,
			"best_fitness":   best.Fitness,
			"best_distance":  best.TotalDistance,
			"best_num_fails": best.NumFailed,
		}).Info("generation complete")

		population = e.nextGeneration(population)
	}

	e.evaluateAll(population)
	sortByFitness(population)
	return e.truncate(population)
}

func (e *Evolution) truncate(population []*Individual) []*Individual {
	if len(population) > e.Config.PopSize {
		return population[:e.Config.PopSize]
	}
	return population
}

func sortByFitness(population []*Individual) {
	sort.Slice(population, func(i, j int) bool {
		return population[i].Result.Fitness < population[j].Result.Fitness
	})
}

// initialPopulation builds POP_SIZE individuals, each pairing one
// independently ramped-half-and-half routing program with one
// independently ramped-half-and-half sequencing program (spec §4.7 step 1).
func (e *Evolution) initialPopulation() []*Individual {
	routing := e.Engine.RampedHalfAndHalf(e.Config.PopSize, &RoutingContext{})
	sequencing := e.Engine.RampedHalfAndHalf(e.Config.PopSize, &SequencingContext{})

	population := make([]*Individual, e.Config.PopSize)
	for i := range population {
		population[i] = NewIndividual(routing[i], sequencing[i])
	}
	return population
}

// evaluateAll simulates every individual whose cache is empty (spec §4.7
// step 2a), consulting and populating the printed-form fitness cache
// first.
func (e *Evolution) evaluateAll(population []*Individual) {
	for _, ind := range population {
		if ind.Result != nil {
			continue
		}
		key := ind.CacheKey()
		if cached, ok := e.cache[key]; ok {
			ind.Result = cached
			continue
		}
		Evaluate(ind, e.Problem, e.Delta, e.TimeMax, e.Config.Weight)
		e.cache[key] = ind.Result
	}
}

// nextGeneration breeds exactly POP_SIZE offspring in pairs via tournament
// selection, crossover, mutation, or straight reproduction (spec §4.7
// step 2c).
func (e *Evolution) nextGeneration(population []*Individual) []*Individual {
	offspring := make([]*Individual, 0, e.Config.PopSize+1)
	for len(offspring) < e.Config.PopSize {
		p1 := e.tournamentSelect(population)
		p2 := e.tournamentSelect(population)
		u := e.RNG.Float64()

		switch {
		case u <= e.Config.CrossoverRate:
			c1r, c2r := e.Engine.Crossover(p1.Routing, p2.Routing, &RoutingContext{})
			c1s, c2s := e.Engine.Crossover(p1.Sequencing, p2.Sequencing, &SequencingContext{})
			offspring = append(offspring, NewIndividual(c1r, c1s), NewIndividual(c2r, c2s))
		case u <= e.Config.CrossoverRate+e.Config.MutationRate:
			offspring = append(offspring,
				NewIndividual(e.Engine.Mutation(p1.Routing, &RoutingContext{}), e.Engine.Mutation(p1.Sequencing, &SequencingContext{})),
				NewIndividual(e.Engine.Mutation(p2.Routing, &RoutingContext{}), e.Engine.Mutation(p2.Sequencing, &SequencingContext{})),
			)
		default:
			offspring = append(offspring, p1.Clone(), p2.Clone())
		}
	}
	if len(offspring) > e.Config.PopSize {
		offspring = offspring[:e.Config.PopSize]
	}
	return offspring
}

// tournamentSelect samples tournamentSize distinct indices uniformly
// without replacement and returns the best-fitness individual among them
// (spec §4.7 step 2c).
func (e *Evolution) tournamentSelect(population []*Individual) *Individual {
	k := tournamentSize
	if k > len(population) {
		k = len(population)
	}
	perm := e.RNG.Perm(len(population))[:k]

	best := population[perm[0]]
	for _, idx := range perm[1:] {
		if population[idx].Result.Fitness < best.Result.Fitness {
			best = population[idx]
		}
	}
	return best
}
