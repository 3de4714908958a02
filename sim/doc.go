// Package sim provides the core discrete-event simulation and genetic
// programming engine for the DVRPTW heuristic evolver.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go, problem.go: domain model — customers, depot, training transformation
//   - event.go, simulator.go: the event loop and dispatch logic
//   - vehicle.go: per-truck state, route/drop logs
//
// Then the evolved-rule machinery:
//   - program.go: the byte-encoded expression tree and its codec
//   - program_context.go, routing_context.go, sequencing_context.go: terminal/internal vocabularies
//   - gp.go: tree generation, mutation, crossover
//   - individual.go, fitness.go, evolution.go: the generational driver
//
// rng.go carries the deterministic partitioned RNG scheme; config.go holds
// the evolution run's tunables and their validation.
package sim
