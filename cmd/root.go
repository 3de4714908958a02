// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/dvrptw-gp/evolver/sim"
)

var (
	instancePath string
	configPath   string
	truckSpeed   float64
	truckCap     float64
	numTrucks    int
	seed         int64
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "evolver",
	Short: "Genetic-programming heuristic evolver for dynamic capacitated VRPTW",
}

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Evolve routing and sequencing rules against an instance",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		problem, err := sim.LoadProblemCSV(instancePath, truckSpeed, truckCap, numTrucks)
		if err != nil {
			logrus.Fatalf("loading instance: %v", err)
		}

		cfg, err := loadEvolutionConfig(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		logrus.WithFields(logrus.Fields{
			"customers": len(problem.Customers),
			"trucks":    problem.NumTrucks,
			"pop_size":  cfg.PopSize,
			"num_gen":   cfg.NumGen,
		}).Info("starting evolution")

		key := sim.NewSimulationKey(seed)
		ev := sim.NewEvolution(cfg, problem, key, logrus.WithField("component", "evolution"))
		population := ev.Run()

		best := population[0]
		logrus.WithFields(logrus.Fields{
			"fitness":    best.Result.Fitness,
			"distance":   best.Result.TotalDistance,
			"num_failed": best.Result.NumFailed,
		}).Info("evolution complete")

		logrus.Infof("routing program:    %s", best.Routing.Serialize())
		logrus.Infof("sequencing program: %s", best.Sequencing.Serialize())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	evolveCmd.Flags().StringVar(&instancePath, "instance", "", "path to the instance CSV file")
	evolveCmd.Flags().StringVar(&configPath, "config", "", "path to an EvolutionConfig YAML file (defaults used if empty)")
	evolveCmd.Flags().Float64Var(&truckSpeed, "speed", 1.0, "truck speed")
	evolveCmd.Flags().Float64Var(&truckCap, "capacity", 200.0, "truck capacity")
	evolveCmd.Flags().IntVar(&numTrucks, "trucks", 25, "number of trucks")
	evolveCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed")
	evolveCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	_ = evolveCmd.MarkFlagRequired("instance")

	rootCmd.AddCommand(evolveCmd)
}
