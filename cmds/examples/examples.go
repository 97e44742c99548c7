package examples

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-dlog/bench"
)

// Register the worked examples command
func Register(rootCmd *cobra.Command) {
	var rounds int
	var tolerance float64

	var cmd = &cobra.Command{
		Use:   "examples",
		Short: "Run the worked examples",
		Long:  "Solve the two textbook examples, check the answers and compare the timing with the cost model",
		Run: func(cmd *cobra.Command, args []string) {
			examples := bench.Examples()
			bar := bench.NewProgress(rounds * len(examples))
			bar.Start()
			results := make([]*bench.Result, len(examples))
			for i, ex := range examples {
				pr := ex.Problem
				log.Info().
					Str("example", ex.Name).
					Str("p", pr.P.String()).
					Str("base", pr.Base.String()).
					Str("arg", pr.Arg.String()).
					Str("q", pr.Q.String()).
					Int("n", pr.N).
					Msg("Example")
				r, err := ex.Check(rounds, bar)
				if err != nil {
					bar.Finish()
					log.Fatal().Err(err).Msg("Example failed")
				}
				log.Info().
					Str("example", ex.Name).
					Str("log", r.Solution.Log.String()).
					Dur("elapsed", r.Elapsed).
					Str("complexity", r.Complexity.String()).
					Msg("n^2 log2(q) + n sqrt(q)")
				results[i] = r
			}
			bar.Finish()

			alignment := bench.Alignment(results[0], results[1])
			if alignment > 1-tolerance && alignment < 1+tolerance {
				log.Info().Float64("alignment", alignment).Msg("Time is aligned with complexity")
			} else {
				log.Warn().Float64("alignment", alignment).Msg("Time is not aligned with complexity")
			}
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 1000, "Times to solve each example, the mean time is reported")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.25, "How far from 1 the time/complexity ratio may be")
	rootCmd.AddCommand(cmd)
}
