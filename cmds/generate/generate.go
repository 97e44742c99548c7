package generate

import (
	"encoding/json"
	"os"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-dlog/bench"
	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// Register the generate and bench commands
func Register(rootCmd *cobra.Command) {
	var q int64
	var n, bits int
	var count, benchCount int

	shape := func(cmd *cobra.Command) {
		cmd.Flags().Int64Var(&q, "q", 3, "The subgroup order base q (prime)")
		cmd.Flags().IntVar(&n, "n", 4, "The subgroup order exponent n")
		cmd.Flags().IntVar(&bits, "bits", 64, "Size of the modulus p in bits")
	}

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate random problems",
		Long:  "Print random solvable problems, one JSON object per line. The answers are logged at debug level.",
		Run: func(cmd *cobra.Command, args []string) {
			enc := json.NewEncoder(os.Stdout)
			for i := 0; i < count; i++ {
				pr, secret, err := dlog.RandomProblem(big.NewInt(q), n, bits)
				if err != nil {
					log.Fatal().Err(err).Msg("Failed to generate problem")
				}
				log.Debug().Str("log", secret.String()).Msg("Generated")
				if err := enc.Encode(pr); err != nil {
					log.Fatal().Err(err).Msg("Failed to write output")
				}
			}
		},
	}
	shape(generateCmd)
	generateCmd.Flags().IntVar(&count, "count", 1, "How many problems to generate")
	rootCmd.AddCommand(generateCmd)

	var benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Solve random problems and check the answers",
		Run: func(cmd *cobra.Command, args []string) {
			log.Info().Int64("q", q).Int("n", n).Int("bits", bits).Int("count", benchCount).Msg("Benchmarking")
			bar := bench.NewProgress(benchCount)
			bar.Start()
			s, err := bench.Batch(big.NewInt(q), n, bits, benchCount, bar)
			bar.Finish()
			if err != nil {
				log.Fatal().Err(err).Msg("Benchmark failed")
			}
			log.Info().
				Int("count", s.Count).
				Int("failures", s.Failures).
				Dur("total", s.Total).
				Dur("mean", s.Mean).
				Str("complexity", bench.Complexity(big.NewInt(q), n).String()).
				Msg("Benchmark complete")
			if s.Failures > 0 {
				os.Exit(1)
			}
		},
	}
	shape(benchCmd)
	benchCmd.Flags().IntVar(&benchCount, "count", 100, "How many problems to solve")
	rootCmd.AddCommand(benchCmd)
}
