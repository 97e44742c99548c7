package solve

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-dlog/bench"
	"github.com/thechriswalker/go-dlog/crypto"
	"github.com/thechriswalker/go-dlog/crypto/dlog"
	"github.com/thechriswalker/go-dlog/protocol"
	"github.com/thechriswalker/go-dlog/store"
)

func mustBigInt(name, s string) *big.Int {
	x, err := crypto.BigIntFromJSON(s)
	if err != nil {
		log.Fatal().Err(err).Str("flag", name).Msg("Invalid integer")
	}
	return x
}

// openCache returns nil when no cache file was asked for
func openCache(path string) *store.SQLiteStorage {
	if path == "" {
		return nil
	}
	cache, err := store.NewSQLiteStorage(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to open solution cache")
	}
	return cache
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
}

func loadProblem(path string) *dlog.Problem {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to open problem file")
	}
	defer f.Close()
	pr := &dlog.Problem{}
	if err := json.NewDecoder(f).Decode(pr); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to parse problem. Not valid JSON?")
	}
	return pr
}

// Register the solve, bsgs and history commands
func Register(rootCmd *cobra.Command) {
	var p, base, arg, q string
	var n int
	var problemFile string
	var cacheFile string
	var remote string

	var solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a discrete log with Pohlig-Hellman",
		Long:  "Find x with base^x = arg (mod p) where the order of base is q^n",
		Run: func(cmd *cobra.Command, args []string) {
			var pr *dlog.Problem
			if problemFile != "" {
				pr = loadProblem(problemFile)
			} else {
				pr = &dlog.Problem{
					P:    mustBigInt("p", p),
					Base: mustBigInt("base", base),
					Arg:  mustBigInt("arg", arg),
					Q:    mustBigInt("q", q),
					N:    n,
				}
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			if remote != "" {
				c, err := protocol.Dial(ctx, remote)
				if err != nil {
					log.Fatal().Err(err).Str("remote", remote).Msg("Failed to connect to solver")
				}
				defer c.Close()
				sol, err := c.DiscreteLog(ctx, pr)
				if err != nil {
					log.Fatal().Err(err).Msg("Remote solve failed")
				}
				printJSON(sol)
				return
			}

			cache := openCache(cacheFile)
			if cache != nil {
				defer cache.Close()
			}
			e, err := cache.Solve(ctx, pr)
			if err != nil {
				log.Fatal().Err(err).Str("problem", pr.String()).Msg("Failed to solve")
			}
			log.Info().
				Str("log", e.Solution.Log.String()).
				Dur("elapsed", e.Elapsed).
				Str("complexity", bench.Complexity(pr.Q, pr.N).String()).
				Msg("Discrete logarithm")
			printJSON(e.Solution)
		},
	}
	solveCmd.Flags().StringVar(&p, "p", "", "The modulus p")
	solveCmd.Flags().StringVar(&base, "base", "", "The logarithm base a, of order q^n")
	solveCmd.Flags().StringVar(&arg, "arg", "", "The logarithm argument b")
	solveCmd.Flags().StringVar(&q, "q", "", "The subgroup order base q (prime)")
	solveCmd.Flags().IntVar(&n, "n", 2, "The subgroup order exponent n (> 1)")
	solveCmd.Flags().StringVar(&problemFile, "problem", "", "Read the problem from a JSON file instead of flags")
	solveCmd.Flags().StringVar(&cacheFile, "cache", "", "SQLite file to cache solutions in (disabled if empty)")
	solveCmd.Flags().StringVar(&remote, "remote", "", "Address of a solver server to use instead of solving locally")
	rootCmd.AddCommand(solveCmd)

	var modulus, alpha, beta, order string
	var bsgsCmd = &cobra.Command{
		Use:   "bsgs",
		Short: "Solve a discrete log with baby-step giant-step",
		Run: func(cmd *cobra.Command, args []string) {
			m := mustBigInt("modulus", modulus)
			bound := m
			if order != "" {
				bound = mustBigInt("order", order)
			}
			x, err := dlog.BabyStepGiantStepWithOrder(m, bound, mustBigInt("alpha", alpha), mustBigInt("beta", beta))
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to solve")
			}
			printJSON(map[string]string{"log": crypto.BigIntToJSON(x)})
		},
	}
	bsgsCmd.Flags().StringVar(&modulus, "modulus", "", "The modulus")
	bsgsCmd.Flags().StringVar(&alpha, "alpha", "", "The logarithm base")
	bsgsCmd.Flags().StringVar(&beta, "beta", "", "The logarithm argument")
	bsgsCmd.Flags().StringVar(&order, "order", "", "Known order of alpha, bounds the search (defaults to the modulus)")
	rootCmd.AddCommand(bsgsCmd)

	var limit int
	var historyFile string
	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List cached solutions",
		Run: func(cmd *cobra.Command, args []string) {
			if historyFile == "" {
				log.Fatal().Msg("No cache file given")
			}
			cache := openCache(historyFile)
			defer cache.Close()
			entries, err := cache.List(context.Background(), limit)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to list solutions")
			}
			for _, e := range entries {
				log.Info().
					Str("problem", e.Solution.Problem.String()).
					Str("log", e.Solution.Log.String()).
					Dur("elapsed", e.Elapsed).
					Time("solved", e.SolvedAt).
					Msg("Cached")
			}
		},
	}
	historyCmd.Flags().StringVar(&historyFile, "cache", "dlog-cache.db", "SQLite file holding cached solutions")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of solutions to list")
	rootCmd.AddCommand(historyCmd)
}
