package main

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-dlog/cmds/examples"
	"github.com/thechriswalker/go-dlog/cmds/generate"
	"github.com/thechriswalker/go-dlog/cmds/server"
	"github.com/thechriswalker/go-dlog/cmds/solve"
)

// These variables will be linked in at build time
var (
	BuildDate string
	Commit    string
	Version   = "dev"
)

func preamble(cmd *cobra.Command, args []string) {
	commit := Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}
	log.Debug().
		Str("version", Version).
		Str("commit", commit).
		Str("built", BuildDate).
		Str("arch", runtime.GOARCH).
		Str("os", runtime.GOOS).
		Msg("Build Info")
}

const timeFormatMs = "2006-01-02T15:04:05.000Z07:00"
const timeFormatLocal = "2006-01-02 15:04:05.000"

func main() {
	// configure the logger.
	// remember pretty logs are only good on the console, and stdout is
	// for results, so logs go to stderr.
	zerolog.TimeFieldFormat = timeFormatMs
	log.Logger = log.Output(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = os.Stderr
		cw.TimeFormat = timeFormatLocal
		cw.NoColor = true
	}))

	var rootCmd = &cobra.Command{
		Use:              "dlog",
		Short:            "Discrete logarithms in groups of prime power order",
		Version:          Version,
		PersistentPreRun: preamble,
	}

	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// commands:
	//
	// - solve/bsgs: solve a single problem, locally or on a server
	// - history: what is in the solution cache
	// - examples: the textbook examples, with timing against the cost model
	// - generate/bench: random problems
	// - serve: the grpc solver
	solve.Register(rootCmd)
	examples.Register(rootCmd)
	generate.Register(rootCmd)
	server.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("An Error Occured")
		os.Exit(1)
	}
}
