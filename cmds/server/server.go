package server

import (
	"context"
	"net"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-dlog/protocol"
	"github.com/thechriswalker/go-dlog/store"
)

// Register the serve command
func Register(rootCmd *cobra.Command) {
	var listenAddr string
	var cacheFile string
	var maxOrderBits int

	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Run a solver server",
		Long:  "Serve DiscreteLog and BabyStepGiantStep over grpc",
		Run: func(cmd *cobra.Command, args []string) {
			// serve returns so its deferred closes run before we exit
			if err := serve(listenAddr, cacheFile, maxOrderBits); err != nil {
				log.Fatal().Err(err).Msg("Solver server failed")
			}
			log.Info().Msg("Solver server stopped")
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "localhost:7420", "The address to listen on (port :0 lets the OS choose)")
	cmd.Flags().StringVar(&cacheFile, "cache", "", "SQLite file to cache solutions in (disabled if empty)")
	cmd.Flags().IntVar(&maxOrderBits, "max-order-bits", protocol.DefaultMaxOrderBits, "Largest BSGS search bound (q, or the order/modulus) accepted, in bits")
	rootCmd.AddCommand(cmd)
}

func serve(listenAddr, cacheFile string, maxOrderBits int) error {
	var cache *store.SQLiteStorage
	if cacheFile != "" {
		var err error
		cache, err = store.NewSQLiteStorage(cacheFile)
		if err != nil {
			log.Error().Str("file", cacheFile).Msg("Failed to open solution cache")
			return err
		}
		defer cache.Close()
	}

	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Error().Str("addr", listenAddr).Msg("Failed to listen")
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return protocol.NewServer(cache, maxOrderBits).Serve(ctx, lis)
}
