package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumiere-atelier/storefront/internal/common"
	"github.com/lumiere-atelier/storefront/internal/log"
)

func Start() {
	logger := log.InitLogger("/var/log/lumiere-storefront.log").
		With().
		Str(log.KeyAppName, common.AppStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "storefront"}
	commands := []*cobra.Command{
		{
			Use:   "serve",
			Short: "Run the storefront API",
			Run: func(cmd *cobra.Command, args []string) {
				RunStorefront(cmd.Context())
			},
		},
		{
			Use:   "seed",
			Short: "Seed the product catalog and exit",
			Run: func(cmd *cobra.Command, args []string) {
				RunSeed(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
