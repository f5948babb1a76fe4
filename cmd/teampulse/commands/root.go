package commands

import (
	"teampulse/internal/config"
	"teampulse/internal/database"
	"teampulse/internal/logging"
	"teampulse/internal/server"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "teampulse",
	Short: "TeamPulse is a project management backend with built-in analytics",
	Long: `A project management API serving companies, projects, tasks and members,
with a project analytics engine (trends, forecasts, anomalies, health scoring)
and an AI assistant for roster and task operations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("TeamPulse starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Disconnect(); err != nil {
				log.Warn().Err(err).Msg("MongoDB disconnect failed")
			}
		}()

		srv, err := server.New(cfg, db)
		if err != nil {
			return err
		}
		return srv.Run()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
