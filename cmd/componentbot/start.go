package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfitzpatrick/componentbot/internal/bot"
	"github.com/dfitzpatrick/componentbot/internal/config"
	"github.com/dfitzpatrick/componentbot/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	settingsFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the bot",
		Long:  "Connect to Discord and serve slash commands and component interactions until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			// .env is a development convenience; a missing file is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(settingsFile)
			if err != nil {
				var missing *config.MissingConfigurationError
				if errors.As(err, &missing) {
					log.Fatalf("Configuration error: %v", missing)
				}
				log.Fatalf("Failed to load configuration: %v", err)
			}

			if err := logger.Init(logger.Config{
				Level:        cfg.Logging.Level,
				File:         cfg.Logging.File,
				MaxSize:      cfg.Logging.MaxSize,
				MaxBackups:   cfg.Logging.MaxBackups,
				MaxAge:       cfg.Logging.MaxAge,
				Compress:     *cfg.Logging.Compress,
				EnableStdout: *cfg.Logging.EnableStdout,
			}); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"log_level": cfg.Logging.Level,
				"log_file":  cfg.Logging.File,
			}).Info("logger-initialized")

			b := bot.New(bot.Config{
				Token:         cfg.Token,
				OwnerID:       cfg.OwnerID,
				CommandPrefix: cfg.CommandPrefix,
			})

			if err := b.Start(); err != nil {
				logger.Errorf("Failed to start bot: %v", err)
				os.Exit(1)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			logger.Info("componentbot running, press Ctrl+C to stop")
			sig := <-sigChan
			logger.Infof("Received signal: %v, shutting down gracefully...", sig)

			if err := b.Stop(); err != nil {
				logger.Errorf("Error during shutdown: %v", err)
				os.Exit(1)
			}
			logger.Info("componentbot stopped")
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "Optional YAML settings file path")
}
