package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proman-app/proman/internal/config"
	"github.com/proman-app/proman/internal/db"
	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/realtime"
	"github.com/proman-app/proman/internal/repository"
	"github.com/proman-app/proman/internal/server"
	"github.com/proman-app/proman/internal/tasks"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(cfg *config.Config) {
	logConfig := &logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "proman",
	Short: "Proman - project management server",
	Long: `Proman is a role-based project management server with realtime
updates over websockets. Admins manage accounts and landing content,
project managers run projects and tasks, team members work the tasks
assigned to them.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		initLogger(cfg)
		defer logger.Close()

		logger.Info("Starting server in %s mode", cfg.Environment)

		database, err := db.Connect(cfg)
		if err != nil {
			logger.Error("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		hub := realtime.NewHub(logger)

		sessionRepo := repository.NewSessionRepository(database.DB)
		sessionCleanup := tasks.NewSessionCleanup(sessionRepo, logger)
		sessionCleanup.Start()
		defer sessionCleanup.Stop()
		logger.Info("Started session cleanup task")

		srv := server.NewServer(cfg, database, hub)
		if err := srv.Init(); err != nil {
			logger.Error("Failed to initialize server: %v", err)
			os.Exit(1)
		}

		go func() {
			if err := srv.Start(); err != nil {
				logger.Error("Server error: %v", err)
				os.Exit(1)
			}
		}()
		logger.Info("Listening on port %s", cfg.Port)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error: %v", err)
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users and sample data",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		initLogger(cfg)
		defer logger.Close()

		database, err := db.Connect(cfg)
		if err != nil {
			logger.Error("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := db.Seed(database.DB); err != nil {
			logger.Error("Seeding failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Database seeded")
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
