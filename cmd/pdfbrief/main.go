package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pdfbrief/pdfbrief/internal/ai"
	"github.com/pdfbrief/pdfbrief/internal/config"
	"github.com/pdfbrief/pdfbrief/internal/extract"
	"github.com/pdfbrief/pdfbrief/internal/filestore"
	"github.com/pdfbrief/pdfbrief/internal/handler"
	"github.com/pdfbrief/pdfbrief/internal/job"
	"github.com/pdfbrief/pdfbrief/internal/repo"
	"github.com/pdfbrief/pdfbrief/internal/schedule"
	"github.com/pdfbrief/pdfbrief/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pdfbrief",
		Short: "pdfbrief backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run pdfbrief server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(db)
	summaryRepo := repo.NewSummaryRepo(db)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	summarizer := ai.NewSummarizer(aiProvider, ai.SummarizerConfig{
		Model:         cfg.AI.Model,
		Timeout:       cfg.AI.TimeoutSeconds,
		MaxInputChars: cfg.AI.MaxInputChars,
	})

	authService := service.NewAuthService(
		userRepo,
		[]byte(cfg.JWTSecret),
		time.Hour*time.Duration(cfg.AccessTTLHours),
		time.Hour*time.Duration(cfg.RefreshTTLHours),
	)
	summaryService := service.NewSummaryService(extract.NewPDFExtractor(), summarizer, store, summaryRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Summaries: handler.NewSummaryHandler(summaryService, cfg.Upload.MaxSizeMB*1024*1024),
		Files:     handler.NewFileHandler(store),
		JWTSecret: []byte(cfg.JWTSecret),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.Cleanup.Enable {
		cleanup := job.NewFileCleanupJob(summaryRepo, store, time.Duration(cfg.Cleanup.MinAgeH)*time.Hour)
		if err := scheduler.AddJob(cleanup, cfg.Cleanup.CronSpec); err != nil {
			return fmt.Errorf("schedule cleanup: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
