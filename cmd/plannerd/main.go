package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emmyjay256/weekday-planner/internal/config"
	"github.com/emmyjay256/weekday-planner/internal/planner"
	"github.com/emmyjay256/weekday-planner/internal/repository"
	"github.com/emmyjay256/weekday-planner/internal/service"
)

func main() {
	configPath := flag.String("config", "", "optional config file path")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("timezone", zap.Error(err))
	}

	db, err := repository.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	templateRepo := repository.NewTemplateRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	checkpointRepo := repository.NewCheckpointRepository(db)
	completionRepo := repository.NewCompletionLogRepository(db)

	feed := service.NewTemplateFeed(logger)
	defer feed.Close()

	now := func() time.Time { return time.Now().In(loc) }

	tracker := service.NewCompletionTracker(templateRepo, completionRepo, feed, logger)
	tracker.Now = now
	finalizer := service.NewDayFinalizer(templateRepo, historyRepo, checkpointRepo, completionRepo, logger)
	finalizer.Now = now
	progress := service.NewProgressCalculator(templateRepo, logger)
	progress.Now = now

	pl := planner.New(templateRepo, historyRepo, tracker, finalizer, progress, feed, logger)
	pl.Now = now

	// Backfill missed days without stalling startup.
	go func() {
		if err := pl.FinalizeOnLaunch(ctx); err != nil {
			logger.Error("launch finalize", zap.Error(err))
		}
	}()

	scheduler := service.NewScheduler(loc)
	if _, err := scheduler.ScheduleDaily(cfg.RolloverTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := finalizer.Run(jobCtx); err != nil {
			logger.Error("rollover finalize", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("schedule rollover", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("weekday planner started",
		zap.String("database", cfg.DatabasePath),
		zap.String("rollover", cfg.RolloverTime))

	<-ctx.Done()
	logger.Info("shutdown complete")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
