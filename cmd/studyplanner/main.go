package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-planner/internal/bot"
	"study-planner/internal/clock"
	"study-planner/internal/config"
	"study-planner/internal/repository"
	"study-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	clk := clock.New(cfg.TimezoneOffset)
	classifier := clock.NewClassifier(clock.DefaultFillerMarkers...)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	agendaSvc := service.NewAgendaService(clk, taskRepo, classifier)
	statsSvc := service.NewStatsService(clk, taskRepo, classifier)
	materializeSvc := service.NewMaterializeService(taskRepo, recurringRepo)

	telegramBot, err := bot.New(cfg.BotToken, &cfg, clk, classifier,
		userRepo, recurringRepo, taskSvc, agendaSvc, statsSvc, materializeSvc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	// The bot is the scheduler's notification sink, so the timer wiring
	// happens after both exist.
	telegramBot.SetReminders(service.NewReminderScheduler(clk, telegramBot))

	scheduler := service.NewSchedulerService(clk.Location())
	if _, err := scheduler.ScheduleDaily(cfg.MaintenanceTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		telegramBot.RunDailyMaintenance(jobCtx)
	}); err != nil {
		log.Fatalf("schedule maintenance: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Study planner bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
