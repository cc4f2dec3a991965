package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/loguncov/telegram-salon-mvp/bot"
	"github.com/loguncov/telegram-salon-mvp/config"
	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/routes"
	"github.com/loguncov/telegram-salon-mvp/services"
)

func main() {
	settings := config.Load()

	if err := config.ConnectDB(settings.DBURL); err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := config.DB.AutoMigrate(
		&models.Salon{},
		&models.Master{},
		&models.Service{},
		&models.Appointment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var tgBot *bot.Bot
	if settings.BotToken == "" {
		log.Println("[WARN] BOT_TOKEN not set, Telegram bot disabled")
	} else {
		var err error
		tgBot, err = bot.New(settings.BotToken, settings.WebAppURL)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram bot: %v", err)
		}
	}

	masterRepo := repository.NewMasterRepository(config.DB)
	apptRepo := repository.NewAppointmentRepository(config.DB)
	var notifier services.TelegramNotifier
	if tgBot != nil {
		notifier = tgBot
	}
	reminders := services.NewReminderService(
		masterRepo, apptRepo, notifier,
		settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioPhoneNumber,
	)
	reminders.StartScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    net.JoinHostPort(settings.Host, settings.Port),
		Handler: routes.SetupRouter(config.DB),
	}

	// API server and bot run as two independent tasks; the first fatal
	// error, or a signal, shuts both down.
	errCh := make(chan error, 2)
	go func() {
		log.Printf("API server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()
	if tgBot != nil {
		go func() {
			log.Println("Telegram bot polling started")
			if err := tgBot.Start(ctx); err != nil {
				errCh <- fmt.Errorf("telegram bot: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Println("Shutdown requested")
	case err := <-errCh:
		log.Printf("Task failed: %v", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	log.Println("Shutdown complete")
}
