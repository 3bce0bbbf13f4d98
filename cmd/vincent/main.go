package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iCodeIN/vincent/internal/access"
	"github.com/iCodeIN/vincent/internal/api"
	"github.com/iCodeIN/vincent/internal/config"
	"github.com/iCodeIN/vincent/internal/handlers"
	"github.com/iCodeIN/vincent/internal/repository/postgres"
	"github.com/iCodeIN/vincent/internal/telegram"
	"github.com/iCodeIN/vincent/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting vincent...")

	// Database
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate("migrations"); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories share the one connection pool.
	userRepo := postgres.NewUserRepository(db.DB)
	linkRepo := postgres.NewMessageLinkRepository(db.DB)

	// Router skeleton first; handlers need the API client from the bot.
	router := telegram.NewRouter(l)
	bot, err := telegram.NewBot(cfg.TelegramToken, router, l)
	if err != nil {
		l.Fatalf("Failed to create Telegram bot: %v", err)
	}
	tg := bot.API()

	// Every sender is tracked before any role gate applies.
	router.Use(handlers.NewTrackHandler(userRepo, l))

	// Admin chain: listing, paging, block/unblock, then the reply relay.
	router.Register(access.NewAdminPolicy(cfg.AdminChatID),
		handlers.NewUsersHandler(tg, userRepo, l),
		handlers.NewPageCallbackHandler(tg, userRepo, l),
		handlers.NewBlockHandler(tg, linkRepo, userRepo, l),
		handlers.NewUnblockHandler(tg, userRepo, l),
		handlers.NewAdminMessageHandler(tg, linkRepo, l),
	)

	// Subscriber chain: greeting, then the forward relay.
	router.Register(access.NewSubscriberPolicy(userRepo, cfg.AdminChatID, cfg.BlockCheckFailOpen, l),
		handlers.NewStartHandler(tg, l),
		handlers.NewSubscriberMessageHandler(tg, linkRepo, cfg.AdminChatID, l),
	)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// HTTP sidecar: health, metrics and (optionally) the webhook.
	apiServer := api.NewServer(db.DB, l)

	if cfg.WebhookURL != "" {
		path, err := webhookPath(cfg.WebhookURL)
		if err != nil {
			l.Fatalf("Invalid WEBHOOK_URL: %v", err)
		}
		if err := bot.SetWebhook(cfg.WebhookURL); err != nil {
			l.Fatalf("Failed to set webhook: %v", err)
		}
		apiServer.Mount("POST "+path, bot.WebhookHandler(ctx))
	} else {
		go func() {
			if err := bot.Start(ctx); err != nil {
				l.Errorf("Bot error: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	l.Info("vincent started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	httpServer.Close()

	l.Info("vincent stopped")
}

// webhookPath extracts the local mount path from the public webhook URL.
func webhookPath(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}
