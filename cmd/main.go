package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/config"
	"github.com/mdtajulislammt/Flutter-task-backend/db"
	authhandler "github.com/mdtajulislammt/Flutter-task-backend/internal/auth/handler"
	authrepo "github.com/mdtajulislammt/Flutter-task-backend/internal/auth/repository/postgres"
	authservice "github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	chathandler "github.com/mdtajulislammt/Flutter-task-backend/internal/chat/handler"
	chatrepo "github.com/mdtajulislammt/Flutter-task-backend/internal/chat/repository/postgres"
	chatservice "github.com/mdtajulislammt/Flutter-task-backend/internal/chat/service"
	faqhandler "github.com/mdtajulislammt/Flutter-task-backend/internal/faq/handler"
	faqrepo "github.com/mdtajulislammt/Flutter-task-backend/internal/faq/repository/postgres"
	faqservice "github.com/mdtajulislammt/Flutter-task-backend/internal/faq/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/mail"
	taskhandler "github.com/mdtajulislammt/Flutter-task-backend/internal/task/handler"
	taskrepo "github.com/mdtajulislammt/Flutter-task-backend/internal/task/repository/postgres"
	taskservice "github.com/mdtajulislammt/Flutter-task-backend/internal/task/service"
	"github.com/mdtajulislammt/Flutter-task-backend/pkg/redis"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	mailQueue := mail.NewQueue(redisClient, cfg.MailQueueName)
	mailer := mail.NewService(mailQueue)
	sender := &mail.SMTPSender{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}
	mailWorker := mail.NewWorker(mailQueue, sender, log)
	go mailWorker.Run(ctx)

	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	totpManager := authservice.NewTOTPManager(cfg.TOTPIssuer)

	userRepo := authrepo.NewPostgresUserRepository(pool)
	userService := authservice.NewUserService(userRepo, tokenService, totpManager, mailer, log,
		cfg.SingleUseTokenTTLMin)
	authHandler := authhandler.NewAuthHandler(userService, tokenService)

	var googleHandler *authhandler.GoogleHandler
	if cfg.Google.ClientID != "" {
		googleHandler = authhandler.NewGoogleHandler(userService, cfg.Google.ClientID,
			cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}

	taskService := taskservice.NewTaskService(taskrepo.NewPostgresTaskRepository(pool))
	taskHandler := taskhandler.NewTaskHandler(taskService)

	chatService := chatservice.NewChatService(chatrepo.NewPostgresChatRepository(pool), log)
	chatHandler := chathandler.NewChatHandler(chatService)

	faqService := faqservice.NewFaqService(faqrepo.NewPostgresFaqRepository(pool))
	faqHandler := faqhandler.NewFaqHandler(faqService)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authHandler, googleHandler)
	taskhandler.RegisterRoutes(app, taskHandler, tokenService)
	chathandler.RegisterRoutes(app, chatHandler, tokenService)
	faqhandler.RegisterRoutes(app, faqHandler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()
	log.Info("server started", "port", cfg.Port, "env", cfg.Env)

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
