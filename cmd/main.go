package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Plauto679/taiico-crm/internal/adapters"
	"github.com/Plauto679/taiico-crm/internal/config"
	"github.com/Plauto679/taiico-crm/internal/database/redis"
	"github.com/Plauto679/taiico-crm/internal/event"
	"github.com/Plauto679/taiico-crm/internal/handlers"
	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/mailer"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/repository"
	"github.com/Plauto679/taiico-crm/internal/services"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/taiico", "log", "crm_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewTextHandler(file, nil)))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	store := ledger.NewStore()
	resolver := ledger.NewResolver(cfg.LedgerCfg.BasePath)
	registry := adapters.NewRegistry()

	clientDirectory := repository.NewClientDirectory(store, cfg.LedgerCfg.ClientDirectoryPath)
	userRepository := repository.NewUserRepository(store, cfg.LedgerCfg.UsersPath)

	var sessionRepository repository.SessionRepository
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Printf("error connecting to redis, login disabled: %s", err)
	} else {
		defer redisClient.Close()
		sessionRepository = repository.NewSessionRepository(redisClient.GetClient())
	}

	var auditPublisher *event.AuditPublisher
	if cfg.RabbitMQCfg.Host != "" {
		rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
		if err != nil {
			log.Printf("error connecting to RabbitMQ, audit events disabled: %s", err)
		} else {
			defer rabbitConn.Close()
			auditPublisher = event.NewAuditPublisher(rabbitConn)
		}
	}

	var outboundMailer mailer.Mailer
	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTPCfg)
	if err != nil {
		if errors.Is(err, models.ErrConfiguration) {
			log.Printf("smtp not configured, renewal notices disabled: %s", err)
		} else {
			log.Fatalf("Failed to set up mailer: %v", err)
		}
	} else {
		outboundMailer = smtpMailer
	}

	renewalService := services.NewRenewalService(store, resolver, registry)
	notifyService := services.NewNotifyService(clientDirectory, outboundMailer, renewalService, auditPublisher)
	collectionService := services.NewCollectionService(store, resolver)
	portfolioService := services.NewPortfolioService(store, resolver)
	clientService := services.NewClientService(clientDirectory)
	authService := services.NewAuthService(userRepository, sessionRepository)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("CRM service is healthy")
	})

	authHandler := handlers.NewAuthHandler(authService)
	authHandler.Register(app)

	protected := app.Group("/crm/protected/api/v1", handlers.SessionMiddleware(authService))
	handlers.NewRenewalHandler(renewalService, notifyService).Register(protected)
	handlers.NewCollectionHandler(collectionService).Register(protected)
	handlers.NewPortfolioHandler(portfolioService).Register(protected)
	handlers.NewClientHandler(clientService).Register(protected)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
