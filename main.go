package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"eventdesk/config"
	"eventdesk/internal/consumer"
	"eventdesk/internal/handler"
	"eventdesk/internal/middleware"
	"eventdesk/internal/repository"
	"eventdesk/internal/service"
	"eventdesk/pkg/database"
	"eventdesk/pkg/mailer"
	"eventdesk/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The connection is established lazily on first use; handlers that
	// arrive during cold start coalesce onto a single attempt.
	db := database.NewMongo(cfg.MongoURI, cfg.MongoDB)

	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		cons, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to set up RabbitMQ consumer: %v", err)
		}
		defer cons.Close()

		msgs, err := cons.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		mail := mailer.New(mailer.Config{
			Provider:        cfg.MailProvider,
			FromAddress:     cfg.MailFromAddress,
			FromName:        cfg.MailFromName,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		})
		consumer.NewBookingConsumer(mail).Start(msgs)
	}

	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventSvc := service.NewEventService(eventRepo, publisher)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, publisher)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(cfg.Env)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventdesk"})
	})

	api := e.Group("/api/v1/events")
	handler.NewEventHandler(eventSvc).RegisterRoutes(api)
	handler.NewBookingHandler(bookingSvc, eventSvc).RegisterRoutes(api)

	log.Printf("eventdesk starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
