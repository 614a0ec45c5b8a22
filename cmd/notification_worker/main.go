package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/config"
	"github.com/emprendevoz/emprende-api/internal/worker"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/mailer"
)

func newSender(cfg *config.Config, logger *logrus.Logger) mailer.Sender {
	switch cfg.MailProvider {
	case "sendgrid":
		if cfg.SendGridKey == "" {
			logger.Fatal("SendGrid not configured")
		}
		return mailer.NewSendGrid(cfg.SendGridKey, cfg.MailFromName, cfg.MailFromAddress)
	default:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("Mailgun not configured")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase, cfg.AppName)
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-notifications", cfg.Env,
		helpers.WithLevel(cfg.LogLevel),
		helpers.WithRollbar(cfg.RollbarToken, "worker"),
	)
	defer helpers.FlushRollbar()

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.NewEmailWorker(newSender(cfg, logger), logger)
	done := make(chan struct{})
	go func() {
		w.Run(ctx, msgs)
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).WithField("provider", cfg.MailProvider).Info("notification worker listening")
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case <-done:
		logger.Warn("delivery channel closed")
		return
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
