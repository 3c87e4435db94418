package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-accounts-api/internal/config"
	"github.com/go-accounts-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-accounts-api/internal/infrastructure/jwt"
	s3infra "github.com/go-accounts-api/internal/infrastructure/s3"
	"github.com/go-accounts-api/internal/infrastructure/smtp"
	"github.com/go-accounts-api/internal/infrastructure/sns"
	transporthttp "github.com/go-accounts-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Token secrets partition trust domains; running without them would mint
	// forgeable tokens, so refuse to start.
	if cfg.ActivationSecret == "" || cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		log.Fatal("ACTIVATION_SECRET, ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// S3 avatar store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — activation codes go out by email only if absent).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users, cfg.DynamoTables.UserEmails),
		ObjectStore:  s3Store,
		Mailer:       mailer,
		SMSSender:    smsSender,
		TicketCodec:  jwtinfra.NewTicketCodec(cfg.ActivationSecret, cfg.ActivationTTL),
		AccessCodec:  jwtinfra.NewSessionCodec(cfg.AccessSecret, cfg.AccessTTL),
		RefreshCodec: jwtinfra.NewSessionCodec(cfg.RefreshSecret, cfg.RefreshTTL),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
