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

	"github.com/go-notes-api/internal/config"
	"github.com/go-notes-api/internal/infrastructure/dynamo"
	"github.com/go-notes-api/internal/infrastructure/google"
	jwtinfra "github.com/go-notes-api/internal/infrastructure/jwt"
	redisinfra "github.com/go-notes-api/internal/infrastructure/redis"
	"github.com/go-notes-api/internal/infrastructure/ses"
	"github.com/go-notes-api/internal/infrastructure/smtp"
	transporthttp "github.com/go-notes-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Token signing misconfiguration is fatal: the service never runs
	// with missing secrets.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis counting store for the OTP rate limiter.
	redisClient, err := redisinfra.NewClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	otpLimiter := redisinfra.NewLimiter(redisClient, cfg.OtpRateWindow, cfg.OtpRateMax, cfg.OtpBlockDuration)

	// Email delivery: SES in production, SMTP catcher in development.
	var mailer ses.Mailer
	if cfg.EmailProvider == "ses" {
		mailer, err = ses.NewSender(cfg)
		if err != nil {
			log.Fatalf("SES mailer: %v", err)
		}
	} else {
		mailer = smtp.NewMailer(cfg)
	}

	deps := &transporthttp.Deps{
		UserRepo:      dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		OtpRepo:       dynamo.NewOtpRepo(dynamoClient, cfg.DynamoTables.Otps),
		NoteRepo:      dynamo.NewNoteRepo(dynamoClient, cfg.DynamoTables.Notes),
		OtpLimiter:    otpLimiter,
		Mailer:        mailer,
		TokenVerifier: google.NewVerifier(cfg.GoogleClientID),
		JWTProvider:   jwtProvider,
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
