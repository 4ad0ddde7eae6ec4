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
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/portfolio-api/internal/infrastructure/jwt"
	"github.com/portfolio-api/internal/infrastructure/mail"
	"github.com/portfolio-api/internal/infrastructure/memory"
	"github.com/portfolio-api/internal/infrastructure/sns"
	transporthttp "github.com/portfolio-api/internal/transport/http"
	appmiddleware "github.com/portfolio-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("dynamodb client: %v", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	messages, err := dynamo.NewMessageRepo(dynamoClient, cfg.DynamoTables.Messages)
	if err != nil {
		log.Fatalf("message repo: %v", err)
	}

	mailer, err := mail.NewMailer(cfg)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	// Admin routes stay disabled until a public key is available.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewVerifier(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: admin API disabled, JWT verifier not available: %v", err)
	}

	deps := &transporthttp.Deps{
		Messages:       messages,
		Verifications:  memory.NewVerificationStore(),
		Mailer:         mailer,
		JWTProvider:    jwtProvider,
		ContactLimiter: appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
	defer deps.ContactLimiter.Stop()

	// Owner SMS alert (optional).
	if cfg.OwnerPhone != "" {
		if sender, err := sns.NewSender(cfg); err == nil {
			deps.Alert = sns.NewOwnerAlert(sender, cfg.OwnerPhone)
		} else {
			log.Printf("WARN: SNS sender not available: %v", err)
		}
	}

	deps.Verifications.StartJanitor(ctx, cfg.VerificationSweepInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, mail=%s)", cfg.AppPort, cfg.AppEnv, cfg.MailProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
		os.Exit(1)
	}
	log.Println("Server stopped")
}
