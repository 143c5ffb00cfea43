package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"auth_api/cmd/config"
	"auth_api/cmd/database"
	"auth_api/cmd/route"
	"auth_api/internal/handler"
	"auth_api/internal/metrics"
	"auth_api/internal/oauth"
	"auth_api/internal/repository"
	"auth_api/internal/usecase"
	"auth_api/middleware"
	"auth_api/utils"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoName)
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("index creation failed: ", err)
	}

	verifier, err := oauth.NewGoogleVerifier(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	if err != nil {
		log.Fatal("google verifier init failed: ", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	tokenMaker := utils.NewTokenMaker(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	mailer := utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	userRepo := repository.NewUserRepository(db)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenMaker, verifier, mailer, collector)
	authHandler := handler.NewAuthHandler(authUsecase, cfg.RefreshTokenTTL, cfg.Production())

	r := route.SetupRoute(authHandler, middleware.JWTMiddleware(tokenMaker), metrics.Handler(registry))
	r.Use(
		middleware.Recovery,
		middleware.Logging(logger),
		middleware.Metrics(collector),
		middleware.CORS(cfg.CORSOrigin),
	)

	fmt.Println("🚀 Server running on http://localhost:" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
