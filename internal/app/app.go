package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"docverify/config"
	"docverify/internal/ledger"
	"docverify/internal/service"
	"docverify/internal/storage"
	"docverify/internal/storage/cache"
	"docverify/internal/storage/postgres"
	"docverify/internal/transport"
	"docverify/internal/watermark"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
	Server *http.Server
}

func InitApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config error: %w", err)
	}

	logger := logrus.New()

	dbConn, err := postgres.InitDb(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	gateway, err := ledger.Dial(context.Background(), cfg.RPCURL, cfg.ContractsDir, cfg.SenderAddress)
	if err != nil {
		return nil, fmt.Errorf("ledger gateway error: %w", err)
	}

	watermarker, err := watermark.New()
	if err != nil {
		return nil, fmt.Errorf("watermark service error: %w", err)
	}

	userStorage := storage.NewUserStorage(dbConn)
	docStorage := storage.NewDocumentStorage(dbConn)
	cacheStorage := cache.NewStructuredCache()

	authService := service.NewAuthService(userStorage, gateway, cfg.JWTSecret, cfg.JWTExpiry)
	docService := service.NewDocumentService(docStorage, gateway, watermarker, cacheStorage)

	handler := transport.NewHandler(authService, docService, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(handler.InitRouter())

	return &App{
		Config: cfg,
		Logger: logger,
		Server: &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      corsHandler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

func (a *App) Run() {
	a.Logger.WithField("addr", a.Config.ServerAddr).Info("run server")
	if err := a.Server.ListenAndServe(); err != nil {
		a.Logger.Fatal(err)
	}
}
