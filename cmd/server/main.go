package main

import (
	"context"
	"net/http"
	"time"

	api "github.com/mockmate/mockmate/internal/api/http"
	"github.com/mockmate/mockmate/internal/auth"
	"github.com/mockmate/mockmate/internal/config"
	"github.com/mockmate/mockmate/internal/db"
	"github.com/mockmate/mockmate/internal/eventlog"
	"github.com/mockmate/mockmate/internal/interview"

	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	if cfg.SeedCatalog {
		if err := db.Seed(ctx, dbh); err != nil {
			logger.Fatal("seed catalog failed", zap.Error(err))
		}
	}

	store := interview.NewSQLStore(dbh)
	svc := interview.NewService(store, store,
		interview.WithEventLog(eventlog.NewRepo(dbh)))

	authSvc := auth.NewAuthService(cfg.JWTSecret)
	users := auth.NewUserRepo(dbh)

	r := api.NewRouter(api.RouterDeps{
		Service:     svc,
		Questions:   store,
		Users:       users,
		Auth:        authSvc,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	logger.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
