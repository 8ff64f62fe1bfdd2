package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"hbnb/internal/api"
	"hbnb/internal/auth"
	"hbnb/internal/config"
	"hbnb/internal/facade"
	"hbnb/internal/models"
	"hbnb/internal/storage/memory"
	"hbnb/internal/storage/sqlite"
	"hbnb/pkg/logging"
)

func main() {
	logging.Setup()
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Repositories and facade are constructed once here and passed down;
	// there are no package-level singletons.
	var f *facade.Facade
	switch cfg.Storage {
	case "memory":
		f = facade.New(
			memory.New[*models.User](),
			memory.New[*models.Place](),
			memory.New[*models.Amenity](),
			memory.New[*models.Review](),
			logger,
		)
		logger.Info("Storage initialized", "backend", "memory")
	case "sqlite":
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			logger.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		f = facade.New(store.Users(), store.Places(), store.Amenities(), store.Reviews(), logger)
		logger.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	}

	if err := bootstrapAdmin(context.Background(), f, cfg); err != nil {
		logger.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	router := api.NewRouter(f, jwtManager, logger)

	logger.Info("HTTP server starting", "address", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// bootstrapAdmin creates the configured admin account on first start so a
// fresh deployment has a way to log in.
func bootstrapAdmin(ctx context.Context, f *facade.Facade, cfg config.App) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := f.CreateUser(ctx, facade.NewUserInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		IsAdmin:   true,
	})
	if errors.Is(err, facade.ErrEmailExists) {
		return nil // already bootstrapped
	}
	return err
}
