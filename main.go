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

	"github.com/isdelr/card-binder-be/internal/api"
	"github.com/isdelr/card-binder-be/internal/catalog"
	"github.com/isdelr/card-binder-be/internal/config"
	"github.com/isdelr/card-binder-be/internal/database"
	"github.com/isdelr/card-binder-be/internal/logger"
	"github.com/isdelr/card-binder-be/internal/services"
	"github.com/isdelr/card-binder-be/internal/session"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the external catalog client
	catalogClient := catalog.New(cfg.CatalogBaseURL, cfg.CatalogAPIKey)

	// Set up the session store
	sessions := session.NewStore(cfg.SessionPath, []byte(cfg.JWTSecret))

	// Set up services
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)
	collectionService := services.NewCollectionService(db, catalogClient, eventService)

	// Set up router
	router := api.NewRouter(cfg.CORSOrigin, sessions, userService, collectionService, eventService, catalogClient)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
