package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stargazer/exercise-tracker/internal/api"
	"stargazer/exercise-tracker/internal/config"
	"stargazer/exercise-tracker/internal/repository"
	"stargazer/exercise-tracker/internal/repository/bolt"
	"stargazer/exercise-tracker/internal/repository/mongo"
	"stargazer/exercise-tracker/internal/service"
	"stargazer/exercise-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Exercise Tracker API
// @version 1.0
// @description Create users, log exercises against them and query the combined log.
// @BasePath /api
func main() {
	log.Println("Starting Exercise Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Record Store ---
	store, err := openStore(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s store: %v", cfg.Database.Driver, err)
	}
	defer func() {
		log.Println("Closing record store...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("ERROR: Failed to close record store: %v", err)
		}
	}()
	log.Printf("Record store (%s) ready.", cfg.Database.Driver)

	// --- Public assets ---
	var assets storage.FileStorage
	if cfg.S3.Enabled() {
		assets, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	}

	// --- Services ---
	userService := service.NewUserService(store.Users())
	exerciseService := service.NewExerciseService(store.Exercises(), store.Users(), time.Now)

	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.Server, store, userService, exerciseService, assets)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.ListenAddress(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Your app is listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

func openStore(cfg config.DatabaseConfig) (repository.Store, error) {
	if cfg.Driver == config.DriverBolt {
		store, err := bolt.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	store := mongo.NewStore(client, cfg.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		store.EnsureIndexes(ctx, cfg.Name)
		log.Println("Index creation process completed.")
	}()

	return store, nil
}
