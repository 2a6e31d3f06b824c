package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"authtools/internal/config"
	"authtools/internal/handlers"
	"authtools/internal/migrations"
	"authtools/internal/repositories"
	"authtools/internal/routes"
	"authtools/internal/services"
)

const defaultConfigPath = "config/config.yaml"

func Run() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	// === Repos ===
	registry := repositories.NewPostgresRegistry()

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.App.BaseURL,
	)
	registrationService := services.NewRegistrationService(db, registry, authService, emailService)

	// === Handlers ===
	registrationHandler := handlers.NewRegistrationHandler(registrationService)

	// === Gin ===
	router := gin.Default()
	routes.SetupRoutes(router, registrationHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
