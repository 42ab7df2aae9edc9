package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"userhub/internal/database"
	"userhub/internal/handlers"
	"userhub/internal/middleware"
	"userhub/internal/monitoring"
	"userhub/internal/repository"
	"userhub/internal/service"
)

func main() {
	cfg, err := database.ConfigFromEnv()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()
	log.Println("Connected to database successfully")

	if err := database.CreateTables(db); err != nil {
		log.Fatal("Failed to ensure schema: ", err)
	}

	userService := service.NewUserService(repository.NewUserRepo(db))
	userHandler := handlers.NewUserHandler(userService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.NewService(db, time.Now()))

	addr, dev := resolveBindAddr()
	if dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.RequestMetricsMiddleware())

	router.GET("/health", handlers.HealthCheck(db))

	api := router.Group("/api")
	api.GET("/status", handlers.Status)
	userHandler.Register(api)
	monitoringHandler.Register(api)

	log.Printf("UserHub API starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}

// resolveBindAddr picks the listen address from the environment.
// Development binds locally on 8001; anything else binds all interfaces
// on 8000. PORT overrides the port in both modes.
func resolveBindAddr() (addr string, dev bool) {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	dev = env == "development" || env == "dev"

	host := "0.0.0.0"
	port := "8000"
	if dev {
		host = "127.0.0.1"
		port = "8001"
	}
	if override := strings.TrimSpace(os.Getenv("PORT")); override != "" {
		port = override
	}
	return host + ":" + port, dev
}
