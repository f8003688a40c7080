package main

import (
	"log"

	"doegen/internal/config"
	"doegen/internal/container"
	"doegen/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	server, err := ui.NewServer(appContainer)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if appConfig.Output.Dir != "" {
		log.Printf("Archiving LHS runs to %s", appConfig.Output.Dir)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
