package main

import (
	"ProjectMimic/internal/config"
	"ProjectMimic/pkg/log"
	"ProjectMimic/pkg/modelclient"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	detector := modelclient.New(logger)

	// Model loading is fail-closed: if either bundle cannot be reached the
	// detection feature simply never activates, but the server still runs.
	go func() {
		if err := detector.LoadAll(); err != nil {
			logger.Errorf("Model loading failed, detection stays disabled: %v", err)
		}
	}()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithModelClient(detector),
		config.WithPhotoStore(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	detector.CloseConnections()
}
