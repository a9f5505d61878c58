package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/media"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cnf := config.Load()

	logger, err := common.NewLogger(cnf)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	mongoClient, err := dbmongo.NewMongoConnection(cnf)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Close(context.Background())

	server := media.NewHTTPServer(mongoClient, logger)

	logger.Info("media server listening", zap.String("port", cnf.Server.MediaPort))
	if err := http.ListenAndServe(":"+cnf.Server.MediaPort, server.Router()); err != nil {
		logger.Fatal("media server failed", zap.Error(err))
	}
}
