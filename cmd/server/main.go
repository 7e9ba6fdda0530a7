// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/fairway/fairway/internal/auth"
	"github.com/fairway/fairway/internal/handlers"
	"github.com/fairway/fairway/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	srv := handlers.NewGolfServer(logger)

	mux := http.NewServeMux()

	// golf websocket
	mux.Handle("/golf/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GolfWSHandler(logger, srv),
	)))

	// group listing
	mux.Handle("/golf/groups", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListGroupsHandler(srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
