package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/cors"

	"blog-scout/api/router"
	"blog-scout/config"
	"blog-scout/db"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()

	// API 는 아카이브를 읽어 서빙하므로 Mongo 가 필수다
	if cfg.MongoURI == "" {
		fmt.Fprintln(os.Stderr, "MONGO_URI is required for the API server")
		os.Exit(1)
	}
	if err := db.Init(context.Background(), &cfg); err != nil {
		config.Logger.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	r := router.New()
	handler := cors.Default().Handler(r)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	config.Logger.Infof("API server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		config.Logger.Errorf("API server stopped: %v", err)
		os.Exit(1)
	}
}
