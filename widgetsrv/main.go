package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	host := getEnv("WIDGETSRV_HOST", "")
	port := getEnv("WIDGETSRV_PORT", "8080")
	level := getEnv("WIDGETSRV_LOG", "info")

	if err := setupLogging(level); err != nil {
		return err
	}

	s, err := newServer()
	if err != nil {
		return err
	}
	s.populateTestWidgets()

	addr := fmt.Sprintf("%s:%s", host, port)
	slog.Info("listening", "addr", addr, "docs", "/api/swagger.json")
	return http.ListenAndServe(addr, s.router)
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
