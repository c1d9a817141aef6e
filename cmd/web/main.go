package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/polyfill/internal/api"
	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	logger, err := config.NewLogger("web")
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	width, err := config.GetEnvInt("CANVAS_WIDTH", fill.DefaultWidth)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	height, err := config.GetEnvInt("CANVAS_HEIGHT", fill.DefaultHeight)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	maxPixels, err := config.GetEnvInt("MAX_CANVAS_PIXELS", api.DefaultMaxPixels)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	strict, err := config.GetEnvBool("POLYFILL_STRICT", false)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	engine := fill.NewEngine(fill.Options{Width: width, Height: height, Logger: logger})
	handler := api.NewServer(engine, api.Options{
		Strict:    strict,
		MaxPixels: maxPixels,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", srv.Addr, "canvas", [2]int{width, height}, "strict", strict)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
