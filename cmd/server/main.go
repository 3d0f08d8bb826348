package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fenrir/api/ws"
	"fenrir/config"
	"fenrir/domain/book"
	"fenrir/infra/memory"
	"fenrir/infra/sequence"
	"fenrir/service"
)

func main() {
	cfg := config.MustLoad()

	level := slog.LevelInfo
	if cfg.Env != "production" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// ---------------- Engine ----------------

	seq := sequence.New(0)
	pool := memory.NewPool(cfg.Engine.PoolSize, func() *book.Order {
		return &book.Order{}
	})
	b := book.NewWith(seq, pool)

	// ---------------- Service ----------------

	svc := service.New(b, log, func() uint64 {
		return uint64(time.Now().UnixNano())
	})

	// ---------------- Transport ----------------

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewServer(svc, cfg.Engine.DepthLimit, log))

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	log.Info("server started",
		slog.String("address", cfg.Addr),
		slog.String("env", cfg.Env),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-done

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", slog.String("error", err.Error()))
	}
}
