package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alghadeer/ledger/internal/api"
	"github.com/alghadeer/ledger/internal/repository"
	"github.com/alghadeer/ledger/internal/service"
	"github.com/alghadeer/ledger/pkg/broker"
	"github.com/alghadeer/ledger/pkg/config"
	"github.com/alghadeer/ledger/pkg/job"
	"github.com/alghadeer/ledger/pkg/logger"
	"github.com/alghadeer/ledger/pkg/postgres"
)

const (
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.LogLevel)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	var producer service.Producer

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.RecordEventsTopic)
		defer kafkaProducer.Close()

		producer = kafkaProducer
	}

	s := service.New(repo, producer)

	{
		job.NewRunner().
			TryRegisterJob(cfg.TrashRetention > 0, "purge expired trash", cfg.TrashRetentionCheckInterval,
				func(ctx context.Context) error {
					return s.PurgeExpired(ctx, cfg.TrashRetention)
				}).
			Start(ctx)
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg.CORSOrigins)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTPPort)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
