package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pratik-0309/thumbnail-generator/internal/generator"
	"github.com/Pratik-0309/thumbnail-generator/internal/models"
	"github.com/Pratik-0309/thumbnail-generator/internal/pipeline"
	"github.com/Pratik-0309/thumbnail-generator/internal/publisher"
	"github.com/Pratik-0309/thumbnail-generator/internal/server"
	"github.com/Pratik-0309/thumbnail-generator/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := models.LoadConfig("config.yaml")
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := storage.NewStorage(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to init storage")
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uploader, err := publisher.NewS3Uploader(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to init media host client")
	}
	pub := publisher.New(cfg.StoragePath, uploader)

	queue := pipeline.NewQueue(cfg)
	defer queue.Close()

	// Generation worker consumes queued records in the background.
	fetcher := generator.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout, log)
	worker := pipeline.NewWorker(cfg, db, fetcher, pub, log)
	go worker.Run(ctx)

	srv := server.NewServer(cfg, db, queue, pub, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Fatal("failed to start server")
		}
	}()
	log.WithField("addr", cfg.ServerAddr).Info("server started")

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
