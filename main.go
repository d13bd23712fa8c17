package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"virtualta/config"
	"virtualta/global"
	"virtualta/router"
	"virtualta/services"
)

func main() {
	config.InitConfig()
	cfg := config.AppConfig
	logger := global.Logger
	defer func() { _ = logger.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corpus, err := services.LoadCorpus(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Unable to load corpus", zap.String("path", cfg.Corpus.Path), zap.Error(err))
	}
	logger.Info("Corpus loaded", zap.String("path", cfg.Corpus.Path), zap.Int("records", len(corpus)))

	opts := []services.Option{services.WithLogger(logger)}
	if global.RedisDB != nil {
		digest, err := services.CorpusDigest(corpus)
		if err != nil {
			logger.Fatal("Unable to fingerprint corpus", zap.Error(err))
		}
		opts = append(opts, services.WithCache(services.NewRedisAnswerCache(global.RedisDB, cfg.Redis.TTL, digest)))
	}
	var publisher *services.QuestionPublisher
	if global.RabbitChannel != nil {
		publisher = services.NewQuestionPublisher(global.RabbitChannel, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Buffer, logger)
		go publisher.Run()
		opts = append(opts, services.WithSink(publisher))
	}

	r := router.SetupRouter(router.Deps{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		QA:          services.NewQAService(corpus, opts...),
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(shutdownCtx); err != nil {
			logger.Warn("Question events not fully drained", zap.Error(err))
		}
	}
	config.CloseRabbit()
	if global.RedisDB != nil {
		_ = global.RedisDB.Close()
	}
}
