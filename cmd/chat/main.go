package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"jpchat/internal/chat"
	"jpchat/internal/config"
	"jpchat/internal/db"
	"jpchat/internal/lead"
	"jpchat/internal/locality"
	"jpchat/internal/logger"
	"jpchat/internal/observability"
	"jpchat/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	metrics := observability.Start(cfg.MetricsPort)

	flow, err := lead.NewFlow(cfg.LeadFields, lead.NewValidator(locality.Default()), lead.PortugueseMessages{})
	if err != nil {
		log.Fatal("Configuração de campos inválida", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	sessionStore := &chat.SessionStore{
		Client:       redisClient,
		TTL:          cfg.SessionTTL,
		HistoryLimit: cfg.HistoryLimit,
	}

	var leadStore chat.LeadStore
	if cfg.DatabaseURL != "" {
		dbConn, err := db.New(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Erro ao conectar no banco de dados", zap.Error(err))
		}
		defer dbConn.Close()

		repo := &repository.LeadRepository{DB: dbConn}
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Warn("Não foi possível criar a tabela de leads", zap.Error(err))
		}
		leadStore = repo
	} else {
		log.Warn("DATABASE_URL vazio: leads não serão persistidos")
	}

	knowledge, err := chat.LoadKnowledge(cfg.KnowledgeFile)
	if err != nil {
		log.Warn("Base de conhecimento indisponível", zap.String("file", cfg.KnowledgeFile), zap.Error(err))
	}

	aiCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		aiCfg.BaseURL = cfg.OpenAIBaseURL
	}
	assistant := &chat.Assistant{
		Client:       openai.NewClientWithConfig(aiCfg),
		Model:        cfg.OpenAIModel,
		SystemPrompt: chat.SystemPrompt(knowledge),
		Logger:       log,
	}

	svc := chat.NewService(flow, sessionStore, leadStore, assistant, log)
	svc.PersistTimeout = cfg.PersistTimeout

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           chat.Routes(svc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Chat Leozin rodando", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Erro no servidor HTTP", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	metrics.Shutdown(ctx)
	log.Info("Servidor encerrado")
}
