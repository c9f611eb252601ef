package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/api"
	"github.com/qs3c/agedcare_server/internal/api/handler"
	"github.com/qs3c/agedcare_server/internal/database"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
	"github.com/qs3c/agedcare_server/internal/pkg/logger"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
	"github.com/qs3c/agedcare_server/internal/pkg/pubsub"
	"github.com/qs3c/agedcare_server/internal/pkg/ws"
	"github.com/qs3c/agedcare_server/internal/repository"
	"github.com/qs3c/agedcare_server/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zlog, err := logger.New(cfg.Log, cfg.Server.Mode == "release")
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化 Redis，memory 驱动下 Redis 不可用时不推送事件
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		if cfg.Store.Driver == "redis" {
			zlog.Fatal("Failed to connect redis", zap.Error(err))
		}
		zlog.Warn("Redis unavailable, wallet events disabled", zap.Error(err))
		rdb = nil
	} else {
		zlog.Info("Redis connected")
	}

	// 初始化文档存储
	store, err := openStore(cfg, rdb)
	if err != nil {
		zlog.Fatal("Failed to open document store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	zlog.Info("Document store ready", zap.String("driver", cfg.Store.Driver))

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub(zlog)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret, zlog)

	// 初始化 Service
	opts := []service.Option{service.WithLogger(zlog)}
	if rdb != nil {
		opts = append(opts, service.WithEventPublisher(pubsub.NewPublisher(rdb)))

		subscriber := pubsub.NewSubscriber(rdb)
		go func() {
			if err := subscriber.Subscribe(ctx, websocketHandler.Forward); err != nil && ctx.Err() == nil {
				zlog.Error("Wallet event subscription stopped", zap.Error(err))
			}
		}()
	}

	topUpProcessor := payment.NewSimulator(cfg.Payment.TopUpSuccessRate, cfg.Payment.Delay, nil)
	enrollmentProcessor := payment.NewSimulator(cfg.Payment.EnrollmentSuccessRate, cfg.Payment.Delay, nil)

	subscriptionService := service.NewSubscriptionService(
		repository.NewSubscriptionRepository(store),
		topUpProcessor,
		cfg,
		opts...,
	)
	planService := service.NewPlanService(cfg, nil)
	enrollmentService := service.NewEnrollmentService(planService, subscriptionService, enrollmentProcessor, zlog)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewSubscriptionHandler(subscriptionService),
		handler.NewWalletHandler(subscriptionService),
		handler.NewPlanHandler(planService),
		handler.NewEnrollmentHandler(enrollmentService),
		websocketHandler,
		zlog,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zlog.Info("Server starting", zap.String("addr", addr))
	if err := engine.Run(addr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

func openStore(cfg *config.Config, rdb *redis.Client) (docstore.Store, error) {
	switch cfg.Store.Driver {
	case "mysql":
		db, err := database.NewMySQL(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return repository.NewDocumentRepository(db), nil
	case "redis":
		return docstore.NewRedisStore(rdb, cfg.Store.KeyPrefix), nil
	case "memory":
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
