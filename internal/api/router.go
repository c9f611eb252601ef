package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/api/handler"
	"github.com/qs3c/agedcare_server/internal/api/middleware"
)

type Router struct {
	subscriptionHandler *handler.SubscriptionHandler
	walletHandler       *handler.WalletHandler
	planHandler         *handler.PlanHandler
	enrollmentHandler   *handler.EnrollmentHandler
	websocketHandler    *handler.WebSocketHandler
	logger              *zap.Logger
	cfg                 *config.Config
}

func NewRouter(
	subscriptionHandler *handler.SubscriptionHandler,
	walletHandler *handler.WalletHandler,
	planHandler *handler.PlanHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	websocketHandler *handler.WebSocketHandler,
	logger *zap.Logger,
	cfg *config.Config,
) *Router {
	return &Router{
		subscriptionHandler: subscriptionHandler,
		walletHandler:       walletHandler,
		planHandler:         planHandler,
		enrollmentHandler:   enrollmentHandler,
		websocketHandler:    websocketHandler,
		logger:              logger,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(r.logger))
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket，token 通过 query 传递
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 套餐目录
		plans := api.Group("/plans")
		{
			plans.GET("", r.planHandler.List)
			plans.GET("/:tier/quote", r.planHandler.Quote)
		}

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/enroll", r.enrollmentHandler.Enroll)

			subscription := authenticated.Group("/subscription")
			{
				subscription.GET("", r.subscriptionHandler.Get)
				subscription.POST("", r.subscriptionHandler.Create)
				subscription.PUT("/auto-payment", r.subscriptionHandler.ToggleAutoPayment)
			}

			wallet := authenticated.Group("/wallet")
			{
				wallet.GET("", r.walletHandler.Get)
				wallet.POST("/top-up", r.walletHandler.TopUp)
				wallet.POST("/payments", r.walletHandler.Pay)
				wallet.GET("/transactions", r.walletHandler.Transactions)
			}
		}
	}

	return engine
}
