package service

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
)

// SubscriptionService 持有共享依赖，为每个用户创建控制器
type SubscriptionService struct {
	store          SubscriptionStore
	processor      payment.Processor
	events         EventPublisher
	logger         *zap.Logger
	now            func() time.Time
	defaultBalance decimal.Decimal
}

type Option func(*SubscriptionService)

// WithEventPublisher 成功修改后发布钱包事件
func WithEventPublisher(p EventPublisher) Option {
	return func(s *SubscriptionService) {
		s.events = p
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *SubscriptionService) {
		s.logger = logger
	}
}

// WithClock 替换当前时间来源
func WithClock(now func() time.Time) Option {
	return func(s *SubscriptionService) {
		s.now = now
	}
}

func NewSubscriptionService(
	store SubscriptionStore,
	processor payment.Processor,
	cfg *config.Config,
	opts ...Option,
) *SubscriptionService {
	s := &SubscriptionService{
		store:          store,
		processor:      processor,
		logger:         zap.NewNop(),
		now:            time.Now,
		defaultBalance: model.DefaultWalletBalance,
	}
	if cfg != nil && cfg.Wallet.DefaultBalance > 0 {
		s.defaultBalance = decimal.NewFromFloat(cfg.Wallet.DefaultBalance)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Controller 为指定邮箱创建控制器，尚未加载订阅
func (s *SubscriptionService) Controller(email string) *SubscriptionController {
	return &SubscriptionController{
		userKey:        docstore.NormalizeUserKey(email),
		store:          s.store,
		processor:      s.processor,
		events:         s.events,
		logger:         s.logger,
		now:            s.now,
		defaultBalance: s.defaultBalance,
	}
}
