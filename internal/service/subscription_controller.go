package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
	"github.com/qs3c/agedcare_server/internal/pkg/pubsub"
)

var (
	ErrNoSubscription        = errors.New("no active subscription found")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrFetchFailed           = errors.New("failed to fetch subscription")
	ErrCreateFailed          = errors.New("failed to create subscription")
	ErrUpdateFailed          = errors.New("failed to update subscription")
)

// SubscriptionStore 订阅文档的读取和整份写入
type SubscriptionStore interface {
	GetByUserKey(ctx context.Context, userKey string) (*model.Subscription, error)
	Persist(ctx context.Context, userKey string, sub *model.Subscription) error
}

// EventPublisher 钱包事件发布
type EventPublisher interface {
	Publish(ctx context.Context, evt *pubsub.WalletEvent) error
}

// NewSubscriptionRequest 创建订阅参数，不做卡校验
type NewSubscriptionRequest struct {
	PaymentMethod    string
	CardName         string
	CardNumber       string
	ExpiryDate       string
	CVV              string
	SubscriptionPlan model.PlanTier
}

// SubscriptionController 绑定单个用户的订阅生命周期控制器。
// 所有操作以 bool 或 nil 表示失败，失败原因通过 Err/ErrorMessage 读取，
// 需要调用方显式 ClearError。
type SubscriptionController struct {
	userKey        string
	store          SubscriptionStore
	processor      payment.Processor
	events         EventPublisher
	logger         *zap.Logger
	now            func() time.Time
	defaultBalance decimal.Decimal

	mu      sync.Mutex
	sub     *model.Subscription
	lastErr error
}

// UserKey 归一化后的用户标识
func (c *SubscriptionController) UserKey() string {
	return c.userKey
}

// FetchSubscription 从存储加载订阅。不存在时返回 nil 且不记录错误；
// 存储异常时记录错误并保留之前加载的状态
func (c *SubscriptionController) FetchSubscription(ctx context.Context) *model.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, err := c.store.GetByUserKey(ctx, c.userKey)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			c.sub = nil
			return nil
		}
		c.logger.Error("fetch subscription failed", zap.String("user_key", c.userKey), zap.Error(err))
		c.lastErr = ErrFetchFailed
		return nil
	}

	c.sub = sub
	return sub.Clone()
}

// AddSubscription 新建订阅并覆盖该用户已有的订阅
func (c *SubscriptionController) AddSubscription(ctx context.Context, req NewSubscriptionRequest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(req.PaymentMethod) == "" {
		c.lastErr = ErrPaymentMethodRequired
		return false
	}

	sub := model.NewSubscription(model.SubscriptionParams{
		PaymentMethod:    req.PaymentMethod,
		CardName:         req.CardName,
		CardNumber:       req.CardNumber,
		ExpiryDate:       req.ExpiryDate,
		CVV:              req.CVV,
		SubscriptionPlan: req.SubscriptionPlan,
		InitialBalance:   c.defaultBalance,
	}, c.now())

	if err := c.store.Persist(ctx, c.userKey, sub); err != nil {
		c.logger.Error("create subscription failed", zap.String("user_key", c.userKey), zap.Error(err))
		c.lastErr = ErrCreateFailed
		return false
	}

	c.sub = sub
	c.logger.Info("subscription created",
		zap.String("user_key", c.userKey),
		zap.String("subscription_id", sub.ID),
		zap.Int("plan", int(sub.SubscriptionPlan)),
	)
	c.publish(ctx, pubsub.EventSubscriptionCreated, decimal.Zero)
	return true
}

// TopUpWallet 校验金额与卡信息，模拟扣款成功后入账并持久化
func (c *SubscriptionController) TopUpWallet(ctx context.Context, amount decimal.Decimal, method string, details card.Details) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		c.lastErr = ErrNoSubscription
		return false
	}
	if !amount.IsPositive() {
		c.lastErr = model.ErrInvalidAmount
		return false
	}
	if card.IsCardMethod(method) {
		if err := card.Validate(details, c.now()); err != nil {
			c.lastErr = err
			return false
		}
	}

	if err := c.processor.Charge(ctx, amount, method); err != nil {
		c.logger.Warn("top-up charge failed",
			zap.String("user_key", c.userKey),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		c.lastErr = payment.ErrDeclined
		return false
	}

	staged := c.sub.Clone()
	if _, err := staged.Credit(amount, method, c.now()); err != nil {
		c.lastErr = err
		return false
	}

	if !c.commit(ctx, staged) {
		return false
	}
	c.publish(ctx, pubsub.EventWalletToppedUp, amount)
	return true
}

// MakePayment 从钱包扣款，余额不足时不做任何修改
func (c *SubscriptionController) MakePayment(ctx context.Context, amount decimal.Decimal, description, recipient string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		c.lastErr = ErrNoSubscription
		return false
	}

	staged := c.sub.Clone()
	if _, err := staged.Debit(amount, description, recipient, c.now()); err != nil {
		c.lastErr = err
		return false
	}

	if !c.commit(ctx, staged) {
		return false
	}
	c.publish(ctx, pubsub.EventPaymentMade, amount)
	return true
}

// ToggleAutoPayment 切换自动续费
func (c *SubscriptionController) ToggleAutoPayment(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		c.lastErr = ErrNoSubscription
		return false
	}

	staged := c.sub.Clone()
	staged.AutoPayment = !staged.AutoPayment

	if !c.commit(ctx, staged) {
		return false
	}
	c.publish(ctx, pubsub.EventAutoPaymentToggled, decimal.Zero)
	return true
}

// CalculateNextPaymentDate 以当前日期计算该等级的下次扣费日期
func (c *SubscriptionController) CalculateNextPaymentDate(tier model.PlanTier) string {
	return model.NextPaymentDate(tier, c.now())
}

// Subscription 当前加载的订阅副本，未加载时为 nil
func (c *SubscriptionController) Subscription() *model.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub.Clone()
}

// WalletBalance 未加载订阅时为 0
func (c *SubscriptionController) WalletBalance() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		return decimal.Zero
	}
	return c.sub.WalletBalance
}

// TransactionHistory 充值和扣款记录，按时间倒序
func (c *SubscriptionController) TransactionHistory(limit int) []model.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub == nil {
		return []model.Transaction{}
	}
	return c.sub.Transactions(limit)
}

func (c *SubscriptionController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *SubscriptionController) ErrorMessage() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}

func (c *SubscriptionController) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// commit 持久化成功后才替换内存状态，失败时内存保持为上次持久化的版本
func (c *SubscriptionController) commit(ctx context.Context, staged *model.Subscription) bool {
	if err := c.store.Persist(ctx, c.userKey, staged); err != nil {
		c.logger.Error("persist subscription failed", zap.String("user_key", c.userKey), zap.Error(err))
		c.lastErr = ErrUpdateFailed
		return false
	}
	c.sub = staged
	return true
}

func (c *SubscriptionController) publish(ctx context.Context, eventType string, amount decimal.Decimal) {
	if c.events == nil || c.sub == nil {
		return
	}

	evt := &pubsub.WalletEvent{
		Type:           eventType,
		UserKey:        c.userKey,
		SubscriptionID: c.sub.ID,
		Balance:        c.sub.WalletBalance.StringFixed(2),
		AutoPayment:    c.sub.AutoPayment,
		Timestamp:      c.now(),
	}
	if amount.IsPositive() {
		evt.Amount = amount.StringFixed(2)
	}

	if err := c.events.Publish(ctx, evt); err != nil {
		c.logger.Warn("publish wallet event failed",
			zap.String("user_key", c.userKey),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
