package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
)

// FixedNow 测试统一使用的当前时间
var FixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

// FixedClock 返回固定时间
func FixedClock() time.Time {
	return FixedNow
}

// TestEmail 生成唯一的测试邮箱
func TestEmail() string {
	return fmt.Sprintf("user_%d@example.com", time.Now().UnixNano())
}

// TestSubscription 写入一条测试订阅并返回
func TestSubscription(t *testing.T, store docstore.Store, email string, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := model.NewSubscription(model.SubscriptionParams{
		PaymentMethod:    "card",
		CardName:         "Mary Tan",
		CardNumber:       "4111 1111 1111 1111",
		ExpiryDate:       "12/28",
		CVV:              "123",
		SubscriptionPlan: model.PlanMonthly,
	}, FixedNow)

	for _, opt := range opts {
		opt(sub)
	}

	path := docstore.SubscriptionPath(docstore.NormalizeUserKey(email))
	if err := store.Set(context.Background(), path, sub); err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithBalance 设置钱包余额
func WithBalance(amount string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.WalletBalance = decimal.RequireFromString(amount)
	}
}

// WithPlan 设置套餐等级
func WithPlan(tier model.PlanTier) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.SubscriptionPlan = tier
		s.NextPaymentDate = model.NextPaymentDate(tier, FixedNow)
	}
}

// WithAutoPayment 设置自动续费
func WithAutoPayment(enabled bool) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.AutoPayment = enabled
	}
}

// WithPaymentMethod 设置支付方式并清空卡信息
func WithPaymentMethod(method string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.PaymentMethod = method
		s.CardName = ""
		s.CardNumber = ""
		s.ExpiryDate = ""
		s.CVV = ""
	}
}
