package dto

import (
	"github.com/shopspring/decimal"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
)

// CreateSubscriptionRequest 创建订阅请求，不校验卡信息
type CreateSubscriptionRequest struct {
	PaymentMethod    string `json:"payment_method"`
	CardName         string `json:"card_name"`
	CardNumber       string `json:"card_number"`
	ExpiryDate       string `json:"expiry_date"`
	CVV              string `json:"cvv"`
	SubscriptionPlan int    `json:"subscription_plan"`
}

// EnrollRequest 开户请求
type EnrollRequest struct {
	PaymentMethod    string `json:"payment_method"`
	SubscriptionPlan int    `json:"subscription_plan"`
	Caregivers       int    `json:"caregivers" binding:"min=0,max=20"`
	card.Details
}

// SubscriptionView 对外展示的订阅，卡号脱敏且不含 CVV
type SubscriptionView struct {
	ID               string `json:"id"`
	Active           bool   `json:"active"`
	AutoPayment      bool   `json:"auto_payment"`
	SubscriptionPlan int    `json:"subscription_plan"`
	PaymentMethod    string `json:"payment_method"`
	PaymentFailed    bool   `json:"payment_failed"`
	CardName         string `json:"card_name,omitempty"`
	CardNumber       string `json:"card_number,omitempty"`
	ExpiryDate       string `json:"expiry_date,omitempty"`
	WalletBalance    string `json:"wallet_balance"`
	NextPaymentDate  string `json:"next_payment_date"`
	StartDate        string `json:"start_date"`
}

// NewSubscriptionView 转换为展示结构
func NewSubscriptionView(sub *model.Subscription) *SubscriptionView {
	if sub == nil {
		return nil
	}
	return &SubscriptionView{
		ID:               sub.ID,
		Active:           sub.Active,
		AutoPayment:      sub.AutoPayment,
		SubscriptionPlan: int(sub.SubscriptionPlan),
		PaymentMethod:    sub.PaymentMethod,
		PaymentFailed:    sub.PaymentFailed,
		CardName:         sub.CardName,
		CardNumber:       sub.MaskedCardNumber(),
		ExpiryDate:       sub.ExpiryDate,
		WalletBalance:    sub.WalletBalance.StringFixed(2),
		NextPaymentDate:  sub.NextPaymentDate,
		StartDate:        sub.StartDate,
	}
}

// AutoPaymentResponse 切换自动续费结果
type AutoPaymentResponse struct {
	AutoPayment bool `json:"auto_payment"`
}

// amountString 金额统一保留两位小数
func amountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
