package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout 日期字段统一格式（不含时间）
const DateLayout = "2006-01-02"

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// DefaultWalletBalance 新订阅的初始钱包余额
var DefaultWalletBalance = decimal.NewFromInt(100)

// PlanTier 套餐等级
type PlanTier int

const (
	PlanFreeTrial PlanTier = 0
	PlanMonthly   PlanTier = 1
	PlanAnnual    PlanTier = 2
	PlanTriennial PlanTier = 3
)

// Known 是否为已定义的套餐等级，未知等级按默认周期续费
func (t PlanTier) Known() bool {
	return t >= PlanFreeTrial && t <= PlanTriennial
}

// NextPaymentDate 根据套餐等级计算下次扣费日期
func NextPaymentDate(tier PlanTier, from time.Time) string {
	var next time.Time
	switch tier {
	case PlanFreeTrial:
		next = from.AddDate(0, 0, 15)
	case PlanMonthly:
		next = from.AddDate(0, 1, 0)
	case PlanAnnual:
		next = from.AddDate(1, 0, 0)
	case PlanTriennial:
		next = from.AddDate(3, 0, 0)
	default:
		next = from.AddDate(0, 0, 30)
	}
	return next.Format(DateLayout)
}

// TopUpRecord 充值记录
type TopUpRecord struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Timestamp time.Time       `json:"timestamp"`
}

// PaymentRecord 扣款记录
type PaymentRecord struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Recipient   string          `json:"recipient"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Subscription 用户订阅及钱包文档，存储路径 paymentsubscriptions/{userKey}
type Subscription struct {
	ID               string          `json:"id"`
	Active           bool            `json:"active"`
	AutoPayment      bool            `json:"autoPayment"`
	SubscriptionPlan PlanTier        `json:"subscriptionPlan"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentFailed    bool            `json:"paymentFailed"`
	CardName         string          `json:"cardName"`
	CardNumber       string          `json:"cardNumber"`
	ExpiryDate       string          `json:"expiryDate"`
	CVV              string          `json:"cvv"`
	WalletBalance    decimal.Decimal `json:"walletBalance"`
	TopUpHistory     []TopUpRecord   `json:"topUpHistory"`
	PaymentHistory   []PaymentRecord `json:"paymentHistory"`
	NextPaymentDate  string          `json:"nextPaymentDate"`
	StartDate        string          `json:"startDate"`
}

// SubscriptionParams 创建订阅所需字段
type SubscriptionParams struct {
	PaymentMethod    string
	CardName         string
	CardNumber       string
	ExpiryDate       string
	CVV              string
	SubscriptionPlan PlanTier
	InitialBalance   decimal.Decimal // 零值时使用 DefaultWalletBalance
}

// NewSubscription 按默认值构造一条新订阅
func NewSubscription(p SubscriptionParams, now time.Time) *Subscription {
	balance := DefaultWalletBalance
	if !p.InitialBalance.IsZero() {
		balance = p.InitialBalance
	}

	return &Subscription{
		ID:               fmt.Sprintf("sub_%d", now.UnixMilli()),
		Active:           true,
		AutoPayment:      false,
		SubscriptionPlan: p.SubscriptionPlan,
		PaymentMethod:    p.PaymentMethod,
		PaymentFailed:    false,
		CardName:         p.CardName,
		CardNumber:       p.CardNumber,
		ExpiryDate:       p.ExpiryDate,
		CVV:              p.CVV,
		WalletBalance:    balance,
		TopUpHistory:     []TopUpRecord{},
		PaymentHistory:   []PaymentRecord{},
		NextPaymentDate:  NextPaymentDate(p.SubscriptionPlan, now),
		StartDate:        now.Format(DateLayout),
	}
}

// Clone 深拷贝，历史记录切片独立
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	c.TopUpHistory = append([]TopUpRecord{}, s.TopUpHistory...)
	c.PaymentHistory = append([]PaymentRecord{}, s.PaymentHistory...)
	return &c
}

// Credit 充值入账
func (s *Subscription) Credit(amount decimal.Decimal, method string, at time.Time) (*TopUpRecord, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	record := TopUpRecord{
		ID:        uuid.NewString(),
		Amount:    amount,
		Method:    method,
		Timestamp: at,
	}
	s.TopUpHistory = append(s.TopUpHistory, record)
	s.WalletBalance = s.WalletBalance.Add(amount)
	return &record, nil
}

// Debit 从钱包扣款，余额不足时不修改任何字段
func (s *Subscription) Debit(amount decimal.Decimal, description, recipient string, at time.Time) (*PaymentRecord, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(s.WalletBalance) {
		return nil, ErrInsufficientBalance
	}

	record := PaymentRecord{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Recipient:   recipient,
		Timestamp:   at,
	}
	s.WalletBalance = s.WalletBalance.Sub(amount)
	s.PaymentHistory = append(s.PaymentHistory, record)
	return &record, nil
}

// MaskedCardNumber 只展示卡号后四位
func (s *Subscription) MaskedCardNumber() string {
	digits := make([]rune, 0, len(s.CardNumber))
	for _, r := range s.CardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return "**** " + string(digits[len(digits)-4:])
}
