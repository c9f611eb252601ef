package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
)

// TopUpRequest 钱包充值请求，卡支付时需附带卡信息
type TopUpRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	card.Details
}

// PaymentRequest 钱包支付请求
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=200"`
	Recipient   string          `json:"recipient" binding:"required,max=100"`
}

// WalletResponse 钱包概览
type WalletResponse struct {
	Balance         string `json:"balance"`
	AutoPayment     bool   `json:"auto_payment"`
	NextPaymentDate string `json:"next_payment_date"`
	TopUpCount      int    `json:"top_up_count"`
	PaymentCount    int    `json:"payment_count"`
}

func NewWalletResponse(sub *model.Subscription) *WalletResponse {
	return &WalletResponse{
		Balance:         amountString(sub.WalletBalance),
		AutoPayment:     sub.AutoPayment,
		NextPaymentDate: sub.NextPaymentDate,
		TopUpCount:      len(sub.TopUpHistory),
		PaymentCount:    len(sub.PaymentHistory),
	}
}

// TransactionItem 交易记录
type TransactionItem struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Method      string `json:"method,omitempty"`
	Description string `json:"description,omitempty"`
	Recipient   string `json:"recipient,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// TransactionListResponse 交易记录列表
type TransactionListResponse struct {
	Total int                `json:"total"`
	Items []*TransactionItem `json:"items"`
}

func NewTransactionListResponse(txs []model.Transaction) *TransactionListResponse {
	items := make([]*TransactionItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, &TransactionItem{
			ID:          tx.ID,
			Kind:        tx.Kind,
			Amount:      amountString(tx.Amount),
			Method:      tx.Method,
			Description: tx.Description,
			Recipient:   tx.Recipient,
			Timestamp:   tx.Timestamp.Format(time.RFC3339),
		})
	}
	return &TransactionListResponse{
		Total: len(items),
		Items: items,
	}
}
