package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTopUp   = "top_up"
	TransactionPayment = "payment"
)

// Transaction 充值与扣款的统一视图
type Transaction struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Description string          `json:"description,omitempty"`
	Recipient   string          `json:"recipient,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Transactions 合并两类历史，按时间倒序，limit <= 0 表示不限制
func (s *Subscription) Transactions(limit int) []Transaction {
	txs := make([]Transaction, 0, len(s.TopUpHistory)+len(s.PaymentHistory))
	for _, t := range s.TopUpHistory {
		txs = append(txs, Transaction{
			ID:        t.ID,
			Kind:      TransactionTopUp,
			Amount:    t.Amount,
			Method:    t.Method,
			Timestamp: t.Timestamp,
		})
	}
	for _, p := range s.PaymentHistory {
		txs = append(txs, Transaction{
			ID:          p.ID,
			Kind:        TransactionPayment,
			Amount:      p.Amount,
			Description: p.Description,
			Recipient:   p.Recipient,
			Timestamp:   p.Timestamp,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})

	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}
