package model

import "github.com/shopspring/decimal"

// Plan 套餐目录条目（只读）
type Plan struct {
	Tier          PlanTier        `json:"tier"`
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle"`
	Price         decimal.Decimal `json:"price"`
	Period        string          `json:"period"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Savings       string          `json:"savings,omitempty"`
	Popular       bool            `json:"popular"`
	Trial         bool            `json:"trial"`
	Features      []string        `json:"features"`
	ColorScheme   string          `json:"color_scheme"`
}

// Free 无需付款的套餐
func (p *Plan) Free() bool {
	return p.Trial || !p.Price.IsPositive()
}
