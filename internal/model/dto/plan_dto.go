package dto

import (
	"github.com/qs3c/agedcare_server/internal/model"
)

// PlanItem 套餐展示
type PlanItem struct {
	Tier          int      `json:"tier"`
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Price         string   `json:"price"`
	Period        string   `json:"period"`
	OriginalPrice string   `json:"original_price,omitempty"`
	Savings       string   `json:"savings,omitempty"`
	Popular       bool     `json:"popular"`
	Trial         bool     `json:"trial"`
	Features      []string `json:"features"`
	ColorScheme   string   `json:"color_scheme"`
}

func NewPlanItem(p *model.Plan) *PlanItem {
	item := &PlanItem{
		Tier:        int(p.Tier),
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Price:       amountString(p.Price),
		Period:      p.Period,
		Savings:     p.Savings,
		Popular:     p.Popular,
		Trial:       p.Trial,
		Features:    p.Features,
		ColorScheme: p.ColorScheme,
	}
	if p.OriginalPrice.IsPositive() {
		item.OriginalPrice = amountString(p.OriginalPrice)
	}
	if item.Features == nil {
		item.Features = []string{}
	}
	return item
}

// QuoteResponse 套餐报价
type QuoteResponse struct {
	Plan            *PlanItem `json:"plan"`
	Caregivers      int       `json:"caregivers"`
	CaregiverCost   string    `json:"caregiver_cost"`
	Total           string    `json:"total"`
	NextPaymentDate string    `json:"next_payment_date"`
}
