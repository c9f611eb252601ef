package service

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/model"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrInvalidCaregivers = errors.New("caregivers must not be negative")
)

// Quote 套餐报价
type Quote struct {
	Plan            *model.Plan
	Caregivers      int
	CaregiverCost   decimal.Decimal
	Total           decimal.Decimal
	NextPaymentDate string
}

// PlanService 只读套餐目录，来自配置
type PlanService struct {
	plans          []*model.Plan
	byTier         map[model.PlanTier]*model.Plan
	caregiverPrice decimal.Decimal
	now            func() time.Time
}

func NewPlanService(cfg *config.Config, now func() time.Time) *PlanService {
	if now == nil {
		now = time.Now
	}

	s := &PlanService{
		byTier:         make(map[model.PlanTier]*model.Plan),
		caregiverPrice: decimal.NewFromFloat(cfg.CaregiverPrice),
		now:            now,
	}

	for _, pc := range cfg.Plans {
		p := &model.Plan{
			Tier:          model.PlanTier(pc.Tier),
			ID:            pc.ID,
			Title:         pc.Title,
			Subtitle:      pc.Subtitle,
			Price:         decimal.NewFromFloat(pc.Price),
			Period:        pc.Period,
			OriginalPrice: decimal.NewFromFloat(pc.OriginalPrice),
			Savings:       pc.Savings,
			Popular:       pc.Popular,
			Trial:         pc.Trial,
			Features:      append([]string{}, pc.Features...),
			ColorScheme:   pc.ColorScheme,
		}
		// 同一等级重复配置时以后者为准
		if existing, dup := s.byTier[p.Tier]; dup {
			*existing = *p
			continue
		}
		s.plans = append(s.plans, p)
		s.byTier[p.Tier] = p
	}

	sort.SliceStable(s.plans, func(i, j int) bool {
		return s.plans[i].Tier < s.plans[j].Tier
	})
	return s
}

// List 按等级排序的全部套餐
func (s *PlanService) List() []*model.Plan {
	out := make([]*model.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *PlanService) Get(tier model.PlanTier) (*model.Plan, error) {
	p, ok := s.byTier[tier]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

// Quote 套餐价格加上额外护理人员费用
func (s *PlanService) Quote(tier model.PlanTier, caregivers int) (*Quote, error) {
	if caregivers < 0 {
		return nil, ErrInvalidCaregivers
	}

	p, err := s.Get(tier)
	if err != nil {
		return nil, err
	}

	cost := s.caregiverPrice.Mul(decimal.NewFromInt(int64(caregivers)))
	return &Quote{
		Plan:            p,
		Caregivers:      caregivers,
		CaregiverCost:   cost,
		Total:           p.Price.Add(cost),
		NextPaymentDate: model.NextPaymentDate(tier, s.now()),
	}, nil
}
