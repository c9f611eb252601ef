package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
)

// EnrollRequest 开户并选择套餐
type EnrollRequest struct {
	PaymentMethod    string
	Card             card.Details
	SubscriptionPlan model.PlanTier
	Caregivers       int
}

// EnrollmentService 开户流程：校验、首期扣款、创建订阅
type EnrollmentService struct {
	plans         *PlanService
	subscriptions *SubscriptionService
	processor     payment.Processor
	logger        *zap.Logger
	now           func() time.Time
}

func NewEnrollmentService(
	plans *PlanService,
	subscriptions *SubscriptionService,
	processor payment.Processor,
	logger *zap.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		plans:         plans,
		subscriptions: subscriptions,
		processor:     processor,
		logger:        logger,
		now:           subscriptions.now,
	}
}

// Enroll 收取首期费用后创建订阅，试用和免费套餐不扣款
func (s *EnrollmentService) Enroll(ctx context.Context, email string, req EnrollRequest) (*model.Subscription, error) {
	quote, err := s.plans.Quote(req.SubscriptionPlan, req.Caregivers)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, ErrPaymentMethodRequired
	}
	if card.IsCardMethod(req.PaymentMethod) {
		if err := card.Validate(req.Card, s.now()); err != nil {
			return nil, err
		}
	}

	if !quote.Plan.Free() {
		if err := s.processor.Charge(ctx, quote.Total, req.PaymentMethod); err != nil {
			s.logger.Warn("enrollment charge failed",
				zap.String("email", email),
				zap.String("amount", quote.Total.String()),
				zap.Error(err),
			)
			return nil, payment.ErrDeclined
		}
	}

	ctrl := s.subscriptions.Controller(email)
	ok := ctrl.AddSubscription(ctx, NewSubscriptionRequest{
		PaymentMethod:    req.PaymentMethod,
		CardName:         req.Card.Name,
		CardNumber:       req.Card.Number,
		ExpiryDate:       req.Card.Expiry,
		CVV:              req.Card.CVV,
		SubscriptionPlan: req.SubscriptionPlan,
	})
	if !ok {
		return nil, ctrl.Err()
	}

	return ctrl.Subscription(), nil
}
