package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
	"github.com/qs3c/agedcare_server/internal/repository"
	"github.com/qs3c/agedcare_server/internal/testutil"
)

type chargeRecord struct {
	amount decimal.Decimal
	method string
}

func setupEnrollmentService(t *testing.T, chargeErr error) (*EnrollmentService, *docstore.MemoryStore, *[]chargeRecord) {
	t.Helper()

	cfg := testutil.TestConfig()
	docs := docstore.NewMemoryStore()
	subs := NewSubscriptionService(repository.NewSubscriptionRepository(docs), &countingProcessor{}, cfg,
		WithClock(testutil.FixedClock),
	)
	plans := NewPlanService(cfg, testutil.FixedClock)

	charges := &[]chargeRecord{}
	processor := payment.ProcessorFunc(func(ctx context.Context, amount decimal.Decimal, method string) error {
		*charges = append(*charges, chargeRecord{amount: amount, method: method})
		return chargeErr
	})

	return NewEnrollmentService(plans, subs, processor, zaptest.NewLogger(t)), docs, charges
}

func TestEnrollmentService_Enroll_PaidPlan(t *testing.T) {
	svc, docs, charges := setupEnrollmentService(t, nil)
	email := testutil.TestEmail()

	sub, err := svc.Enroll(context.Background(), email, EnrollRequest{
		PaymentMethod:    "card",
		Card:             validCard(),
		SubscriptionPlan: model.PlanMonthly,
		Caregivers:       1,
	})
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.Len(t, *charges, 1)
	assert.True(t, decimal.RequireFromString("44.99").Equal((*charges)[0].amount))
	assert.Equal(t, "card", (*charges)[0].method)

	assert.Equal(t, model.PlanMonthly, sub.SubscriptionPlan)
	assert.Equal(t, "2026-11-15", sub.NextPaymentDate)
	assert.Equal(t, "Mary Tan", sub.CardName)
	assert.True(t, decimal.NewFromInt(100).Equal(sub.WalletBalance))

	var stored model.Subscription
	require.NoError(t, docs.Get(context.Background(), docstore.SubscriptionPath(docstore.NormalizeUserKey(email)), &stored))
	assert.Equal(t, sub.ID, stored.ID)
}

func TestEnrollmentService_Enroll_TrialNotCharged(t *testing.T) {
	svc, _, charges := setupEnrollmentService(t, nil)

	sub, err := svc.Enroll(context.Background(), testutil.TestEmail(), EnrollRequest{
		PaymentMethod:    "trial",
		SubscriptionPlan: model.PlanFreeTrial,
		Caregivers:       2,
	})
	require.NoError(t, err)

	assert.Empty(t, *charges)
	assert.Equal(t, "2026-10-30", sub.NextPaymentDate)
}

func TestEnrollmentService_Enroll_Declined(t *testing.T) {
	svc, docs, _ := setupEnrollmentService(t, errors.New("gateway says no"))

	sub, err := svc.Enroll(context.Background(), testutil.TestEmail(), EnrollRequest{
		PaymentMethod:    "card",
		Card:             validCard(),
		SubscriptionPlan: model.PlanAnnual,
	})

	assert.ErrorIs(t, err, payment.ErrDeclined)
	assert.Nil(t, sub)
	assert.Equal(t, 0, docs.Len())
}

func TestEnrollmentService_Enroll_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     EnrollRequest
		wantErr error
	}{
		{
			name:    "unknown plan",
			req:     EnrollRequest{PaymentMethod: "", SubscriptionPlan: model.PlanTier(8)},
			wantErr: ErrPlanNotFound,
		},
		{
			name:    "negative caregivers",
			req:     EnrollRequest{PaymentMethod: "card", SubscriptionPlan: model.PlanMonthly, Caregivers: -2},
			wantErr: ErrInvalidCaregivers,
		},
		{
			name:    "missing payment method",
			req:     EnrollRequest{SubscriptionPlan: model.PlanMonthly},
			wantErr: ErrPaymentMethodRequired,
		},
		{
			name:    "bad card",
			req:     EnrollRequest{PaymentMethod: "Debit Card", Card: card.Details{Number: "1234", Expiry: "12/28", CVV: "123"}, SubscriptionPlan: model.PlanMonthly},
			wantErr: card.ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, docs, charges := setupEnrollmentService(t, nil)

			_, err := svc.Enroll(context.Background(), testutil.TestEmail(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, *charges)
			assert.Equal(t, 0, docs.Len())
		})
	}
}

func TestEnrollmentService_Enroll_NonCardSkipsCardChecks(t *testing.T) {
	svc, _, charges := setupEnrollmentService(t, nil)

	_, err := svc.Enroll(context.Background(), testutil.TestEmail(), EnrollRequest{
		PaymentMethod:    "PayNow",
		SubscriptionPlan: model.PlanTriennial,
	})

	require.NoError(t, err)
	require.Len(t, *charges, 1)
	assert.True(t, decimal.NewFromInt(799).Equal((*charges)[0].amount))
}
