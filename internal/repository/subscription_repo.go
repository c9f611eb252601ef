package repository

import (
	"context"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
)

// SubscriptionRepository 订阅文档读写，userKey 须已经过 NormalizeUserKey
type SubscriptionRepository struct {
	store docstore.Store
}

func NewSubscriptionRepository(store docstore.Store) *SubscriptionRepository {
	return &SubscriptionRepository{store: store}
}

// GetByUserKey 不存在时返回 docstore.ErrNotFound
func (r *SubscriptionRepository) GetByUserKey(ctx context.Context, userKey string) (*model.Subscription, error) {
	var sub model.Subscription
	if err := r.store.Get(ctx, docstore.SubscriptionPath(userKey), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Persist 整份覆盖写入
func (r *SubscriptionRepository) Persist(ctx context.Context, userKey string, sub *model.Subscription) error {
	return r.store.Set(ctx, docstore.SubscriptionPath(userKey), sub)
}
