package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelWalletEvents = "wallet_events"
)

// 事件类型
const (
	EventSubscriptionCreated = "subscription_created"
	EventWalletToppedUp      = "wallet_topped_up"
	EventPaymentMade         = "payment_made"
	EventAutoPaymentToggled  = "auto_payment_toggled"
)

// 事件对应的提示消息
var EventMessages = map[string]string{
	EventSubscriptionCreated: "Subscription activated",
	EventWalletToppedUp:      "Wallet topped up",
	EventPaymentMade:         "Payment completed",
	EventAutoPaymentToggled:  "Auto-payment setting updated",
}

// WalletEvent 订阅/钱包变更事件
type WalletEvent struct {
	Type           string    `json:"type"`
	UserKey        string    `json:"user_key"`
	SubscriptionID string    `json:"subscription_id"`
	Amount         string    `json:"amount,omitempty"`
	Balance        string    `json:"balance"`
	AutoPayment    bool      `json:"auto_payment"`
	Message        string    `json:"message,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布钱包事件
func (p *Publisher) Publish(ctx context.Context, evt *WalletEvent) error {
	if evt.Message == "" {
		evt.Message = EventMessages[evt.Type]
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet event: %w", err)
	}

	return p.client.Publish(ctx, ChannelWalletEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 阻塞接收钱包事件，直到 ctx 结束
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*WalletEvent)) error {
	sub := s.client.Subscribe(ctx, ChannelWalletEvents)
	defer sub.Close()

	// 等待订阅确认，避免在订阅生效前错过消息
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var evt WalletEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue // 忽略解析错误
			}

			handler(&evt)
		}
	}
}
