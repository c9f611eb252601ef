package payment

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// 模拟支付成功率。充值与开户两处取值不同，分别保留
const (
	TopUpSuccessRate      = 0.9
	EnrollmentSuccessRate = 0.8
)

// DefaultDelay 模拟网关耗时
const DefaultDelay = 1500 * time.Millisecond

var ErrDeclined = errors.New("payment processing failed, please try a different payment method")

// Processor 支付处理
type Processor interface {
	Charge(ctx context.Context, amount decimal.Decimal, method string) error
}

// ProcessorFunc 函数适配器
type ProcessorFunc func(ctx context.Context, amount decimal.Decimal, method string) error

func (f ProcessorFunc) Charge(ctx context.Context, amount decimal.Decimal, method string) error {
	return f(ctx, amount, method)
}

// Simulator 按固定概率成功的模拟支付
type Simulator struct {
	successRate float64
	delay       time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator rng 为 nil 时使用当前时间作为种子
func NewSimulator(successRate float64, delay time.Duration, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		successRate: successRate,
		delay:       delay,
		rng:         rng,
	}
}

// Charge 等待 delay 后按成功率返回结果
func (s *Simulator) Charge(ctx context.Context, amount decimal.Decimal, method string) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll >= s.successRate {
		return ErrDeclined
	}
	return nil
}
