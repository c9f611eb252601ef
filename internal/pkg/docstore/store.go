package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SubscriptionCollection 订阅文档所在集合
const SubscriptionCollection = "paymentsubscriptions"

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid document path")
)

// Store 按路径读写整份 JSON 文档
type Store interface {
	// Get 读取文档到 dest，不存在时返回 ErrNotFound
	Get(ctx context.Context, path string, dest interface{}) error
	// Set 整份覆盖写入
	Set(ctx context.Context, path string, value interface{}) error
	// Update 浅合并顶层字段，文档不存在时返回 ErrNotFound
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
}

// NormalizeUserKey 邮箱中的 . 替换为 ,，路径段中不允许出现 .
func NormalizeUserKey(email string) string {
	return strings.ReplaceAll(strings.TrimSpace(email), ".", ",")
}

// SubscriptionPath paymentsubscriptions/{userKey}
func SubscriptionPath(userKey string) string {
	return SubscriptionCollection + "/" + userKey
}

// ValidatePath 检查路径段非空且不含保留字符
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
		if strings.ContainsAny(seg, ".#$[]") {
			return fmt.Errorf("%w: forbidden character in %q", ErrInvalidPath, seg)
		}
	}
	return nil
}

// mergeFields 将 fields 合并进已有 JSON 文档
func mergeFields(existing []byte, fields map[string]interface{}) ([]byte, error) {
	doc := make(map[string]interface{})
	if err := json.Unmarshal(existing, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}
