package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
)

// DocumentRepository 基于 documents 表的文档存储
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) find(ctx context.Context, path string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("path = ?", path).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return &doc, nil
}

func (r *DocumentRepository) save(ctx context.Context, path string, body []byte) error {
	doc := &model.Document{
		Path: path,
		Body: string(body),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(doc).Error
}

func (r *DocumentRepository) Get(ctx context.Context, path string, dest interface{}) error {
	if err := docstore.ValidatePath(path); err != nil {
		return err
	}

	doc, err := r.find(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(doc.Body), dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (r *DocumentRepository) Set(ctx context.Context, path string, value interface{}) error {
	if err := docstore.ValidatePath(path); err != nil {
		return err
	}

	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return r.save(ctx, path, body)
}

func (r *DocumentRepository) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := docstore.ValidatePath(path); err != nil {
		return err
	}

	doc, err := r.find(ctx, path)
	if err != nil {
		return err
	}

	merged := make(map[string]interface{})
	if err := json.Unmarshal([]byte(doc.Body), &merged); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return r.save(ctx, path, body)
}

func (r *DocumentRepository) Delete(ctx context.Context, path string) error {
	if err := docstore.ValidatePath(path); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("path = ?", path).Delete(&model.Document{}).Error
}

// CountByPrefix 统计集合下的文档数
func (r *DocumentRepository) CountByPrefix(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("path LIKE ?", collection+"/%").
		Count(&count).Error
	return count, err
}
