package model

import (
	"time"
)

// Document 以路径为主键的 JSON 文档
type Document struct {
	Path      string    `gorm:"primaryKey;size:255" json:"path"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
