package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

type BlogPostModel struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"size:250;not null" json:"title"`
	Slug            string                      `gorm:"size:280;not null;uniqueIndex" json:"slug"`
	Excerpt         string                      `gorm:"size:600" json:"excerpt"`
	Content         string                      `gorm:"type:text;not null" json:"content"`
	CoverImage      string                      `gorm:"size:1000" json:"coverImage"`
	Category        string                      `gorm:"size:80;index" json:"category"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	AuthorID        *uuid.UUID                  `gorm:"type:uuid" json:"authorId"`
	AuthorName      string                      `gorm:"size:120" json:"authorName"`
	Status          string                      `gorm:"size:20;not null;index" json:"status"`
	IsFeatured      bool                        `gorm:"not null" json:"isFeatured"`
	ViewCount       int64                       `gorm:"not null" json:"viewCount"`
	MetaTitle       string                      `gorm:"size:250" json:"metaTitle"`
	MetaDescription string                      `gorm:"size:500" json:"metaDescription"`
	PublishedAt     *time.Time                  `gorm:"index" json:"publishedAt"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }

func (m *BlogPostModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Tags == nil {
		m.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}
