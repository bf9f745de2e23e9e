package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageContentModel is one CMS page, addressed by its unique key (e.g. "about", "terms").
type PageContentModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PageKey         string         `gorm:"size:120;not null;uniqueIndex" json:"pageKey"`
	Title           string         `gorm:"size:250;not null" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	Sections        datatypes.JSON `json:"sections"`
	MetaTitle       string         `gorm:"size:250" json:"metaTitle"`
	MetaDescription string         `gorm:"size:500" json:"metaDescription"`
	IsPublished     bool           `gorm:"not null" json:"isPublished"`
	UpdatedBy       *uuid.UUID     `gorm:"type:uuid" json:"updatedBy"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PageContentModel) TableName() string { return "page_contents" }

func (m *PageContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PageVersionModel is an immutable snapshot of a page taken before it was overwritten.
// VersionNumber increases by one per page.
type PageVersionModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PageID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_page_versions_page_number" json:"pageId"`
	VersionNumber   int            `gorm:"not null;uniqueIndex:uq_page_versions_page_number" json:"versionNumber"`
	PageKey         string         `gorm:"size:120;not null;index" json:"pageKey"`
	Title           string         `gorm:"size:250;not null" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	Sections        datatypes.JSON `json:"sections"`
	MetaTitle       string         `gorm:"size:250" json:"metaTitle"`
	MetaDescription string         `gorm:"size:500" json:"metaDescription"`
	IsPublished     bool           `gorm:"not null" json:"isPublished"`
	ChangeNote      string         `gorm:"size:300" json:"changeNote"`
	CreatedBy       *uuid.UUID     `gorm:"type:uuid" json:"createdBy"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`

	Page *PageContentModel `gorm:"foreignKey:PageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PageVersionModel) TableName() string { return "page_versions" }

func (m *PageVersionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate keeps versions immutable.
func (m *PageVersionModel) BeforeUpdate(tx *gorm.DB) error {
	return ErrVersionImmutable
}
