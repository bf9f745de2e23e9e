package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyCategoryModel is either a main category (ParentID nil) or a subcategory.
// IsActive is advisory; listing does not filter on it.
type PropertyCategoryModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:120;not null" json:"name"`
	Slug         string     `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Description  string     `gorm:"type:text" json:"description"`
	Icon         string     `gorm:"size:120" json:"icon"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parentId"`
	Segment      string     `gorm:"size:20;not null;index" json:"segment"`
	SupportsRent bool       `gorm:"not null" json:"supportsRent"`
	SupportsSale bool       `gorm:"not null" json:"supportsSale"`
	IsCommercial bool       `gorm:"not null" json:"isCommercial"`
	DisplayOrder int        `gorm:"not null" json:"displayOrder"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PropertyCategoryModel) TableName() string { return "property_categories" }

func (m *PropertyCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
