package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	KeyOrganization = "organization"
	KeyFooter       = "footer"
)

// SiteSettingModel is a keyed JSON document. Each key has a typed shape in dto.
type SiteSettingModel struct {
	Key       string         `gorm:"size:80;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedBy *string        `gorm:"size:36" json:"updatedBy"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SiteSettingModel) TableName() string { return "site_settings" }
