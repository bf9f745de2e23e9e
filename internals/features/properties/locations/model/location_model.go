package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Slug      string    `gorm:"size:140;not null;uniqueIndex" json:"slug"`
	State     string    `gorm:"size:120;not null" json:"state"`
	IsActive  bool      `gorm:"not null;index" json:"isActive"`
	IsPopular bool      `gorm:"not null" json:"isPopular"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CityModel) TableName() string { return "cities" }

func (m *CityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// LocalityModel belongs to exactly one city; the slug is unique within it.
type LocalityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CityID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_localities_city_slug" json:"cityId"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Slug      string    `gorm:"size:140;not null;uniqueIndex:uq_localities_city_slug" json:"slug"`
	Pincode   string    `gorm:"size:12" json:"pincode"`
	IsActive  bool      `gorm:"not null;index" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	City *CityModel `gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (LocalityModel) TableName() string { return "localities" }

func (m *LocalityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
