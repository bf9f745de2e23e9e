package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "estatehub_backend/internals/features/users/user/model"
)

// PropertyModel is a listing. Rent listings carry Rent, sale listings Price/SalePrice;
// both are not required to be populated together.
type PropertyModel struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string                      `gorm:"size:200;not null" json:"title"`
	Description   string                      `gorm:"type:text" json:"description"`
	PropertyType  string                      `gorm:"size:40;not null;index" json:"propertyType"`
	ListingType   string                      `gorm:"size:10;not null;index" json:"listingType"`
	IsCommercial  bool                        `gorm:"not null;index" json:"isCommercial"`
	CategoryID    *uuid.UUID                  `gorm:"type:uuid;index" json:"categoryId"`
	Price         *float64                    `json:"price"`
	Rent          *float64                    `json:"rent"`
	SalePrice     *float64                    `json:"salePrice"`
	Deposit       *float64                    `json:"deposit"`
	Address       string                      `gorm:"size:300;not null" json:"address"`
	Locality      string                      `gorm:"size:120;index" json:"locality"`
	City          string                      `gorm:"size:120;not null;index" json:"city"`
	State         string                      `gorm:"size:120;not null" json:"state"`
	Pincode       string                      `gorm:"size:12" json:"pincode"`
	Latitude      *float64                    `json:"latitude"`
	Longitude     *float64                    `json:"longitude"`
	Bedrooms      *int                        `gorm:"index" json:"bedrooms"`
	Bathrooms     *int                        `json:"bathrooms"`
	Area          *float64                    `json:"area"`
	AreaUnit      string                      `gorm:"size:20" json:"areaUnit"`
	Furnishing    string                      `gorm:"size:30" json:"furnishing"`
	Amenities     datatypes.JSONSlice[string] `json:"amenities"`
	AvailableFrom *time.Time                  `json:"availableFrom"`
	Status        string                      `gorm:"size:20;not null;index" json:"status"`
	IsFeatured    bool                        `gorm:"not null;index" json:"isFeatured"`
	IsPremium     bool                        `gorm:"not null" json:"isPremium"`
	ViewCount     int64                       `gorm:"not null" json:"viewCount"`
	OwnerID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"ownerId"`
	ExpiresAt     *time.Time                  `gorm:"index" json:"expiresAt"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner *userModel.UserModel `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PropertyModel) TableName() string { return "properties" }

func (p *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Amenities == nil {
		p.Amenities = datatypes.JSONSlice[string]{}
	}
	return nil
}

// EffectivePrice is what listings are priced and sorted by.
func (p *PropertyModel) EffectivePrice() *float64 {
	if p.ListingType == "rent" {
		if p.Rent != nil {
			return p.Rent
		}
		return p.Price
	}
	if p.SalePrice != nil {
		return p.SalePrice
	}
	return p.Price
}

// EffectivePriceSQL mirrors EffectivePrice for filters and ordering.
const EffectivePriceSQL = "(CASE WHEN properties.listing_type = 'rent' THEN COALESCE(properties.rent, properties.price) ELSE COALESCE(properties.sale_price, properties.price) END)"
