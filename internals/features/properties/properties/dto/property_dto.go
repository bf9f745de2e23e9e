package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/properties/model"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/helpers/dbtime"
)

/* ===============================
   Requests
=================================*/

// CreatePropertyRequest accepts numbers as JSON numbers or strings; the posting form sends strings.
type CreatePropertyRequest struct {
	Title         string            `json:"title" validate:"required,min=3,max=200"`
	Description   string            `json:"description" validate:"max=5000"`
	PropertyType  string            `json:"propertyType" validate:"required,oneof=apartment house villa independent_floor studio pg plot office shop showroom warehouse coworking land"`
	ListingType   string            `json:"listingType" validate:"required,oneof=rent sale"`
	IsCommercial  *helper.FlexBool  `json:"isCommercial"`
	CategoryID    *uuid.UUID        `json:"categoryId"`
	Price         *helper.FlexFloat `json:"price" validate:"omitempty,gte=0"`
	Rent          *helper.FlexFloat `json:"rent" validate:"omitempty,gte=0"`
	SalePrice     *helper.FlexFloat `json:"salePrice" validate:"omitempty,gte=0"`
	Deposit       *helper.FlexFloat `json:"deposit" validate:"omitempty,gte=0"`
	Address       string            `json:"address" validate:"required,max=300"`
	Locality      string            `json:"locality" validate:"max=120"`
	City          string            `json:"city" validate:"required,max=120"`
	State         string            `json:"state" validate:"required,max=120"`
	Pincode       string            `json:"pincode" validate:"omitempty,max=12"`
	Latitude      *helper.FlexFloat `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *helper.FlexFloat `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms      *helper.FlexInt   `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	Bathrooms     *helper.FlexInt   `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	Area          *helper.FlexFloat `json:"area" validate:"omitempty,gte=0"`
	AreaUnit      string            `json:"areaUnit" validate:"omitempty,oneof=sqft sqm sqyd acre"`
	Furnishing    string            `json:"furnishing" validate:"omitempty,oneof=unfurnished semi_furnished fully_furnished"`
	Amenities     []string          `json:"amenities" validate:"omitempty,max=60,dive,max=60"`
	AvailableFrom *dbtime.Date      `json:"availableFrom"`
	ExpiresAt     *dbtime.Date      `json:"expiresAt"`
	Status        string            `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

// PriceErrors reports the listing-type pricing rule: rent listings need rent or price,
// sale listings need salePrice or price.
func (r *CreatePropertyRequest) PriceErrors() map[string][]string {
	if r.Price != nil || (r.ListingType == constants.ListingRent && r.Rent != nil) ||
		(r.ListingType == constants.ListingSale && r.SalePrice != nil) {
		return nil
	}
	return map[string][]string{"price": {"is required"}}
}

func (r *CreatePropertyRequest) ToModel(ownerID uuid.UUID) model.PropertyModel {
	m := model.PropertyModel{
		Title:         strings.TrimSpace(r.Title),
		Description:   strings.TrimSpace(r.Description),
		PropertyType:  r.PropertyType,
		ListingType:   r.ListingType,
		CategoryID:    r.CategoryID,
		Price:         helper.FloatPtr(r.Price),
		Rent:          helper.FloatPtr(r.Rent),
		SalePrice:     helper.FloatPtr(r.SalePrice),
		Deposit:       helper.FloatPtr(r.Deposit),
		Address:       strings.TrimSpace(r.Address),
		Locality:      strings.TrimSpace(r.Locality),
		City:          strings.TrimSpace(r.City),
		State:         strings.TrimSpace(r.State),
		Pincode:       strings.TrimSpace(r.Pincode),
		Latitude:      helper.FloatPtr(r.Latitude),
		Longitude:     helper.FloatPtr(r.Longitude),
		Bedrooms:      helper.IntPtr(r.Bedrooms),
		Bathrooms:     helper.IntPtr(r.Bathrooms),
		Area:          helper.FloatPtr(r.Area),
		AreaUnit:      r.AreaUnit,
		Furnishing:    r.Furnishing,
		Amenities:     datatypes.JSONSlice[string](CleanAmenities(r.Amenities)),
		AvailableFrom: r.AvailableFrom.Ptr(),
		ExpiresAt:     r.ExpiresAt.Ptr(),
		Status:        r.Status,
		OwnerID:       ownerID,
	}
	if m.AreaUnit == "" && m.Area != nil {
		m.AreaUnit = "sqft"
	}
	if m.Status == "" {
		m.Status = constants.PropertyActive
	}
	if r.IsCommercial != nil {
		m.IsCommercial = bool(*r.IsCommercial)
	} else {
		m.IsCommercial = constants.CommercialPropertyTypes[m.PropertyType]
	}
	NormalizePricing(&m)
	return m
}

// NormalizePricing fills the type-specific price from the generic one and vice versa.
func NormalizePricing(m *model.PropertyModel) {
	switch m.ListingType {
	case constants.ListingRent:
		if m.Rent == nil && m.Price != nil {
			v := *m.Price
			m.Rent = &v
		}
		if m.Price == nil && m.Rent != nil {
			v := *m.Rent
			m.Price = &v
		}
	case constants.ListingSale:
		if m.SalePrice == nil && m.Price != nil {
			v := *m.Price
			m.SalePrice = &v
		}
		if m.Price == nil && m.SalePrice != nil {
			v := *m.SalePrice
			m.Price = &v
		}
	}
}

func CleanAmenities(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		k := strings.ToLower(a)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}

// UpdatePropertyRequest has no ownerId: ownership never changes through an update.
type UpdatePropertyRequest struct {
	Title         *string           `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string           `json:"description" validate:"omitempty,max=5000"`
	PropertyType  *string           `json:"propertyType" validate:"omitempty,oneof=apartment house villa independent_floor studio pg plot office shop showroom warehouse coworking land"`
	ListingType   *string           `json:"listingType" validate:"omitempty,oneof=rent sale"`
	IsCommercial  *helper.FlexBool  `json:"isCommercial"`
	CategoryID    *uuid.UUID        `json:"categoryId"`
	Price         *helper.FlexFloat `json:"price" validate:"omitempty,gte=0"`
	Rent          *helper.FlexFloat `json:"rent" validate:"omitempty,gte=0"`
	SalePrice     *helper.FlexFloat `json:"salePrice" validate:"omitempty,gte=0"`
	Deposit       *helper.FlexFloat `json:"deposit" validate:"omitempty,gte=0"`
	Address       *string           `json:"address" validate:"omitempty,min=1,max=300"`
	Locality      *string           `json:"locality" validate:"omitempty,max=120"`
	City          *string           `json:"city" validate:"omitempty,min=1,max=120"`
	State         *string           `json:"state" validate:"omitempty,min=1,max=120"`
	Pincode       *string           `json:"pincode" validate:"omitempty,max=12"`
	Latitude      *helper.FlexFloat `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *helper.FlexFloat `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms      *helper.FlexInt   `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	Bathrooms     *helper.FlexInt   `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	Area          *helper.FlexFloat `json:"area" validate:"omitempty,gte=0"`
	AreaUnit      *string           `json:"areaUnit" validate:"omitempty,oneof=sqft sqm sqyd acre"`
	Furnishing    *string           `json:"furnishing" validate:"omitempty,oneof=unfurnished semi_furnished fully_furnished"`
	Amenities     *[]string         `json:"amenities" validate:"omitempty,max=60,dive,max=60"`
	AvailableFrom *dbtime.Date      `json:"availableFrom"`
	ExpiresAt     *dbtime.Date      `json:"expiresAt"`
	Status        *string           `json:"status" validate:"omitempty,oneof=active inactive pending rented sold"`
}

func (r *UpdatePropertyRequest) Apply(m *model.PropertyModel) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setStr(&m.Title, r.Title)
	setStr(&m.Description, r.Description)
	setStr(&m.Address, r.Address)
	setStr(&m.Locality, r.Locality)
	setStr(&m.City, r.City)
	setStr(&m.State, r.State)
	setStr(&m.Pincode, r.Pincode)
	setStr(&m.AreaUnit, r.AreaUnit)
	setStr(&m.Furnishing, r.Furnishing)
	setStr(&m.Status, r.Status)
	if r.PropertyType != nil {
		m.PropertyType = *r.PropertyType
		if r.IsCommercial == nil {
			m.IsCommercial = constants.CommercialPropertyTypes[m.PropertyType]
		}
	}
	setStr(&m.ListingType, r.ListingType)
	if r.IsCommercial != nil {
		m.IsCommercial = bool(*r.IsCommercial)
	}
	if r.CategoryID != nil {
		m.CategoryID = r.CategoryID
	}
	if r.Price != nil {
		m.Price = helper.FloatPtr(r.Price)
	}
	if r.Rent != nil {
		m.Rent = helper.FloatPtr(r.Rent)
	}
	if r.SalePrice != nil {
		m.SalePrice = helper.FloatPtr(r.SalePrice)
	}
	if r.Deposit != nil {
		m.Deposit = helper.FloatPtr(r.Deposit)
	}
	if r.Latitude != nil {
		m.Latitude = helper.FloatPtr(r.Latitude)
	}
	if r.Longitude != nil {
		m.Longitude = helper.FloatPtr(r.Longitude)
	}
	if r.Bedrooms != nil {
		m.Bedrooms = helper.IntPtr(r.Bedrooms)
	}
	if r.Bathrooms != nil {
		m.Bathrooms = helper.IntPtr(r.Bathrooms)
	}
	if r.Area != nil {
		m.Area = helper.FloatPtr(r.Area)
	}
	if r.Amenities != nil {
		m.Amenities = datatypes.JSONSlice[string](CleanAmenities(*r.Amenities))
	}
	if r.AvailableFrom != nil {
		m.AvailableFrom = r.AvailableFrom.Ptr()
	}
	if r.ExpiresAt != nil {
		m.ExpiresAt = r.ExpiresAt.Ptr()
	}
	NormalizePricing(m)
	m.UpdatedAt = time.Now()
}

type AdminStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive pending rented sold expired"`
}

/* ===============================
   Responses
=================================*/

type PropertyResponse struct {
	model.PropertyModel
	EffectivePrice *float64 `json:"effectivePrice"`
	PrimaryImage   *string  `json:"primaryImage"`
	ImageCount     int      `json:"imageCount"`
}

func NewPropertyResponse(m model.PropertyModel) PropertyResponse {
	return PropertyResponse{PropertyModel: m, EffectivePrice: m.EffectivePrice()}
}

type OwnerBrief struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email"`
	Phone *string   `json:"phone"`
}

type PropertyImageBrief struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `json:"displayOrder"`
	IsPrimary    bool      `json:"isPrimary"`
	IsApproved   bool      `json:"isApproved"`
	IsVideo      bool      `json:"isVideo"`
}

type PropertyDetailResponse struct {
	PropertyResponse
	Images []PropertyImageBrief `json:"images"`
	Owner  *OwnerBrief          `json:"owner,omitempty"`
}
