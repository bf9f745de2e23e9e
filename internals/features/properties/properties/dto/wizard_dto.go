package dto

import (
	"github.com/google/uuid"

	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/helpers/dbtime"
)

// Wizard steps in the order the posting form walks them.
const (
	StepType         = "type"
	StepLocation     = "location"
	StepDetails      = "details"
	StepPricing      = "pricing"
	StepAvailability = "availability"
	StepPhotos       = "photos"
	StepReview       = "review"
)

var WizardSteps = []string{StepType, StepLocation, StepDetails, StepPricing, StepAvailability, StepPhotos, StepReview}

// WizardData is the accumulated form state; each step only reads its own fields.
type WizardData struct {
	Segment       string            `json:"segment"`
	PropertyType  string            `json:"propertyType"`
	ListingType   string            `json:"listingType"`
	CategoryID    *uuid.UUID        `json:"categoryId"`
	Address       string            `json:"address"`
	Locality      string            `json:"locality"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	Pincode       string            `json:"pincode"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Bedrooms      *helper.FlexInt   `json:"bedrooms"`
	Bathrooms     *helper.FlexInt   `json:"bathrooms"`
	Area          *helper.FlexFloat `json:"area"`
	Furnishing    string            `json:"furnishing"`
	Amenities     []string          `json:"amenities"`
	Price         *helper.FlexFloat `json:"price"`
	Rent          *helper.FlexFloat `json:"rent"`
	SalePrice     *helper.FlexFloat `json:"salePrice"`
	Deposit       *helper.FlexFloat `json:"deposit"`
	AvailableFrom *dbtime.Date      `json:"availableFrom"`
	Images        []string          `json:"images"`
}

type WizardValidateRequest struct {
	Step string     `json:"step" validate:"required,oneof=type location details pricing availability photos review"`
	Data WizardData `json:"data"`
}

type WizardValidateResponse struct {
	Step     string              `json:"step"`
	Valid    bool                `json:"valid"`
	Errors   map[string][]string `json:"errors"`
	NextStep *string             `json:"nextStep"`
	// Verified is only reported for the review step.
	Verified *bool `json:"verified,omitempty"`
}
