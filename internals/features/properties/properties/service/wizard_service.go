package service

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/properties/properties/dto"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/helpers/dbtime"
)

const maxWizardImages = 30

var rePincode = regexp.MustCompile(`^[0-9]{4,10}$`)

// wizardNow is swapped in tests.
var wizardNow = time.Now

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) { fe[field] = append(fe[field], msg) }

// ValidateStep checks one wizard step. The review step checks every step before it.
func ValidateStep(step string, d dto.WizardData) map[string][]string {
	fe := fieldErrors{}
	switch step {
	case dto.StepType:
		validateType(d, fe)
	case dto.StepLocation:
		validateLocation(d, fe)
	case dto.StepDetails:
		validateDetails(d, fe)
	case dto.StepPricing:
		validatePricing(d, fe)
	case dto.StepAvailability:
		validateAvailability(d, fe)
	case dto.StepPhotos:
		validatePhotos(d, fe)
	case dto.StepReview:
		validateType(d, fe)
		validateLocation(d, fe)
		validateDetails(d, fe)
		validatePricing(d, fe)
		validateAvailability(d, fe)
		validatePhotos(d, fe)
	default:
		fe.add("step", "is invalid")
	}
	return fe
}

// NextStep is the step after s, or nil after review.
func NextStep(s string) *string {
	i := slices.Index(dto.WizardSteps, s)
	if i < 0 || i+1 >= len(dto.WizardSteps) {
		return nil
	}
	next := dto.WizardSteps[i+1]
	return &next
}

func validateType(d dto.WizardData, fe fieldErrors) {
	if d.PropertyType == "" {
		fe.add("propertyType", "is required")
	} else if !slices.Contains(constants.PropertyTypes, d.PropertyType) {
		fe.add("propertyType", "is invalid")
	}
	switch d.ListingType {
	case "":
		fe.add("listingType", "is required")
	case constants.ListingRent, constants.ListingSale:
	default:
		fe.add("listingType", "must be one of: rent sale")
	}
	if d.Segment == constants.SegmentCommercial && d.PropertyType != "" &&
		!constants.CommercialPropertyTypes[d.PropertyType] && d.PropertyType != "land" && d.PropertyType != "plot" {
		fe.add("propertyType", "is not a commercial property type")
	}
	if d.Segment == constants.SegmentBuy && d.ListingType == constants.ListingRent {
		fe.add("listingType", "must be sale for the buy segment")
	}
}

func validateLocation(d dto.WizardData, fe fieldErrors) {
	if strings.TrimSpace(d.Address) == "" {
		fe.add("address", "is required")
	}
	if strings.TrimSpace(d.City) == "" {
		fe.add("city", "is required")
	}
	if strings.TrimSpace(d.State) == "" {
		fe.add("state", "is required")
	}
	if p := strings.TrimSpace(d.Pincode); p != "" && !rePincode.MatchString(p) {
		fe.add("pincode", "must be 4 to 10 digits")
	}
}

// Land, plots and commercial space have no bedroom count.
func needsBedrooms(d dto.WizardData) bool {
	if constants.CommercialPropertyTypes[d.PropertyType] {
		return false
	}
	return d.PropertyType != "plot" && d.PropertyType != "land"
}

func validateDetails(d dto.WizardData, fe fieldErrors) {
	if n := len(strings.TrimSpace(d.Title)); n < 3 {
		fe.add("title", "must be at least 3")
	} else if n > 200 {
		fe.add("title", "must be at most 200")
	}
	if needsBedrooms(d) && d.Bedrooms == nil {
		fe.add("bedrooms", "is required")
	}
	if d.Bedrooms != nil && (*d.Bedrooms < 0 || *d.Bedrooms > 50) {
		fe.add("bedrooms", "must be between 0 and 50")
	}
	if d.Bathrooms != nil && (*d.Bathrooms < 0 || *d.Bathrooms > 50) {
		fe.add("bathrooms", "must be between 0 and 50")
	}
	if d.Area != nil && *d.Area <= 0 {
		fe.add("area", "must be greater than 0")
	}
	if d.Furnishing != "" && !slices.Contains(constants.FurnishingTypes, d.Furnishing) {
		fe.add("furnishing", "is invalid")
	}
}

func validatePricing(d dto.WizardData, fe fieldErrors) {
	positive := func(v ...*float64) bool {
		for _, p := range v {
			if p != nil && *p > 0 {
				return true
			}
		}
		return false
	}
	price := helper.FloatPtr(d.Price)
	switch d.ListingType {
	case constants.ListingRent:
		if !positive(helper.FloatPtr(d.Rent), price) {
			fe.add("rent", "must be greater than 0")
		}
	case constants.ListingSale:
		if !positive(helper.FloatPtr(d.SalePrice), price) {
			fe.add("salePrice", "must be greater than 0")
		}
	default:
		if !positive(price) {
			fe.add("price", "must be greater than 0")
		}
	}
	if d.Deposit != nil && *d.Deposit < 0 {
		fe.add("deposit", "must be greater than or equal to 0")
	}
}

func validateAvailability(d dto.WizardData, fe fieldErrors) {
	if d.AvailableFrom == nil || d.AvailableFrom.IsZero() {
		fe.add("availableFrom", "is required")
		return
	}
	today := dbtime.StartOfDay(wizardNow())
	day := time.Date(d.AvailableFrom.Year(), d.AvailableFrom.Month(), d.AvailableFrom.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(today) {
		fe.add("availableFrom", "must not be in the past")
	}
}

func validatePhotos(d dto.WizardData, fe fieldErrors) {
	n := 0
	for _, u := range d.Images {
		if strings.TrimSpace(u) != "" {
			n++
		}
	}
	if n == 0 {
		fe.add("images", "at least one photo is required")
	}
	if n > maxWizardImages {
		fe.add("images", "must be at most 30")
	}
}
