package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "estatehub_backend/internals/helpers"
)

const (
	SortNewest       = "newest"
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortBedroomsDesc = "bedrooms_desc"
	SortFeatured     = "featured"
)

// StatusAll disables the default active-only filter.
const StatusAll = "all"

// PropertyFilter is the typed form of the listing query string.
type PropertyFilter struct {
	ListingType  string
	PropertyType []string
	City         string
	Locality     string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *int
	BHK          []string
	Furnishing   []string
	IsCommercial *bool
	IsFeatured   *bool
	Status       string
	OwnerID      *uuid.UUID
	CategoryID   *uuid.UUID
	Query        string
	Sort         string
}

// FilterFromQuery reads the listing filters. Unparseable numbers are reported as 400.
func FilterFromQuery(c *fiber.Ctx) (PropertyFilter, error) {
	f := PropertyFilter{
		ListingType:  strings.ToLower(strings.TrimSpace(c.Query("listingType", c.Query("listing_type")))),
		PropertyType: helper.SplitCSV(c.Query("propertyType", c.Query("property_type"))),
		City:         strings.TrimSpace(c.Query("city")),
		Locality:     strings.TrimSpace(c.Query("locality")),
		BHK:          helper.SplitCSV(c.Query("bhk")),
		Furnishing:   helper.SplitCSV(c.Query("furnishing")),
		Status:       strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Query:        strings.TrimSpace(c.Query("q", c.Query("search"))),
		Sort:         strings.ToLower(strings.TrimSpace(c.Query("sort", c.Query("sortBy")))),
	}
	if f.ListingType == "buy" {
		f.ListingType = "sale"
	}

	var err error
	if f.MinPrice, err = queryFloat(c, "minPrice", "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(c, "maxPrice", "max_price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = queryInt(c, "bedrooms", "minBedrooms"); err != nil {
		return f, err
	}
	if f.MinBathrooms, err = queryInt(c, "bathrooms", "minBathrooms"); err != nil {
		return f, err
	}
	if f.IsCommercial, err = queryBool(c, "isCommercial"); err != nil {
		return f, err
	}
	if f.IsFeatured, err = queryBool(c, "isFeatured"); err != nil {
		return f, err
	}
	if s := strings.TrimSpace(c.Query("categoryId")); s != "" {
		id, perr := uuid.Parse(s)
		if perr != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Invalid categoryId")
		}
		f.CategoryID = &id
	}
	return f, nil
}

func queryFloat(c *fiber.Ctx, keys ...string) (*float64, error) {
	for _, k := range keys {
		s := strings.TrimSpace(c.Query(k))
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+k)
		}
		return &v, nil
	}
	return nil, nil
}

func queryInt(c *fiber.Ctx, keys ...string) (*int, error) {
	for _, k := range keys {
		s := strings.TrimSpace(c.Query(k))
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+k)
		}
		return &v, nil
	}
	return nil, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return &v, nil
}
