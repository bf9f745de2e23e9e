package constants

// Segments.
const (
	SegmentRent       = "rent"
	SegmentBuy        = "buy"
	SegmentCommercial = "commercial"
)

// Listing types.
const (
	ListingRent = "rent"
	ListingSale = "sale"
)

// Property statuses.
const (
	PropertyActive   = "active"
	PropertyInactive = "inactive"
	PropertyPending  = "pending"
	PropertyRented   = "rented"
	PropertySold     = "sold"
	PropertyExpired  = "expired"
)

var PropertyTypes = []string{
	"apartment", "house", "villa", "independent_floor", "studio", "pg", "plot",
	"office", "shop", "showroom", "warehouse", "coworking", "land",
}

var CommercialPropertyTypes = map[string]bool{
	"office":    true,
	"shop":      true,
	"showroom":  true,
	"warehouse": true,
	"coworking": true,
}

var FurnishingTypes = []string{"unfurnished", "semi_furnished", "fully_furnished"}
