package dto

import (
	"time"

	"github.com/google/uuid"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type OwnerStats struct {
	TotalProperties   int64 `json:"totalProperties"`
	ActiveProperties  int64 `json:"activeProperties"`
	PendingProperties int64 `json:"pendingProperties"`
	TotalViews        int64 `json:"totalViews"`
	EnquiriesReceived int64 `json:"enquiriesReceived"`
	NewEnquiries      int64 `json:"newEnquiries"`
	ShortlistedBy     int64 `json:"shortlistedBy"`
	ActiveBoosts      int64 `json:"activeBoosts"`
}

type TenantStats struct {
	Shortlisted   int64 `json:"shortlisted"`
	EnquiriesSent int64 `json:"enquiriesSent"`
	ReportsFiled  int64 `json:"reportsFiled"`
}

type PropertyBrief struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	Status     string    `json:"status"`
	ViewCount  int64     `json:"viewCount"`
	IsFeatured bool      `json:"isFeatured"`
	IsPremium  bool      `json:"isPremium"`
	CreatedAt  time.Time `json:"createdAt"`
}

type EnquiryBrief struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"propertyId"`
	PropertyTitle string    `json:"propertyTitle"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ShortlistBrief struct {
	ID            uuid.UUID `json:"id"`
	PropertyID    uuid.UUID `json:"propertyId"`
	PropertyTitle string    `json:"propertyTitle"`
	City          string    `json:"city"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DashboardResponse carries either the owner or the tenant half, keyed by View.
type DashboardResponse struct {
	View            string           `json:"view"`
	ActiveRole      string           `json:"activeRole"`
	OwnerStats      *OwnerStats      `json:"ownerStats,omitempty"`
	TenantStats     *TenantStats     `json:"tenantStats,omitempty"`
	TopProperties   []PropertyBrief  `json:"topProperties,omitempty"`
	RecentEnquiries []EnquiryBrief   `json:"recentEnquiries"`
	RecentShortlist []ShortlistBrief `json:"recentShortlist,omitempty"`
}

type AdminStats struct {
	Users              int64         `json:"users"`
	NewUsersThisMonth  int64         `json:"newUsersThisMonth"`
	Properties         int64         `json:"properties"`
	PropertiesByStatus []StatusCount `json:"propertiesByStatus"`
	Enquiries          int64         `json:"enquiries"`
	EnquiriesByStatus  []StatusCount `json:"enquiriesByStatus"`
	PendingReports     int64         `json:"pendingReports"`
	PendingImages      int64         `json:"pendingImages"`
	PendingBoosts      int64         `json:"pendingBoosts"`
	ActiveBoosts       int64         `json:"activeBoosts"`
	Revenue            float64       `json:"revenue"`
	RevenueThisMonth   float64       `json:"revenueThisMonth"`
	Subscribers        int64         `json:"subscribers"`
	GeneratedAt        time.Time     `json:"generatedAt"`
}
