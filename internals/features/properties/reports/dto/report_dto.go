package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	Reason      string    `json:"reason" validate:"required,oneof=spam fraud wrong_info duplicate unavailable offensive other"`
	Description string    `json:"description" validate:"max=5000"`
}

type ReviewReportRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending reviewing resolved dismissed"`
	Resolution *string `json:"resolution" validate:"omitempty,max=5000"`
	// DeactivateProperty takes the listing down when resolving a report.
	DeactivateProperty bool `json:"deactivateProperty"`
}

// ReportRow is a report joined with its property and reporter.
type ReportRow struct {
	ID            uuid.UUID  `json:"id"`
	PropertyID    uuid.UUID  `json:"propertyId"`
	PropertyTitle string     `json:"propertyTitle"`
	UserID        uuid.UUID  `json:"userId"`
	ReporterName  string     `json:"reporterName"`
	Reason        string     `json:"reason"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Resolution    string     `json:"resolution"`
	ReviewedBy    *uuid.UUID `json:"reviewedBy"`
	ReviewedAt    *time.Time `json:"reviewedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

const ReportRowSelect = `reports.id, reports.property_id, properties.title AS property_title, reports.user_id,
users.name AS reporter_name, reports.reason, reports.description, reports.status, reports.resolution,
reports.reviewed_by, reports.reviewed_at, reports.created_at`
