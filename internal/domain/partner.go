package domain

import "time"

// PartnerStatus is the approval state of a delivery partner.
type PartnerStatus string

// DeliveryPartner is a courier account. Only approved partners may claim deliveries.
type DeliveryPartner struct {
	ID              int64
	UserID          int64
	Name            string
	Phone           string
	VehicleType     string
	Status          PartnerStatus
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
}

// PartnerDecision is an admin decision on a pending partner.
type PartnerDecision struct {
	PartnerID int64
	AdminID   int64
	Status    PartnerStatus
	Reason    *string
	At        time.Time
}
