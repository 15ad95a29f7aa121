package domain

import "regexp"

// List of possible delivery statuses
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// List of possible partner statuses
const (
	PartnerPending  PartnerStatus = "pending"
	PartnerApproved PartnerStatus = "approved"
	PartnerRejected PartnerStatus = "rejected"
)

// List of store types
const (
	StoreFood   StoreType = "food"
	StoreRetail StoreType = "retail"
)

// deliveryFlow is the forward-only sequence; cancelled sits outside of it.
var deliveryFlow = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered,
}

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered, DeliveryCancelled,
}

var allowedPartnerStatuses = [...]PartnerStatus{
	PartnerPending, PartnerApproved, PartnerRejected,
}

var allowedStoreTypes = [...]StoreType{
	StoreFood, StoreRetail,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// Held reports whether a partner holds a delivery in this status.
func (s DeliveryStatus) Held() bool {
	return s == DeliveryAssigned || s == DeliveryPickedUp || s == DeliveryInTransit
}

func (s DeliveryStatus) rank() int {
	for i, v := range deliveryFlow {
		if s == v {
			return i
		}
	}
	return -1
}

// CanTransition reports whether a delivery may move from one status to another.
// pending -> assigned happens only through a claim; after that the status only moves
// forward. cancelled is reachable from every non-terminal status.
func CanTransition(from, to DeliveryStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	switch to {
	case DeliveryCancelled:
		return true
	case DeliveryAssigned:
		return from == DeliveryPending
	case DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered:
		return from.Held() && from.rank() < to.rank()
	default:
		return false
	}
}

// Predecessors returns every status from which a delivery may move to "to".
func Predecessors(to DeliveryStatus) []DeliveryStatus {
	out := make([]DeliveryStatus, 0, len(allowedDeliveryStatuses))
	for _, from := range allowedDeliveryStatuses {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// Valid checks if the PartnerStatus is valid
func (s PartnerStatus) Valid() bool {
	for _, v := range allowedPartnerStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the StoreType is valid
func (t StoreType) Valid() bool {
	for _, v := range allowedStoreTypes {
		if t == v {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{10,14}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
