package handlers

import (
	"marketplace-dispatch/internal/domain"
)

func toDeliveryDTO(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:                d.ID,
		OrderID:           d.OrderID,
		StoreID:           d.StoreID,
		PartnerID:         d.PartnerID,
		Status:            string(d.Status),
		PickupAddress:     d.PickupAddress,
		DeliveryAddress:   d.DeliveryAddress,
		EstimatedDistance: d.EstimatedDistance,
		DeliveryFee:       d.DeliveryFee.StringFixed(2),
		CurrentLatitude:   d.CurrentLatitude,
		CurrentLongitude:  d.CurrentLongitude,
		AssignedAt:        d.AssignedAt,
		DeliveredAt:       d.DeliveredAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func toDeliveryDTOs(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryDTO(d))
	}
	return out
}

func toPendingDTOs(list []domain.PendingDelivery) []pendingDTO {
	out := make([]pendingDTO, 0, len(list))
	for _, p := range list {
		out = append(out, pendingDTO{
			ID:               p.NotificationID,
			DeliveryID:       p.DeliveryID,
			OrderID:          p.OrderID,
			PartnerID:        p.PartnerID,
			Status:           string(p.Status),
			NotificationData: p.Payload,
			CreatedAt:        p.CreatedAt,
			CustomerName:     p.CustomerName,
			TotalAmount:      p.TotalAmount.StringFixed(2),
			ShippingAddress:  p.ShippingAddress,
			StoreName:        p.StoreName,
		})
	}
	return out
}

func toTrackingEventDTOs(list []domain.TrackingEvent) []trackingEventDTO {
	out := make([]trackingEventDTO, 0, len(list))
	for _, e := range list {
		out = append(out, trackingEventDTO{
			ID:          e.ID,
			OrderID:     e.OrderID,
			DeliveryID:  e.DeliveryID,
			Status:      string(e.Status),
			Description: e.Description,
			Latitude:    e.Latitude,
			Longitude:   e.Longitude,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

func toSnapshotDTO(s domain.TrackingSnapshot) trackingSnapshotDTO {
	out := trackingSnapshotDTO{Delivery: toDeliveryDTO(s.Delivery)}
	if s.Partner != nil {
		p := toPartnerDTO(*s.Partner)
		out.Partner = &p
	}
	return out
}

func toZoneDTO(z domain.DeliveryZone) zoneDTO {
	return zoneDTO{
		ID:          z.ID,
		MinDistance: z.MinDistance,
		MaxDistance: z.MaxDistance,
		DeliveryFee: z.DeliveryFee.StringFixed(2),
		CreatedAt:   z.CreatedAt,
	}
}

func toZoneDTOs(list []domain.DeliveryZone) []zoneDTO {
	out := make([]zoneDTO, 0, len(list))
	for _, z := range list {
		out = append(out, toZoneDTO(z))
	}
	return out
}

func toQuoteDTO(q domain.FeeQuote) quoteDTO {
	out := quoteDTO{Distance: q.Distance, DeliveryFee: q.Fee.StringFixed(2)}
	if q.Zone != nil {
		z := toZoneDTO(*q.Zone)
		out.Zone = &z
	}
	return out
}

func (r zoneRequest) toDomain(id int64) domain.DeliveryZone {
	return domain.DeliveryZone{
		ID:          id,
		MinDistance: *r.MinDistance,
		MaxDistance: *r.MaxDistance,
		DeliveryFee: r.DeliveryFee,
	}
}

func toStoreDistanceDTOs(list []domain.StoreDistance) []storeDistanceDTO {
	out := make([]storeDistanceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, storeDistanceDTO{
			ID:        s.Store.ID,
			Name:      s.Store.Name,
			Phone:     s.Store.Phone,
			Address:   s.Store.Address,
			StoreType: string(s.Store.Type),
			Latitude:  s.Store.Latitude,
			Longitude: s.Store.Longitude,
			Distance:  s.Distance,
		})
	}
	return out
}

func toPartnerDTO(p domain.DeliveryPartner) partnerDTO {
	return partnerDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Phone:           p.Phone,
		VehicleType:     p.VehicleType,
		Status:          string(p.Status),
		ApprovedBy:      p.ApprovedBy,
		ApprovedAt:      p.ApprovedAt,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
	}
}

func toPartnerDTOs(list []domain.DeliveryPartner) []partnerDTO {
	out := make([]partnerDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toPartnerDTO(p))
	}
	return out
}

func (r registerPartnerRequest) toDomain() domain.DeliveryPartner {
	return domain.DeliveryPartner{
		UserID:      r.UserID,
		Name:        r.Name,
		Phone:       r.Phone,
		VehicleType: r.VehicleType,
	}
}
