//go:build integration

package repository_test

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

func (s *DispatchRepositorySuite) TestZones_CRUD() {
	far := &domain.DeliveryZone{MinDistance: 3, MaxDistance: 6, DeliveryFee: decimal.RequireFromString("35.00")}
	near := &domain.DeliveryZone{MinDistance: 0, MaxDistance: 3, DeliveryFee: decimal.RequireFromString("20.00")}

	farID, err := s.zones.Create(s.ctx, far)
	s.Require().NoError(err)
	nearID, err := s.zones.Create(s.ctx, near)
	s.Require().NoError(err)

	list, err := s.zones.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(nearID, list[0].ID, "ordered by min distance")
	s.Equal(farID, list[1].ID)

	ok, err := s.zones.Update(s.ctx, domain.DeliveryZone{
		ID: farID, MinDistance: 3, MaxDistance: 8, DeliveryFee: decimal.RequireFromString("40.50"),
	})
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.zones.Get(s.ctx, farID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.InDelta(8.0, got.MaxDistance, 1e-9)
	s.True(decimal.RequireFromString("40.5").Equal(got.DeliveryFee))

	ok, err = s.zones.Delete(s.ctx, farID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.zones.Delete(s.ctx, farID)
	s.Require().NoError(err)
	s.False(ok)

	gone, err := s.zones.Get(s.ctx, farID)
	s.Require().NoError(err)
	s.Nil(gone)

	ok, err = s.zones.Update(s.ctx, domain.DeliveryZone{ID: farID, MinDistance: 1, MaxDistance: 2})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *DispatchRepositorySuite) TestPartners_RegisterAndDecide() {
	userID := s.createUser("rider")
	p := &domain.DeliveryPartner{
		UserID: userID, Name: "Rider", Phone: "+1", VehicleType: "bike", Status: domain.PartnerPending,
	}
	id, err := s.partners.Create(s.ctx, p)
	s.Require().NoError(err)
	s.Positive(id)

	_, err = s.partners.Create(s.ctx, &domain.DeliveryPartner{
		UserID: userID, Name: "Again", Phone: "+2", Status: domain.PartnerPending,
	})
	s.ErrorIs(err, apperr.ErrConflict)

	_, err = s.partners.Create(s.ctx, &domain.DeliveryPartner{
		UserID: 9999, Name: "Ghost", Phone: "+3", Status: domain.PartnerPending,
	})
	s.ErrorIs(err, apperr.ErrNotFound)

	_, err = s.partners.Decide(s.ctx, domain.PartnerDecision{
		PartnerID: id, AdminID: 9999, Status: domain.PartnerApproved, At: time.Now().UTC(),
	})
	s.ErrorIs(err, apperr.ErrInvalid, "unknown admin")

	admin := s.createUser("admin")
	decided, err := s.partners.Decide(s.ctx, domain.PartnerDecision{
		PartnerID: id, AdminID: admin, Status: domain.PartnerApproved, At: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Require().NotNil(decided)
	s.Equal(domain.PartnerApproved, decided.Status)
	s.Require().NotNil(decided.ApprovedBy)
	s.Equal(admin, *decided.ApprovedBy)

	reason := "late"
	again, err := s.partners.Decide(s.ctx, domain.PartnerDecision{
		PartnerID: id, AdminID: admin, Status: domain.PartnerRejected, Reason: &reason, At: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Nil(again, "decided partners stay decided")

	pendingID := s.createPartner("waiting", domain.PartnerPending)

	approved := domain.PartnerApproved
	list, err := s.partners.List(s.ctx, &approved)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(id, list[0].ID)

	all, err := s.partners.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal(pendingID, all[1].ID)
}

func (s *DispatchRepositorySuite) TestTracking_MonotonicHistoryAndSnapshot() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)

	now := time.Now().UTC()
	first := &domain.TrackingEvent{
		OrderID: d.OrderID, DeliveryID: d.ID, Status: domain.DeliveryPending, Description: "created", CreatedAt: now,
	}
	s.Require().NoError(s.tracking.Append(s.ctx, first))

	// clock went backwards
	second := &domain.TrackingEvent{
		OrderID: d.OrderID, DeliveryID: d.ID, Status: domain.DeliveryAssigned, CreatedAt: now.Add(-time.Minute),
	}
	err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		return tx.AppendTrackingEvent(s.ctx, second)
	})
	s.Require().NoError(err)
	s.True(second.CreatedAt.After(first.CreatedAt))

	history, err := s.tracking.ListByOrder(s.ctx, d.OrderID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(second.ID, history[0].ID, "newest first")
	s.Equal(d.ID, history[1].DeliveryID)

	snap, err := s.tracking.Snapshot(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(snap)
	s.Nil(snap.Partner)

	s.Require().NotNil(s.claim(d.ID, p1))
	snap, err = s.tracking.Snapshot(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(snap.Partner)
	s.Equal(p1, snap.Partner.ID)

	missing, err := s.tracking.Snapshot(s.ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *DispatchRepositorySuite) TestNotifications_MarkRead() {
	userID := s.createUser("reader")
	ids := make([]int64, 0, 2)
	for range 2 {
		n := &domain.Notification{UserID: &userID, Type: "info", Payload: "{}"}
		err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
			return tx.InsertNotification(s.ctx, n)
		})
		s.Require().NoError(err)
		ids = append(ids, n.ID)
	}

	ok, err := s.notifications.MarkRead(s.ctx, ids[0])
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.notifications.MarkRead(s.ctx, 9999)
	s.Require().NoError(err)
	s.False(ok)

	n, err := s.notifications.MarkAllRead(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	n, err = s.notifications.MarkAllRead(s.ctx, userID)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *DispatchRepositorySuite) TestStores_GetAndList() {
	a := s.createStore("A", 55.75, 37.61)
	b := s.createStore("B", 59.93, 30.31)

	got, err := s.stores.Get(s.ctx, b)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("B", got.Name)
	s.InDelta(59.93, got.Latitude, 1e-9)

	list, err := s.stores.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(a, list[0].ID)

	missing, err := s.stores.Get(s.ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *DispatchRepositorySuite) TestMaintenance_ResetStore() {
	keep := s.createStore("Keep", 55.75, 37.61)
	drop := s.createStore("Drop", 55.70, 37.50)
	kept := s.createDelivery(keep, nil)
	dropped := s.createDelivery(drop, nil)
	s.Require().NoError(s.tracking.Append(s.ctx, &domain.TrackingEvent{
		OrderID: dropped.OrderID, DeliveryID: dropped.ID, Status: domain.DeliveryPending,
	}))

	counts, found, err := s.maintenance.ResetStoreData(s.ctx, drop)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(int64(1), counts["stores"])
	s.Equal(int64(1), counts["deliveries"])
	s.Equal(int64(1), counts["notifications"])
	s.Equal(int64(1), counts["order_tracking"])
	s.Equal(int64(1), counts["products"])

	got, err := s.deliveries.Get(s.ctx, kept.ID)
	s.Require().NoError(err)
	s.NotNil(got)

	_, found, err = s.maintenance.ResetStoreData(s.ctx, drop)
	s.Require().NoError(err)
	s.False(found)
}

func (s *DispatchRepositorySuite) TestMaintenance_ResetAllKeepsPeopleAndZones() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	partnerID := s.createPartner("p1", domain.PartnerApproved)
	s.createDelivery(storeID, nil)
	_, err := s.zones.Create(s.ctx, &domain.DeliveryZone{MinDistance: 0, MaxDistance: 3, DeliveryFee: decimal.NewFromInt(20)})
	s.Require().NoError(err)

	counts, err := s.maintenance.ResetAllSystemData(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), counts["orders"])
	s.Equal(int64(1), counts["stores"])
	s.Equal(int64(1), counts["deliveries"])

	stores, err := s.stores.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(stores)

	p, err := s.partners.Get(s.ctx, partnerID)
	s.Require().NoError(err)
	s.NotNil(p)

	zones, err := s.zones.List(s.ctx)
	s.Require().NoError(err)
	s.Len(zones, 1)
}
