//go:build integration

package repository_test

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

var heldStatuses = []domain.DeliveryStatus{domain.DeliveryAssigned, domain.DeliveryPickedUp, domain.DeliveryInTransit}

func (s *DispatchRepositorySuite) claim(deliveryID, partnerID int64) *domain.Delivery {
	var got *domain.Delivery
	err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		var err error
		got, err = tx.Claim(s.ctx, deliveryID, partnerID, time.Now().UTC())
		return err
	})
	s.Require().NoError(err)
	return got
}

func (s *DispatchRepositorySuite) transition(
	deliveryID int64, to domain.DeliveryStatus, from []domain.DeliveryStatus, actor *int64,
) *domain.Delivery {
	var got *domain.Delivery
	err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		var err error
		got, err = tx.TransitionStatus(s.ctx, deliveryID, to, from, actor, time.Now().UTC())
		return err
	})
	s.Require().NoError(err)
	return got
}

func (s *DispatchRepositorySuite) TestInsertDelivery_OneLivePerOrder() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	first := s.createDelivery(storeID, nil)

	got, err := s.deliveries.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(domain.DeliveryPending, got.Status)
	s.Equal("20", got.DeliveryFee.String())
	s.Nil(got.PartnerID)

	dup := &domain.Delivery{OrderID: first.OrderID, StoreID: storeID, Status: domain.DeliveryPending}
	err = s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		return tx.InsertDelivery(s.ctx, dup)
	})
	s.ErrorIs(err, apperr.ErrConflict)

	cancelled := s.transition(first.ID, domain.DeliveryCancelled, []domain.DeliveryStatus{domain.DeliveryPending}, nil)
	s.Require().NotNil(cancelled)

	again := &domain.Delivery{OrderID: first.OrderID, StoreID: storeID, Status: domain.DeliveryPending}
	err = s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		return tx.InsertDelivery(s.ctx, again)
	})
	s.Require().NoError(err)

	live, err := s.deliveries.GetLiveByOrder(s.ctx, first.OrderID)
	s.Require().NoError(err)
	s.Require().NotNil(live)
	s.Equal(again.ID, live.ID)

	all, err := s.deliveries.ListByOrder(s.ctx, first.OrderID)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *DispatchRepositorySuite) TestWithTx_RollsBackOnError() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	orderID := s.createOrder(storeID)

	err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		d := &domain.Delivery{OrderID: orderID, StoreID: storeID, Status: domain.DeliveryPending}
		if err := tx.InsertDelivery(s.ctx, d); err != nil {
			return err
		}
		return apperr.ErrInvalid
	})
	s.ErrorIs(err, apperr.ErrInvalid)

	live, err := s.deliveries.GetLiveByOrder(s.ctx, orderID)
	s.Require().NoError(err)
	s.Nil(live)
}

func (s *DispatchRepositorySuite) TestClaim_ConcurrentClaimsHaveOneWinner() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	d := s.createDelivery(storeID, nil)

	partners := make([]int64, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		partners = append(partners, s.createPartner(name, domain.PartnerApproved))
	}

	var wins atomic.Int32
	var g errgroup.Group
	for _, pid := range partners {
		g.Go(func() error {
			return s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
				got, err := tx.Claim(s.ctx, d.ID, pid, time.Now().UTC())
				if err != nil {
					return err
				}
				if got != nil {
					wins.Add(1)
				}
				return nil
			})
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(int32(1), wins.Load())

	got, err := s.deliveries.Get(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(domain.DeliveryAssigned, got.Status)
	s.Require().NotNil(got.PartnerID)
	s.Contains(partners, *got.PartnerID)
	s.NotNil(got.AssignedAt)
}

func (s *DispatchRepositorySuite) TestClaim_OfferedDeliveryOnlyForTarget() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	p2 := s.createPartner("p2", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)

	offered, err := s.deliveries.Offer(s.ctx, d.ID, p1)
	s.Require().NoError(err)
	s.Require().NotNil(offered)
	s.Equal(domain.DeliveryPending, offered.Status)

	s.Nil(s.claim(d.ID, p2))
	got := s.claim(d.ID, p1)
	s.Require().NotNil(got)
	s.Equal(p1, *got.PartnerID)

	again, err := s.deliveries.Offer(s.ctx, d.ID, p2)
	s.Require().NoError(err)
	s.Nil(again, "held deliveries cannot be offered")
}

func (s *DispatchRepositorySuite) TestOffer_ReofferRedirectsPendingDelivery() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	p2 := s.createPartner("p2", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)

	_, err := s.deliveries.Offer(s.ctx, d.ID, p1)
	s.Require().NoError(err)

	moved, err := s.deliveries.Offer(s.ctx, d.ID, p2)
	s.Require().NoError(err)
	s.Require().NotNil(moved)
	s.Equal(domain.DeliveryPending, moved.Status)
	s.Require().NotNil(moved.PartnerID)
	s.Equal(p2, *moved.PartnerID)

	s.Nil(s.claim(d.ID, p1), "previous target lost the offer")
	s.NotNil(s.claim(d.ID, p2))
}

func (s *DispatchRepositorySuite) TestOffer_UnknownPartner() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	d := s.createDelivery(storeID, nil)

	_, err := s.deliveries.Offer(s.ctx, d.ID, 9999)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *DispatchRepositorySuite) TestTransitionStatus_HolderOnly() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	p2 := s.createPartner("p2", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)
	s.Require().NotNil(s.claim(d.ID, p1))

	from := []domain.DeliveryStatus{domain.DeliveryAssigned}
	s.Nil(s.transition(d.ID, domain.DeliveryPickedUp, from, &p2))

	picked := s.transition(d.ID, domain.DeliveryPickedUp, from, &p1)
	s.Require().NotNil(picked)
	s.Equal(domain.DeliveryPickedUp, picked.Status)

	delivered := s.transition(d.ID, domain.DeliveryDelivered,
		[]domain.DeliveryStatus{domain.DeliveryPickedUp, domain.DeliveryInTransit}, &p1)
	s.Require().NotNil(delivered)
	s.NotNil(delivered.DeliveredAt)
	s.Equal(p1, *delivered.PartnerID)

	s.Nil(s.transition(d.ID, domain.DeliveryCancelled, heldStatuses, nil), "delivered is terminal")
}

func (s *DispatchRepositorySuite) TestTransitionStatus_CancelReleasesPartner() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)
	s.Require().NotNil(s.claim(d.ID, p1))

	cancelled := s.transition(d.ID, domain.DeliveryCancelled, heldStatuses, nil)
	s.Require().NotNil(cancelled)
	s.Equal(domain.DeliveryCancelled, cancelled.Status)
	s.Nil(cancelled.PartnerID)

	byPartner, err := s.deliveries.ListByPartner(s.ctx, p1)
	s.Require().NoError(err)
	s.Empty(byPartner)
}

func (s *DispatchRepositorySuite) TestListPending_UnassignedAndOfferedToPartner() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	p2 := s.createPartner("p2", domain.PartnerApproved)

	open := s.createDelivery(storeID, nil)
	mine := s.createDelivery(storeID, &p1)
	theirs := s.createDelivery(storeID, &p2)
	claimed := s.createDelivery(storeID, nil)
	s.Require().NotNil(s.claim(claimed.ID, p2))

	got, err := s.deliveries.ListPending(s.ctx, p1)
	s.Require().NoError(err)

	ids := make([]int64, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.DeliveryID)
		s.Equal("Deli", p.StoreName)
		s.Equal("customer", p.CustomerName)
		s.Equal(`{"orderId":1}`, p.Payload)
	}
	s.ElementsMatch([]int64{open.ID, mine.ID}, ids)
	s.NotContains(ids, theirs.ID)
}

func (s *DispatchRepositorySuite) TestListActive_Filters() {
	store1 := s.createStore("One", 55.75, 37.61)
	store2 := s.createStore("Two", 55.70, 37.50)
	p1 := s.createPartner("p1", domain.PartnerApproved)

	held := s.createDelivery(store1, nil)
	s.Require().NotNil(s.claim(held.ID, p1))
	waiting := s.createDelivery(store1, nil)
	other := s.createDelivery(store2, nil)
	done := s.createDelivery(store2, nil)
	s.Require().NotNil(s.transition(done.ID, domain.DeliveryCancelled, []domain.DeliveryStatus{domain.DeliveryPending}, nil))

	byPartner, err := s.deliveries.ListActive(s.ctx, domain.ActiveFilter{PartnerID: &p1})
	s.Require().NoError(err)
	s.Require().Len(byPartner, 1)
	s.Equal(held.ID, byPartner[0].ID)

	byStore, err := s.deliveries.ListActive(s.ctx, domain.ActiveFilter{StoreID: &store1})
	s.Require().NoError(err)
	s.Len(byStore, 2)

	all, err := s.deliveries.ListActive(s.ctx, domain.ActiveFilter{})
	s.Require().NoError(err)
	ids := make([]int64, 0, len(all))
	for _, d := range all {
		ids = append(ids, d.ID)
	}
	s.ElementsMatch([]int64{held.ID, waiting.ID, other.ID}, ids)
}

func (s *DispatchRepositorySuite) TestUpdateLocation_OnlyHolder() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	p1 := s.createPartner("p1", domain.PartnerApproved)
	p2 := s.createPartner("p2", domain.PartnerApproved)
	d := s.createDelivery(storeID, nil)

	ok, err := s.deliveries.UpdateLocation(s.ctx, d.ID, p1, 55.7, 37.6)
	s.Require().NoError(err)
	s.False(ok, "pending deliveries have no holder")

	s.Require().NotNil(s.claim(d.ID, p1))

	ok, err = s.deliveries.UpdateLocation(s.ctx, d.ID, p2, 55.7, 37.6)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.deliveries.UpdateLocation(s.ctx, d.ID, p1, 55.7, 37.6)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.deliveries.Get(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.CurrentLatitude)
	s.InDelta(55.7, *got.CurrentLatitude, 1e-9)
	s.InDelta(37.6, *got.CurrentLongitude, 1e-9)
}

func (s *DispatchRepositorySuite) TestGetDispatchInfo() {
	storeID := s.createStore("Deli", 55.75, 37.61)
	orderID := s.createOrder(storeID)

	info, err := s.orders.GetDispatchInfo(s.ctx, orderID)
	s.Require().NoError(err)
	s.Require().NotNil(info)
	s.Equal(orderID, info.OrderID)
	s.Equal("customer", info.CustomerName)
	s.Equal("pending", info.Status)
	s.Equal(storeID, info.Store.ID)
	s.Equal(domain.StoreFood, info.Store.Type)
	s.Require().NotNil(info.Latitude)
	s.InDelta(55.76, *info.Latitude, 1e-9)
	s.Equal("12.5", info.TotalAmount.String())

	missing, err := s.orders.GetDispatchInfo(s.ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}
