//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/ports/dispatchtx"
	"marketplace-dispatch/internal/repository"
)

type DispatchRepositorySuite struct {
	suite.Suite
	ctx context.Context

	deliveries    *repository.DeliveryRepo
	orders        *repository.OrderRepo
	partners      *repository.PartnerRepo
	stores        *repository.StoreRepo
	zones         *repository.ZoneRepo
	tracking      *repository.TrackingRepo
	notifications *repository.NotificationRepo
	maintenance   *repository.MaintenanceRepo
}

func TestDispatchRepositorySuite(t *testing.T) {
	suite.Run(t, new(DispatchRepositorySuite))
}

func (s *DispatchRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.deliveries = repository.NewDeliveryRepo(tcPool)
	s.orders = repository.NewOrderRepo(tcPool)
	s.partners = repository.NewPartnerRepo(tcPool)
	s.stores = repository.NewStoreRepo(tcPool)
	s.zones = repository.NewZoneRepo(tcPool)
	s.tracking = repository.NewTrackingRepo(tcPool)
	s.notifications = repository.NewNotificationRepo(tcPool)
	s.maintenance = repository.NewMaintenanceRepo(tcPool)
}

func (s *DispatchRepositorySuite) SetupTest() {
	_, err := tcPool.Exec(s.ctx, `
        TRUNCATE order_tracking, notifications, deliveries, delivery_zones, delivery_partners,
                 reviews, wishlist_items, cart_items, order_items, orders, products, stores, users
        RESTART IDENTITY CASCADE
    `)
	s.Require().NoError(err)
}

func (s *DispatchRepositorySuite) createUser(name string) int64 {
	var id int64
	err := tcPool.QueryRow(s.ctx, `INSERT INTO users (name, phone) VALUES ($1, '+100') RETURNING id`, name).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *DispatchRepositorySuite) createStore(name string, lat, lon float64) int64 {
	owner := s.createUser(name + " owner")
	var id int64
	err := tcPool.QueryRow(s.ctx, `
        INSERT INTO stores (owner_id, name, phone, address, store_type, latitude, longitude)
        VALUES ($1, $2, '+200', 'Main st 1', 'food', $3, $4)
        RETURNING id
    `, owner, name, lat, lon).Scan(&id)
	s.Require().NoError(err)
	return id
}

// createOrder places an order with a single item from storeID.
func (s *DispatchRepositorySuite) createOrder(storeID int64) int64 {
	customer := s.createUser("customer")

	var productID, orderID int64
	err := tcPool.QueryRow(s.ctx, `INSERT INTO products (store_id, name, price) VALUES ($1, 'soup', 5) RETURNING id`,
		storeID).Scan(&productID)
	s.Require().NoError(err)

	err = tcPool.QueryRow(s.ctx, `
        INSERT INTO orders (customer_id, total_amount, shipping_address, latitude, longitude)
        VALUES ($1, 12.50, 'Customer st 5', 55.76, 37.62)
        RETURNING id
    `, customer).Scan(&orderID)
	s.Require().NoError(err)

	_, err = tcPool.Exec(s.ctx, `INSERT INTO order_items (order_id, product_id, store_id, quantity, price)
        VALUES ($1, $2, $3, 1, 5)`, orderID, productID, storeID)
	s.Require().NoError(err)
	return orderID
}

func (s *DispatchRepositorySuite) createPartner(name string, status domain.PartnerStatus) int64 {
	p := &domain.DeliveryPartner{
		UserID:      s.createUser(name),
		Name:        name,
		Phone:       "+300",
		VehicleType: "bike",
		Status:      domain.PartnerPending,
	}
	id, err := s.partners.Create(s.ctx, p)
	s.Require().NoError(err)

	if status != domain.PartnerPending {
		admin := s.createUser("admin")
		_, err := s.partners.Decide(s.ctx, domain.PartnerDecision{
			PartnerID: id, AdminID: admin, Status: status, At: time.Now().UTC(),
		})
		s.Require().NoError(err)
	}
	return id
}

// createDelivery inserts a pending delivery for a new order with its broadcast
// notification, the way dispatch does it.
func (s *DispatchRepositorySuite) createDelivery(storeID int64, offeredTo *int64) *domain.Delivery {
	orderID := s.createOrder(storeID)
	d := &domain.Delivery{
		OrderID:           orderID,
		StoreID:           storeID,
		PartnerID:         offeredTo,
		Status:            domain.DeliveryPending,
		PickupAddress:     "Main st 1",
		DeliveryAddress:   "Customer st 5",
		EstimatedDistance: 2.5,
		DeliveryFee:       decimal.RequireFromString("20.00"),
	}
	err := s.deliveries.WithTx(s.ctx, func(tx dispatchtx.Repository) error {
		if err := tx.InsertDelivery(s.ctx, d); err != nil {
			return err
		}
		return tx.InsertNotification(s.ctx, &domain.Notification{
			DeliveryID: &d.ID,
			Type:       domain.NotificationTypeDelivery,
			Payload:    `{"orderId":1}`,
		})
	})
	s.Require().NoError(err)
	return d
}
