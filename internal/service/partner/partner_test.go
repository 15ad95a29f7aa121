package partner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	testlog "marketplace-dispatch/internal/testutil"
)

type mockPartnerRepo struct {
	getFn    func(context.Context, int64) (*domain.DeliveryPartner, error)
	listFn   func(context.Context, *domain.PartnerStatus) ([]domain.DeliveryPartner, error)
	createFn func(context.Context, *domain.DeliveryPartner) (int64, error)
	decideFn func(context.Context, domain.PartnerDecision) (*domain.DeliveryPartner, error)
}

func (m *mockPartnerRepo) Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error) {
	return m.getFn(ctx, id)
}
func (m *mockPartnerRepo) List(ctx context.Context, st *domain.PartnerStatus) ([]domain.DeliveryPartner, error) {
	return m.listFn(ctx, st)
}
func (m *mockPartnerRepo) Create(ctx context.Context, p *domain.DeliveryPartner) (int64, error) {
	return m.createFn(ctx, p)
}
func (m *mockPartnerRepo) Decide(ctx context.Context, d domain.PartnerDecision) (*domain.DeliveryPartner, error) {
	return m.decideFn(ctx, d)
}

func validPartner() *domain.DeliveryPartner {
	return &domain.DeliveryPartner{UserID: 5, Name: " Ravi ", Phone: "+919812345678", VehicleType: "bike"}
}

func TestValidateRegister(t *testing.T) {
	t.Parallel()

	cases := map[string]func(p *domain.DeliveryPartner){
		"no user":       func(p *domain.DeliveryPartner) { p.UserID = 0 },
		"blank name":    func(p *domain.DeliveryPartner) { p.Name = "  " },
		"bad phone":     func(p *domain.DeliveryPartner) { p.Phone = "98123" },
		"blank vehicle": func(p *domain.DeliveryPartner) { p.VehicleType = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validPartner()
			mutate(p)
			require.ErrorIs(t, validateRegister(p), apperr.ErrInvalid)
		})
	}
	require.ErrorIs(t, validateRegister(nil), apperr.ErrInvalid)
}

func TestRegister_ForcesPending(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	repo := &mockPartnerRepo{createFn: func(_ context.Context, p *domain.DeliveryPartner) (int64, error) {
		require.Equal(t, domain.PartnerPending, p.Status)
		require.Equal(t, "Ravi", p.Name)
		return 12, nil
	}}
	svc := NewService(repo, time.Second, rec.Logger())

	p := validPartner()
	p.Status = domain.PartnerApproved
	id, err := svc.Register(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, int64(12), id)
	require.True(t, rec.Has("delivery partner registered"))
}

func TestApprove(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := &mockPartnerRepo{decideFn: func(_ context.Context, d domain.PartnerDecision) (*domain.DeliveryPartner, error) {
		require.Equal(t, domain.PartnerApproved, d.Status)
		require.Equal(t, int64(1), d.AdminID)
		require.Nil(t, d.Reason)
		require.Equal(t, at, d.At)
		return &domain.DeliveryPartner{ID: d.PartnerID, Status: d.Status, ApprovedBy: &d.AdminID, ApprovedAt: &d.At}, nil
	}}
	svc := NewService(repo, time.Second, nil)
	svc.now = func() time.Time { return at }

	p, err := svc.Approve(context.Background(), 12, 1)
	require.NoError(t, err)
	require.Equal(t, domain.PartnerApproved, p.Status)
}

func TestReject(t *testing.T) {
	t.Parallel()

	t.Run("requires reason", func(t *testing.T) {
		svc := NewService(&mockPartnerRepo{}, time.Second, nil)
		_, err := svc.Reject(context.Background(), 12, 1, "  ")
		require.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("already decided", func(t *testing.T) {
		repo := &mockPartnerRepo{
			decideFn: func(context.Context, domain.PartnerDecision) (*domain.DeliveryPartner, error) { return nil, nil },
			getFn: func(_ context.Context, id int64) (*domain.DeliveryPartner, error) {
				return &domain.DeliveryPartner{ID: id, Status: domain.PartnerApproved}, nil
			},
		}
		svc := NewService(repo, time.Second, nil)
		_, err := svc.Reject(context.Background(), 12, 1, "documents expired")
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("unknown partner", func(t *testing.T) {
		repo := &mockPartnerRepo{
			decideFn: func(context.Context, domain.PartnerDecision) (*domain.DeliveryPartner, error) { return nil, nil },
			getFn:    func(context.Context, int64) (*domain.DeliveryPartner, error) { return nil, nil },
		}
		svc := NewService(repo, time.Second, nil)
		_, err := svc.Reject(context.Background(), 12, 1, "documents expired")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestGetAndList(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	repo := &mockPartnerRepo{
		getFn: func(context.Context, int64) (*domain.DeliveryPartner, error) { return nil, nil },
		listFn: func(_ context.Context, st *domain.PartnerStatus) ([]domain.DeliveryPartner, error) {
			return nil, boom
		},
	}
	svc := NewService(repo, time.Second, nil)

	_, err := svc.Get(context.Background(), 3)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	bad := domain.PartnerStatus("banned")
	_, err = svc.List(context.Background(), &bad)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.List(context.Background(), nil)
	require.ErrorIs(t, err, boom)
}
