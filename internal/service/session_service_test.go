package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/config"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"
	"gamehouse/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubSessionRepo is an in-memory SessionRepository for testing.
type stubSessionRepo struct {
	sessions map[uuid.UUID]*model.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*model.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) FindOpenByCustomer(_ context.Context, customerID uuid.UUID) (*model.Session, error) {
	for _, s := range r.sessions {
		if s.CustomerID == customerID && s.Status != model.SessionCompleted {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSessionRepo) List(_ context.Context, status string, _, _ int) ([]model.Session, int64, error) {
	var out []model.Session
	for _, s := range r.sessions {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSessionRepo) Update(_ context.Context, s *model.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) AddItem(_ context.Context, item *model.SessionItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return nil
}

func (r *stubSessionRepo) UpdateItem(_ context.Context, _ *model.SessionItem) error { return nil }
func (r *stubSessionRepo) RemoveItem(_ context.Context, _ uuid.UUID) error          { return nil }

var _ repository.SessionRepository = (*stubSessionRepo)(nil)

// stubCustomerRepo is an in-memory CustomerRepository.
type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindActiveByPhone(_ context.Context, phone string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone && c.Active {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, _ string, _, _ int) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.customers[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubCustomerRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.customers[id]; ok {
		c.Active = true
	}
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubCatalogRepo is an in-memory CatalogRepository.
type stubCatalogRepo struct {
	services map[uuid.UUID]*model.CatalogService
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{services: make(map[uuid.UUID]*model.CatalogService)}
}

func (r *stubCatalogRepo) Create(_ context.Context, s *model.CatalogService) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CatalogService, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCatalogRepo) List(_ context.Context, _ *uuid.UUID, _ bool) ([]model.CatalogService, error) {
	var out []model.CatalogService
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubCatalogRepo) Update(_ context.Context, s *model.CatalogService) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubCatalogRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.services[id]; ok {
		s.Active = false
	}
	return nil
}

func (r *stubCatalogRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if s, ok := r.services[id]; ok {
		s.Active = true
	}
	return nil
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type sessionFixture struct {
	svc       service.SessionService
	repo      *stubSessionRepo
	customers *stubCustomerRepo
	catalog   *stubCatalogRepo

	customer   *model.Customer
	hourly     *model.CatalogService // time-based, 60000/h
	snack      *model.CatalogService // unit-based, 50000/unit
	operatorID uuid.UUID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	repo := newStubSessionRepo()
	customers := newStubCustomerRepo()
	catalog := newStubCatalogRepo()
	cfg := &config.Config{VenueName: "Test Venue", InvoiceStoragePath: t.TempDir()}

	customer := &model.Customer{FirstName: "Ana", LastName: "Rojas", Phone: "70000001", Active: true}
	require.NoError(t, customers.Create(context.Background(), customer))

	hourly := &model.CatalogService{
		Name:        "PS5 Station",
		PricingMode: model.PricingTimeBased,
		UnitPrice:   decimal.NewFromInt(60000),
		Active:      true,
	}
	require.NoError(t, catalog.Create(context.Background(), hourly))

	snack := &model.CatalogService{
		Name:        "Snack Combo",
		PricingMode: model.PricingUnitBased,
		UnitPrice:   decimal.NewFromInt(50000),
		Active:      true,
	}
	require.NoError(t, catalog.Create(context.Background(), snack))

	return &sessionFixture{
		svc:        service.NewSessionService(repo, customers, catalog, nil, cfg),
		repo:       repo,
		customers:  customers,
		catalog:    catalog,
		customer:   customer,
		hourly:     hourly,
		snack:      snack,
		operatorID: uuid.New(),
	}
}

func (f *sessionFixture) open(t *testing.T) *dto.SessionResponse {
	t.Helper()
	resp, err := f.svc.Open(context.Background(), f.operatorID, dto.OpenSessionRequest{
		CustomerID: f.customer.ID.String(),
	})
	require.NoError(t, err)
	return resp
}

func (f *sessionFixture) sessionModel(t *testing.T, id string) *model.Session {
	t.Helper()
	sid, err := uuid.Parse(id)
	require.NoError(t, err)
	sess, err := f.repo.FindByID(context.Background(), sid)
	require.NoError(t, err)
	return sess
}

func assertKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr), "expected *apierror.Error, got %v", err)
	assert.Equal(t, kind, apiErr.Kind)
}

// ── Open ──────────────────────────────────────────────────────────────────────

func TestOpenSession(t *testing.T) {
	f := newSessionFixture(t)

	resp := f.open(t)
	assert.Equal(t, model.SessionActive, resp.Status)
	assert.True(t, resp.TotalCost.IsZero())
	assert.Empty(t, resp.Items)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Ana Rojas", *resp.Customer)
}

func TestOpenSessionRejectsSecondOpen(t *testing.T) {
	f := newSessionFixture(t)
	f.open(t)

	_, err := f.svc.Open(context.Background(), f.operatorID, dto.OpenSessionRequest{
		CustomerID: f.customer.ID.String(),
	})
	assertKind(t, err, apierror.KindConflict)
}

func TestOpenSessionInactiveCustomer(t *testing.T) {
	f := newSessionFixture(t)
	f.customer.Active = false

	_, err := f.svc.Open(context.Background(), f.operatorID, dto.OpenSessionRequest{
		CustomerID: f.customer.ID.String(),
	})
	assertKind(t, err, apierror.KindInvalidState)
}

func TestOpenSessionUnknownCustomer(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Open(context.Background(), f.operatorID, dto.OpenSessionRequest{
		CustomerID: uuid.NewString(),
	})
	assertKind(t, err, apierror.KindNotFound)
}

// ── Attach / Detach ───────────────────────────────────────────────────────────

func TestAttachUnitBasedBillsImmediately(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)

	resp, err := f.svc.AttachService(context.Background(), uuid.MustParse(sess.ID), dto.AttachServiceRequest{
		ServiceID: f.snack.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, model.ItemCompleted, item.Status)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.TotalCost.Equal(decimal.NewFromInt(100000)), "got %s", item.TotalCost)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(100000)), "got %s", resp.TotalCost)
	assert.NotNil(t, item.EndTime)
}

func TestAttachTimeBasedStartsAtZero(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)

	resp, err := f.svc.AttachService(context.Background(), uuid.MustParse(sess.ID), dto.AttachServiceRequest{
		ServiceID: f.hourly.ID.String(),
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, model.ItemActive, resp.Items[0].Status)
	assert.True(t, resp.Items[0].TotalCost.IsZero())
	assert.True(t, resp.TotalCost.IsZero())
	assert.Equal(t, 1, resp.Items[0].Quantity) // quantity defaults to 1
}

func TestAttachDuplicateServiceRejected(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	assertKind(t, err, apierror.KindConflict)
}

func TestAttachInactiveServiceRejected(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	f.hourly.Active = false

	_, err := f.svc.AttachService(context.Background(), uuid.MustParse(sess.ID), dto.AttachServiceRequest{
		ServiceID: f.hourly.ID.String(),
	})
	assertKind(t, err, apierror.KindInvalidState)
}

func TestDetachServiceRecomputesTotal(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.snack.ID.String(), Quantity: 2})
	require.NoError(t, err)
	_, err = f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	resp, err := f.svc.DetachService(context.Background(), sid, f.snack.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, f.hourly.ID.String(), resp.Items[0].ServiceID)
	assert.True(t, resp.TotalCost.IsZero())
}

func TestDetachUnknownServiceNotFound(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)

	_, err := f.svc.DetachService(context.Background(), uuid.MustParse(sess.ID), uuid.New())
	assertKind(t, err, apierror.KindNotFound)
}

// ── Pause / Resume ────────────────────────────────────────────────────────────

func TestPauseOnlyTimeBased(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.snack.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.PauseService(context.Background(), sid, f.snack.ID)
	assertKind(t, err, apierror.KindInvalidState)
}

func TestPauseAndSessionStatus(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	resp, err := f.svc.PauseService(context.Background(), sid, f.hourly.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemPaused, resp.Items[0].Status)
	assert.NotNil(t, resp.Items[0].PausedAt)
	// Every non-completed item is paused, so the session itself reads paused
	assert.Equal(t, model.SessionPaused, resp.Status)

	// Pausing again is rejected
	_, err = f.svc.PauseService(context.Background(), sid, f.hourly.ID)
	assertKind(t, err, apierror.KindInvalidState)
}

func TestResumeWithoutPauseRejected(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.ResumeService(context.Background(), sid, f.hourly.ID)
	assertKind(t, err, apierror.KindInvalidState)
}

func TestResumeAccumulatesWholeMinutes(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.PauseService(context.Background(), sid, f.hourly.ID)
	require.NoError(t, err)

	// Rewind the stored pause timestamp: 3 minutes and change elapsed
	stored := f.sessionModel(t, sess.ID)
	rewound := time.Now().Add(-3*time.Minute - 20*time.Second)
	stored.Items[0].PausedAt = &rewound

	resp, err := f.svc.ResumeService(context.Background(), sid, f.hourly.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemActive, resp.Items[0].Status)
	assert.Nil(t, resp.Items[0].PausedAt)
	// Partial minutes are floored
	assert.Equal(t, 3, resp.Items[0].TotalPausedMinutes)
	assert.Equal(t, model.SessionActive, resp.Status)
}

func TestSecondPauseCycleAddsUp(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	for _, pausedMinutes := range []time.Duration{2, 5} {
		_, err = f.svc.PauseService(context.Background(), sid, f.hourly.ID)
		require.NoError(t, err)

		stored := f.sessionModel(t, sess.ID)
		rewound := time.Now().Add(-pausedMinutes * time.Minute)
		stored.Items[0].PausedAt = &rewound

		_, err = f.svc.ResumeService(context.Background(), sid, f.hourly.ID)
		require.NoError(t, err)
	}

	stored := f.sessionModel(t, sess.ID)
	assert.Equal(t, 7, stored.Items[0].TotalPausedMinutes)
}

// ── Complete ──────────────────────────────────────────────────────────────────

func TestCompleteBillsActiveMinutes(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.snack.ID.String()})
	require.NoError(t, err)

	// 90 wall-clock minutes, 30 of them paused → 60 active minutes at 60000/h
	stored := f.sessionModel(t, sess.ID)
	for i := range stored.Items {
		if stored.Items[i].PricingMode == model.PricingTimeBased {
			stored.Items[i].StartTime = time.Now().Add(-90 * time.Minute)
			stored.Items[i].TotalPausedMinutes = 30
		}
	}

	resp, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)

	assert.Equal(t, model.SessionCompleted, resp.Status)
	assert.NotNil(t, resp.EndedAt)
	for _, item := range resp.Items {
		assert.Equal(t, model.ItemCompleted, item.Status)
		assert.NotNil(t, item.EndTime)
	}
	// 60000 (hourly, 60 active min) + 50000 (snack)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(110000)), "got %s", resp.TotalCost)
}

func TestCompleteFoldsOutstandingPause(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.PauseService(context.Background(), sid, f.hourly.ID)
	require.NoError(t, err)

	// 60 minutes on the clock, the last 30 spent paused
	stored := f.sessionModel(t, sess.ID)
	start := time.Now().Add(-60 * time.Minute)
	pausedAt := time.Now().Add(-30 * time.Minute)
	stored.Items[0].StartTime = start
	stored.Items[0].PausedAt = &pausedAt

	resp, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)

	// 30 active minutes at 60000/h → 30000
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(30000)), "got %s", resp.TotalCost)
	assert.Equal(t, 30, resp.Items[0].TotalPausedMinutes)
}

func TestCompleteTwiceRejected(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), sid)
	assertKind(t, err, apierror.KindInvalidState)
}

func TestCompletedSessionRejectsMutations(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)

	_, err = f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	assertKind(t, err, apierror.KindInvalidState)

	_, err = f.svc.PauseService(context.Background(), sid, f.hourly.ID)
	assertKind(t, err, apierror.KindInvalidState)

	_, err = f.svc.DetachService(context.Background(), sid, f.hourly.ID)
	assertKind(t, err, apierror.KindInvalidState)
}

func TestTimeBasedCostRoundsToCents(t *testing.T) {
	f := newSessionFixture(t)

	// 100/h for 50 minutes → 83.33
	f.hourly.UnitPrice = decimal.NewFromInt(100)

	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)
	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.hourly.ID.String()})
	require.NoError(t, err)

	stored := f.sessionModel(t, sess.ID)
	stored.Items[0].StartTime = time.Now().Add(-50 * time.Minute)

	resp, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("83.33")), "got %s", resp.TotalCost)
}

func TestSnapshotIsolatesCatalogEdits(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)
	sid := uuid.MustParse(sess.ID)

	_, err := f.svc.AttachService(context.Background(), sid, dto.AttachServiceRequest{ServiceID: f.snack.ID.String()})
	require.NoError(t, err)

	// Raising the catalog price must not change the already attached item
	f.snack.UnitPrice = decimal.NewFromInt(99999)

	resp, err := f.svc.Complete(context.Background(), sid)
	require.NoError(t, err)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(50000)), "got %s", resp.TotalCost)
}

func TestSendInvoiceRequiresCompletedSession(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.open(t)

	err := f.svc.SendInvoice(context.Background(), uuid.MustParse(sess.ID))
	assertKind(t, err, apierror.KindInvalidState)
}
