package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/config"
	"gamehouse/internal/dto"
	"gamehouse/internal/infra"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"
	"gamehouse/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessionService owns the billing-session lifecycle: open → attach services →
// (pause ⇄ resume per time-based item)* → complete. Session totals are always
// recomputed from the persisted per-item totals, never accumulated
// incrementally, so a partial write can never drift the bill.
type SessionService interface {
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context, status string, page, limit int) (*dto.SessionListResponse, error)
	AttachService(ctx context.Context, sessionID uuid.UUID, req dto.AttachServiceRequest) (*dto.SessionResponse, error)
	DetachService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error)
	PauseService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error)
	ResumeService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error)
	Complete(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	SendInvoice(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	repo       repository.SessionRepository
	customers  repository.CustomerRepository
	catalog    repository.CatalogRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewSessionService(
	repo repository.SessionRepository,
	customers repository.CustomerRepository,
	catalog repository.CatalogRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		repo:       repo,
		customers:  customers,
		catalog:    catalog,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// ── Open ──────────────────────────────────────────────────────────────────────

func (s *sessionService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apierror.Invalid("invalid customer_id")
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, apierror.NotFound("customer not found")
	}
	if !customer.Active {
		return nil, apierror.InvalidState("customer is deactivated")
	}

	// Guard: one open session per customer (also enforced by a partial
	// unique index on sessions)
	if existing, err := s.repo.FindOpenByCustomer(ctx, customerID); err == nil && existing != nil {
		return nil, apierror.Conflict("customer already has an open session")
	}

	sess := &model.Session{
		CustomerID: customerID,
		OperatorID: operatorID,
		Status:     model.SessionActive,
		TotalCost:  decimal.Zero,
		StartedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	sess.Customer = customer
	return mapSession(sess), nil
}

// ── Get / List ────────────────────────────────────────────────────────────────

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapSession(sess), nil
}

func (s *sessionService) List(ctx context.Context, status string, page, limit int) (*dto.SessionListResponse, error) {
	sessions, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := &dto.SessionListResponse{
		Data:  make([]dto.SessionResponse, 0, len(sessions)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range sessions {
		resp.Data = append(resp.Data, *mapSession(&sessions[i]))
	}
	return resp, nil
}

// ── AttachService ─────────────────────────────────────────────────────────────
// Unit-based services are priced once at attach time (unit price × quantity)
// and complete immediately. Time-based services start accruing at zero cost.

func (s *sessionService) AttachService(ctx context.Context, sessionID uuid.UUID, req dto.AttachServiceRequest) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionCompleted {
		return nil, apierror.InvalidState("session is already completed")
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apierror.Invalid("invalid service_id")
	}
	svc, err := s.catalog.FindByID(ctx, serviceID)
	if err != nil {
		return nil, apierror.NotFound("service not found")
	}
	if !svc.Active {
		return nil, apierror.InvalidState(fmt.Sprintf("service %q is deactivated", svc.Name))
	}

	// A service may be attached at most once per session
	for i := range sess.Items {
		if sess.Items[i].ServiceID == serviceID {
			return nil, apierror.Conflict(fmt.Sprintf("service %q is already attached to this session", svc.Name))
		}
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := time.Now()
	item := &model.SessionItem{
		SessionID:   sess.ID,
		ServiceID:   serviceID,
		ServiceName: svc.Name,
		PricingMode: svc.PricingMode,
		UnitPrice:   svc.UnitPrice,
		Quantity:    quantity,
		StartTime:   now,
	}
	if svc.PricingMode == model.PricingUnitBased {
		item.Status = model.ItemCompleted
		item.TotalCost = svc.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		item.EndTime = &now
	} else {
		item.Status = model.ItemActive
		item.TotalCost = decimal.Zero
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, apierror.Internal(err)
	}
	sess.Items = append(sess.Items, *item)

	return s.saveRecomputed(ctx, sess)
}

// ── DetachService ─────────────────────────────────────────────────────────────

func (s *sessionService) DetachService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionCompleted {
		return nil, apierror.InvalidState("session is already completed")
	}

	idx := findItem(sess, serviceID)
	if idx < 0 {
		return nil, apierror.NotFound("service is not attached to this session")
	}

	if err := s.repo.RemoveItem(ctx, sess.Items[idx].ID); err != nil {
		return nil, apierror.Internal(err)
	}
	sess.Items = append(sess.Items[:idx], sess.Items[idx+1:]...)

	return s.saveRecomputed(ctx, sess)
}

// ── PauseService ──────────────────────────────────────────────────────────────

func (s *sessionService) PauseService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionCompleted {
		return nil, apierror.InvalidState("session is already completed")
	}

	idx := findItem(sess, serviceID)
	if idx < 0 {
		return nil, apierror.NotFound("service is not attached to this session")
	}
	item := &sess.Items[idx]

	if item.PricingMode != model.PricingTimeBased {
		return nil, apierror.InvalidState("only time-based services can be paused")
	}
	if item.Status != model.ItemActive {
		return nil, apierror.InvalidState("service is not running")
	}

	now := time.Now()
	item.Status = model.ItemPaused
	item.PausedAt = &now
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, apierror.Internal(err)
	}

	return s.saveRecomputed(ctx, sess)
}

// ── ResumeService ─────────────────────────────────────────────────────────────
// Resume-without-pause is rejected, never silently corrected.

func (s *sessionService) ResumeService(ctx context.Context, sessionID, serviceID uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionCompleted {
		return nil, apierror.InvalidState("session is already completed")
	}

	idx := findItem(sess, serviceID)
	if idx < 0 {
		return nil, apierror.NotFound("service is not attached to this session")
	}
	item := &sess.Items[idx]

	if item.Status != model.ItemPaused || item.PausedAt == nil {
		return nil, apierror.InvalidState("service is not paused")
	}

	item.TotalPausedMinutes += wholeMinutesSince(*item.PausedAt, time.Now())
	item.Status = model.ItemActive
	item.PausedAt = nil
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, apierror.Internal(err)
	}

	return s.saveRecomputed(ctx, sess)
}

// ── Complete ──────────────────────────────────────────────────────────────────
// Finalizes every running time-based item: active minutes are wall-clock
// minutes since start minus accumulated paused minutes, billed at the hourly
// unit price. Completion is irreversible.

func (s *sessionService) Complete(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == model.SessionCompleted {
		return nil, apierror.InvalidState("session is already completed")
	}

	now := time.Now()
	for i := range sess.Items {
		item := &sess.Items[i]
		if item.Status == model.ItemCompleted {
			continue
		}

		// Fold an outstanding pause before finalizing
		if item.Status == model.ItemPaused && item.PausedAt != nil {
			item.TotalPausedMinutes += wholeMinutesSince(*item.PausedAt, now)
			item.PausedAt = nil
		}

		minutes := wholeMinutesSince(item.StartTime, now) - item.TotalPausedMinutes
		if minutes < 0 {
			minutes = 0
		}
		item.TotalCost = timeBasedCost(item.UnitPrice, minutes)
		item.Status = model.ItemCompleted
		item.EndTime = &now

		if err := s.repo.UpdateItem(ctx, item); err != nil {
			return nil, apierror.Internal(err)
		}
	}

	sess.Status = model.SessionCompleted
	sess.EndedAt = &now
	sess.TotalCost = sumItemCosts(sess.Items)
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return mapSession(sess), nil
}

// ── SendInvoice ───────────────────────────────────────────────────────────────
// Generates the invoice PDF and enqueues a fire-and-forget bot delivery job.

func (s *sessionService) SendInvoice(ctx context.Context, sessionID uuid.UUID) error {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != model.SessionCompleted {
		return apierror.InvalidState("session must be completed before invoicing")
	}

	path, err := infra.GenerateInvoicePDF(sess, s.cfg.VenueName, s.cfg.InvoiceStoragePath)
	if err != nil {
		return apierror.Internal(err)
	}

	caption := fmt.Sprintf("Invoice %s — total %s", sess.ID, sess.TotalCost.StringFixed(2))
	if sess.Customer != nil {
		caption = fmt.Sprintf("Invoice for %s %s — total %s",
			sess.Customer.FirstName, sess.Customer.LastName, sess.TotalCost.StringFixed(2))
	}
	payload := worker.NotifyJobPayload{
		ChatID:   s.cfg.BotChatID,
		Caption:  caption,
		FilePath: path,
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueNotify(ctx, payload); err != nil {
			return apierror.Internal(err)
		}
	}
	return nil
}

// ── Billing helpers ───────────────────────────────────────────────────────────

// wholeMinutesSince returns floor((to − from) in milliseconds ÷ 60000).
func wholeMinutesSince(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// timeBasedCost bills active minutes at an hourly unit price.
func timeBasedCost(hourlyRate decimal.Decimal, minutes int) decimal.Decimal {
	return hourlyRate.
		Mul(decimal.NewFromInt(int64(minutes))).
		Div(decimal.NewFromInt(60)).
		Round(2)
}

func sumItemCosts(items []model.SessionItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalCost)
	}
	return total
}

// deriveStatus reports "paused" only while every non-completed item is paused.
func deriveStatus(items []model.SessionItem) string {
	paused := 0
	running := 0
	for i := range items {
		switch items[i].Status {
		case model.ItemActive:
			running++
		case model.ItemPaused:
			paused++
		}
	}
	if paused > 0 && running == 0 {
		return model.SessionPaused
	}
	return model.SessionActive
}

func findItem(sess *model.Session, serviceID uuid.UUID) int {
	for i := range sess.Items {
		if sess.Items[i].ServiceID == serviceID {
			return i
		}
	}
	return -1
}

func (s *sessionService) findSession(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("session not found")
		}
		return nil, apierror.Internal(err)
	}
	return sess, nil
}

// saveRecomputed refreshes total and derived status from the items and
// persists the session row.
func (s *sessionService) saveRecomputed(ctx context.Context, sess *model.Session) (*dto.SessionResponse, error) {
	sess.TotalCost = sumItemCosts(sess.Items)
	sess.Status = deriveStatus(sess.Items)
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, apierror.Internal(err)
	}
	return mapSession(sess), nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func mapSession(sess *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:         sess.ID.String(),
		CustomerID: sess.CustomerID.String(),
		OperatorID: sess.OperatorID.String(),
		Status:     sess.Status,
		TotalCost:  sess.TotalCost,
		StartedAt:  sess.StartedAt.UTC().Format(time.RFC3339),
		Items:      make([]dto.SessionItemResponse, 0, len(sess.Items)),
	}
	if sess.Customer != nil {
		name := sess.Customer.FirstName + " " + sess.Customer.LastName
		resp.Customer = &name
	}
	if sess.EndedAt != nil {
		t := sess.EndedAt.UTC().Format(time.RFC3339)
		resp.EndedAt = &t
	}
	for i := range sess.Items {
		resp.Items = append(resp.Items, mapSessionItem(&sess.Items[i]))
	}
	return resp
}

func mapSessionItem(item *model.SessionItem) dto.SessionItemResponse {
	r := dto.SessionItemResponse{
		ServiceID:          item.ServiceID.String(),
		ServiceName:        item.ServiceName,
		PricingMode:        item.PricingMode,
		UnitPrice:          item.UnitPrice,
		Quantity:           item.Quantity,
		Status:             item.Status,
		StartTime:          item.StartTime.UTC().Format(time.RFC3339),
		TotalPausedMinutes: item.TotalPausedMinutes,
		TotalCost:          item.TotalCost,
	}
	if item.EndTime != nil {
		t := item.EndTime.UTC().Format(time.RFC3339)
		r.EndTime = &t
	}
	if item.PausedAt != nil {
		t := item.PausedAt.UTC().Format(time.RFC3339)
		r.PausedAt = &t
	}
	return r
}
