package service

import (
	"context"
	"errors"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, search string, page, limit int) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	// Phone is unique among active customers; the partial index backs this up
	if existing, err := s.repo.FindActiveByPhone(ctx, req.Phone); err == nil && existing != nil {
		return nil, apierror.Conflict("an active customer with this phone already exists")
	}

	customer := &model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Notes:     req.Notes,
		Active:    true,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, search string, page, limit int) (*dto.CustomerListResponse, error) {
	customers, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := &dto.CustomerListResponse{
		Data:  make([]dto.CustomerResponse, 0, len(customers)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range customers {
		resp.Data = append(resp.Data, mapCustomer(&customers[i]))
	}
	return resp, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil && *req.Phone != customer.Phone {
		if existing, err := s.repo.FindActiveByPhone(ctx, *req.Phone); err == nil && existing != nil && existing.ID != id {
			return nil, apierror.Conflict("an active customer with this phone already exists")
		}
		customer.Phone = *req.Phone
	}
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

// Reactivate restores a soft-deleted customer unless another active customer
// took the phone number in the meantime.
func (s *customerService) Reactivate(ctx context.Context, id uuid.UUID) error {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}
	if customer.Active {
		return nil
	}
	if existing, err := s.repo.FindActiveByPhone(ctx, customer.Phone); err == nil && existing != nil {
		return apierror.Conflict("an active customer with this phone already exists")
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func (s *customerService) findCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer not found")
		}
		return nil, apierror.Internal(err)
	}
	return customer, nil
}

func mapCustomer(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Notes:     c.Notes,
		Active:    c.Active,
	}
}
