package customers

import (
	"context"
	"fmt"
)

// Service handles customer business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all customers newest-first together with the live count.
func (s *Service) List(ctx context.Context) ([]Customer, int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	return customers, total, nil
}

// Create inserts one customer from validated form input.
func (s *Service) Create(ctx context.Context, form CreateCustomerForm) (*Customer, error) {
	customer := Customer{
		Name:       form.Name,
		FatherName: form.FatherName,
		Email:      form.Email,
		Phone:      form.Phone,
		Whatsapp:   form.Whatsapp,
		Address:    form.Address,
		State:      form.State,
		Pincode:    form.Pincode,
	}
	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	customer.ID = id
	return &customer, nil
}
