package suppliers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service handles supplier business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all suppliers plus the category list for the creation form.
// A missing categories table yields an empty list rather than an error.
func (s *Service) List(ctx context.Context) ([]Supplier, []Category, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list suppliers: %w", err)
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		if !errors.Is(err, ErrTableMissing) {
			return nil, nil, fmt.Errorf("list categories: %w", err)
		}
		if s.logger != nil {
			s.logger.Warn("categories table missing, rendering empty list")
		}
		categories = nil
	}
	return suppliers, categories, nil
}

// Create inserts one supplier row. There is no required-field validation:
// whatever the form submitted is persisted verbatim.
func (s *Service) Create(ctx context.Context, supplier Supplier) (*Supplier, error) {
	id, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	supplier.ID = id
	return &supplier, nil
}
