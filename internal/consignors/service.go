package consignors

import (
	"context"
	"fmt"

	"github.com/consignly/consignly/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates the payload and stores a new consignor. Names and emails are not
// required to be unique.
func (s *Service) Add(ctx context.Context, payload shared.Payload) (*Consignor, error) {
	req, err := ParseCreateRequest(payload)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *Service) List(ctx context.Context) ([]Consignor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Consignor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

// Update applies only the fields present in payload.
func (s *Service) Update(ctx context.Context, id int64, payload shared.Payload) (*Consignor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
	}
	return s.repo.Update(ctx, id, payload)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}
