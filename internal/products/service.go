package products

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

// Add validates the payload, rejects a name that already exists (ignoring case and
// surrounding whitespace), checks the consignor and inserts the product. The checks
// and the insert share one transaction; the unique index on the normalized name
// settles concurrent inserts.
func (s *Service) Add(ctx context.Context, payload shared.Payload) (*Product, error) {
	req, err := ParseCreateRequest(payload)
	if err != nil {
		return nil, err
	}
	normalized := shared.NormalizeName(req.Name)

	var created *Product
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		exists, err := repo.NameExists(ctx, normalized)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: product %q already exists", shared.ErrConflict, req.Name)
		}

		found, err := repo.ConsignorExists(ctx, req.ConsignorID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: consignor %d", shared.ErrReferenceNotFound, req.ConsignorID)
		}

		created, err = repo.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
	}
	return s.repo.Get(ctx, id)
}

// Update applies only the fields present in payload.
func (s *Service) Update(ctx context.Context, id int64, payload shared.Payload) (*Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
	}
	return s.repo.Update(ctx, id, payload)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}
