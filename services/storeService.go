package services

import (
	"context"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/models"
)

type StoreRepository interface {
	CreateStore(ctx context.Context, s models.Store) (int64, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	GetStore(ctx context.Context, id int64) (models.Store, error)
	UpdateStore(ctx context.Context, s models.Store) error
	DeleteStore(ctx context.Context, id int64) error
}

type StoreService struct {
	repo StoreRepository
}

func NewStoreService(repo StoreRepository) *StoreService {
	return &StoreService{repo: repo}
}

// CreateStore validates and inserts a store. A duplicate store code is a
// conflict.
func (s *StoreService) CreateStore(ctx context.Context, in *models.StoreInput) (models.Store, error) {
	if err := helpers.Validate(in); err != nil {
		return models.Store{}, err
	}
	id, err := s.repo.CreateStore(ctx, in.Store())
	if err != nil {
		return models.Store{}, err
	}
	return s.repo.GetStore(ctx, id)
}

func (s *StoreService) ListStores(ctx context.Context) ([]models.Store, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []models.Store{}
	}
	return stores, nil
}

func (s *StoreService) UpdateStore(ctx context.Context, id int64, in *models.StoreInput) (models.Store, error) {
	if id <= 0 {
		return models.Store{}, apperrors.NewValidation("id", "Missing required field: id")
	}
	if err := helpers.Validate(in); err != nil {
		return models.Store{}, err
	}
	store := in.Store()
	store.ID = id
	if err := s.repo.UpdateStore(ctx, store); err != nil {
		return models.Store{}, err
	}
	return s.repo.GetStore(ctx, id)
}

// DeleteStore succeeds when the store is already gone.
func (s *StoreService) DeleteStore(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "Missing required field: id")
	}
	return s.repo.DeleteStore(ctx, id)
}
