package services

import (
	"context"
	"fmt"
	"testing"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStores struct {
	rows   map[int64]models.Store
	nextID int64
}

func newMemStores() *memStores {
	return &memStores{rows: map[int64]models.Store{}}
}

func (m *memStores) CreateStore(_ context.Context, s models.Store) (int64, error) {
	for _, row := range m.rows {
		if row.StoreCode == s.StoreCode {
			return 0, fmt.Errorf("store code %s: %w", s.StoreCode, apperrors.ErrConflict)
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.rows[s.ID] = s
	return s.ID, nil
}

func (m *memStores) ListStores(context.Context) ([]models.Store, error) {
	var out []models.Store
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *memStores) GetStore(_ context.Context, id int64) (models.Store, error) {
	row, ok := m.rows[id]
	if !ok {
		return models.Store{}, fmt.Errorf("store %d: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (m *memStores) UpdateStore(_ context.Context, s models.Store) error {
	if _, ok := m.rows[s.ID]; !ok {
		return fmt.Errorf("store %d: %w", s.ID, apperrors.ErrNotFound)
	}
	m.rows[s.ID] = s
	return nil
}

func (m *memStores) DeleteStore(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func validStore(code string) *models.StoreInput {
	return &models.StoreInput{
		StoreName:    "Main Street",
		StoreCode:    models.FlexString(code),
		PhoneNumber:  "9845012345",
		AddressLine1: "12 Main Street",
		City:         "Kochi",
		State:        "Kerala",
		Country:      "India",
		Pincode:      "682001",
	}
}

func TestCreateStoreAppliesDefaults(t *testing.T) {
	svc := NewStoreService(newMemStores())

	store, err := svc.CreateStore(context.Background(), validStore("S1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.ID)
	assert.Equal(t, models.DefaultWorkingHours, store.WorkingHours)
	assert.Equal(t, models.DefaultStoreStatus, store.Status)

	_, err = svc.CreateStore(context.Background(), validStore("S1"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateStoreValidation(t *testing.T) {
	repo := newMemStores()
	svc := NewStoreService(repo)
	in := validStore("S1")
	in.City = ""
	in.Email = "not-an-email"

	_, err := svc.CreateStore(context.Background(), in)
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok, "%v", err)
	assert.Len(t, ve.Errors, 2)
	assert.Empty(t, repo.rows)
}

func TestUpdateAndDeleteStore(t *testing.T) {
	repo := newMemStores()
	svc := NewStoreService(repo)
	ctx := context.Background()
	created, err := svc.CreateStore(ctx, validStore("S1"))
	require.NoError(t, err)

	in := validStore("S1")
	in.City = "Thrissur"
	updated, err := svc.UpdateStore(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Thrissur", updated.City)

	_, err = svc.UpdateStore(ctx, 99, in)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = svc.UpdateStore(ctx, 0, in)
	_, isValidation := apperrors.AsValidation(err)
	assert.True(t, isValidation)

	require.NoError(t, svc.DeleteStore(ctx, created.ID))
	require.NoError(t, svc.DeleteStore(ctx, created.ID))
	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stores)
	assert.Empty(t, stores)
}
