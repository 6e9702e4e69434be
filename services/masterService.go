package services

import (
	"context"
	"fmt"
	"log/slog"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/logger"
	"boutique-tailoring/models"
	"boutique-tailoring/uploads"
)

const (
	defaultMasterStatus = "active"
	defaultMasterRole   = "user"
	profileImageDir     = "profile_images"
)

type MasterRepository interface {
	CreateMaster(ctx context.Context, m models.Master) (int64, error)
	MasterEmailExists(ctx context.Context, email string) (bool, error)
	ListMasters(ctx context.Context) ([]models.Master, error)
	GetMaster(ctx context.Context, id int64) (models.Master, error)
	UpdateMaster(ctx context.Context, id int64, columns []string, values []interface{}) error
	DeleteMaster(ctx context.Context, id int64) error
}

type MasterService struct {
	repo  MasterRepository
	files *uploads.Store
	log   *slog.Logger
}

func NewMasterService(repo MasterRepository, files *uploads.Store, log *slog.Logger) *MasterService {
	return &MasterService{repo: repo, files: files, log: log}
}

// CreateMaster registers a staff member. photo is optional.
func (s *MasterService) CreateMaster(ctx context.Context, in *models.MasterInput, photo *models.Attachment) (int64, error) {
	log := logger.FromContext(ctx, s.log)

	if err := helpers.Validate(in); err != nil {
		return 0, err
	}
	exists, err := s.repo.MasterEmailExists(ctx, in.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("email %s: %w", in.Email, apperrors.ErrConflict)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	m := models.Master{
		Email:     in.Email,
		Password:  hash,
		Username:  optional(in.Username),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     optional(in.Phone),
		Status:    in.Status,
		Role:      in.Role,
	}
	if m.Status == "" {
		m.Status = defaultMasterStatus
	}
	if m.Role == "" {
		m.Role = defaultMasterRole
	}

	batch := s.files.NewBatch()
	if photo != nil {
		rel, err := s.saveProfileImage(batch, *photo)
		if err != nil {
			return 0, err
		}
		m.ProfileImage = &rel
	}

	id, err := s.repo.CreateMaster(ctx, m)
	if err != nil {
		if derr := batch.Discard(); derr != nil {
			log.Warn("remove profile image failed", slog.String("error", derr.Error()))
		}
		return 0, err
	}
	log.Info("master created", slog.Int64("user_id", id))
	return id, nil
}

func (s *MasterService) saveProfileImage(batch *uploads.Batch, photo models.Attachment) (string, error) {
	ext, err := s.files.Policy().Check(photo.Filename, photo.Size)
	if err != nil {
		return "", apperrors.NewValidation("profile_image", err.Error())
	}
	if err := s.files.EnsureDir(profileImageDir); err != nil {
		return "", err
	}
	rc, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("open profile image: %w", err)
	}
	defer rc.Close()
	return batch.Save(profileImageDir, ext, rc)
}

func (s *MasterService) ListMasters(ctx context.Context) ([]models.Master, error) {
	masters, err := s.repo.ListMasters(ctx)
	if err != nil {
		return nil, err
	}
	if masters == nil {
		masters = []models.Master{}
	}
	return masters, nil
}

func (s *MasterService) GetMaster(ctx context.Context, id int64) (models.Master, error) {
	if id <= 0 {
		return models.Master{}, apperrors.NewValidation("id", "Missing required field: id")
	}
	return s.repo.GetMaster(ctx, id)
}

// UpdateMaster changes the profile fields present in the request.
func (s *MasterService) UpdateMaster(ctx context.Context, in *models.MasterUpdate) (models.Master, error) {
	if err := helpers.Validate(in); err != nil {
		return models.Master{}, err
	}
	columns, values := in.Columns()
	if len(columns) == 0 {
		return models.Master{}, apperrors.NewValidation("fields", "No valid fields to update")
	}
	if err := s.repo.UpdateMaster(ctx, in.ID.Int64(), columns, values); err != nil {
		return models.Master{}, err
	}
	return s.repo.GetMaster(ctx, in.ID.Int64())
}

func (s *MasterService) DeleteMaster(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "Missing required field: id")
	}
	return s.repo.DeleteMaster(ctx, id)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
