package services

import (
	"context"
	"errors"
	"strings"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/RealEstate/RealEstate-Backend/src/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OwnerService struct {
	db *gorm.DB
}

func NewOwnerService(db *gorm.DB) *OwnerService {
	return &OwnerService{db: db}
}

// CreateOwner stores a new owner with trimmed fields. A blank photo is stored as null.
func (s *OwnerService) CreateOwner(ctx context.Context, req dtos.CreateOwnerRequest) (*models.OwnerModel, error) {
	owner := &models.OwnerModel{
		Name:     strings.TrimSpace(req.Name),
		Address:  strings.TrimSpace(req.Address),
		Photo:    nilIfBlank(req.Photo),
		Birthday: req.Birthday,
	}
	if err := s.db.WithContext(ctx).Create(owner).Error; err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Owner created", zap.Int("owner_id", owner.ID))
	return owner, nil
}

// GetOwnerByID returns nil without error when the owner does not exist
func (s *OwnerService) GetOwnerByID(ctx context.Context, id int) (*models.OwnerModel, error) {
	var owner models.OwnerModel
	err := s.db.WithContext(ctx).
		Preload("Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// ListOwners pages through owners ordered by id. The name filter is a
// case-insensitive substring match.
func (s *OwnerService) ListOwners(ctx context.Context, q dtos.ListOwnersQuery) (dtos.PagedResult[models.OwnerModel], error) {
	query := s.db.WithContext(ctx).Model(&models.OwnerModel{})
	if name := strings.TrimSpace(q.Name); name != "" {
		query = query.Where(likeClause("name"), containsPattern(name))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return dtos.PagedResult[models.OwnerModel]{}, err
	}

	offset, limit := pageWindow(q.Page, q.PageSize)
	var owners []models.OwnerModel
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&owners).Error; err != nil {
		return dtos.PagedResult[models.OwnerModel]{}, err
	}

	return dtos.NewPagedResult(owners, total, q.Page, limit), nil
}

// UpdateOwner overwrites every mutable field of an existing owner
func (s *OwnerService) UpdateOwner(ctx context.Context, id int, req dtos.UpdateOwnerRequest) (*models.OwnerModel, error) {
	var owner models.OwnerModel
	err := s.db.WithContext(ctx).First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}

	owner.Name = strings.TrimSpace(req.Name)
	owner.Address = strings.TrimSpace(req.Address)
	owner.Photo = nilIfBlank(req.Photo)
	owner.Birthday = req.Birthday

	if err := s.db.WithContext(ctx).Save(&owner).Error; err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Owner updated", zap.Int("owner_id", id))
	return &owner, nil
}

// DeleteOwner removes an owner that has no properties. It reports false when
// the owner does not exist.
func (s *OwnerService) DeleteOwner(ctx context.Context, id int) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.OwnerModel
		if err := tx.Select("id").First(&owner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.PropertyModel{}).Where("owner_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrOwnerHasProperties
		}

		if err := tx.Delete(&models.OwnerModel{}, id).Error; err != nil {
			// a property inserted after the count trips the RESTRICT foreign key
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrOwnerHasProperties
			}
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		logger.FromContext(ctx).Info("Owner deleted", zap.Int("owner_id", id))
	}
	return deleted, nil
}
