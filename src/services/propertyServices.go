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
	"gorm.io/gorm/clause"
)

// attempts made by AddPropertyImage before reporting a cover conflict
const coverImageAttempts = 3

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// ======================= PROPERTIES =======================

// CreateProperty stores a new property. The internal code must be unused and
// the owner must exist.
func (s *PropertyService) CreateProperty(ctx context.Context, req dtos.CreatePropertyRequest) (*models.PropertyModel, error) {
	property := &models.PropertyModel{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Price:        req.Price,
		CodeInternal: strings.TrimSpace(req.CodeInternal),
		Year:         req.Year,
		OwnerID:      req.OwnerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := codeTaken(tx, property.CodeInternal, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}

		if err := ensureOwnerExists(tx, property.OwnerID); err != nil {
			return err
		}

		return tx.Create(property).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}

	logger.FromContext(ctx).Info("Property created",
		zap.Int("property_id", property.ID),
		zap.String("code_internal", property.CodeInternal),
	)
	return property, nil
}

// UpdateProperty overwrites every field of an existing property
func (s *PropertyService) UpdateProperty(ctx context.Context, id int, req dtos.UpdatePropertyRequest) (*models.PropertyModel, error) {
	var property models.PropertyModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		// a case-only change of the row's own code skips the check; the unique index still guards it
		code := strings.TrimSpace(req.CodeInternal)
		if !strings.EqualFold(code, property.CodeInternal) {
			taken, err := codeTaken(tx, code, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateCode
			}
		}

		if err := ensureOwnerExists(tx, req.OwnerID); err != nil {
			return err
		}

		property.Name = strings.TrimSpace(req.Name)
		property.Address = strings.TrimSpace(req.Address)
		property.Price = req.Price
		property.CodeInternal = code
		property.Year = req.Year
		property.OwnerID = req.OwnerID

		return tx.Save(&property).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}

	logger.FromContext(ctx).Info("Property updated", zap.Int("property_id", id))
	return &property, nil
}

// ChangePropertyPrice sets the price of an existing property
func (s *PropertyService) ChangePropertyPrice(ctx context.Context, id int, price float64) (*models.PropertyModel, error) {
	var property models.PropertyModel
	err := s.db.WithContext(ctx).First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&property).Update("price", price).Error; err != nil {
		return nil, err
	}
	property.Price = price

	logger.FromContext(ctx).Info("Property price changed",
		zap.Int("property_id", id),
		zap.Float64("price", price),
	)
	return &property, nil
}

// DeleteProperty removes a property together with its images and traces. It
// reports false when the property does not exist.
func (s *PropertyService) DeleteProperty(ctx context.Context, id int) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.PropertyModel
		if err := tx.Select("id").First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyTraceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PropertyModel{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		logger.FromContext(ctx).Info("Property deleted", zap.Int("property_id", id))
	}
	return deleted, nil
}

// GetPropertyByID returns the detail view, or nil without error when the
// property does not exist. Images are ordered by id, traces newest first.
func (s *PropertyService) GetPropertyByID(ctx context.Context, id int) (*dtos.PropertyDTO, error) {
	var property models.PropertyModel
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Traces", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_sale DESC, id DESC")
		}).
		First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dtos.ToPropertyDTO(&property), nil
}

// ListProperties applies the optional filters, orders the result and returns
// one page of summaries
func (s *PropertyService) ListProperties(ctx context.Context, q dtos.ListPropertiesQuery) (dtos.PagedResult[dtos.PropertyListItemDTO], error) {
	query := applyPropertyFilters(s.db.WithContext(ctx).Model(&models.PropertyModel{}), q).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return dtos.PagedResult[dtos.PropertyListItemDTO]{}, err
	}

	offset, limit := pageWindow(q.Page, q.PageSize)
	var properties []models.PropertyModel
	if err := query.Preload("Owner").
		Order(propertyOrder(q.SortBy, q.Desc)).
		Offset(offset).Limit(limit).
		Find(&properties).Error; err != nil {
		return dtos.PagedResult[dtos.PropertyListItemDTO]{}, err
	}

	counts, err := s.imageCounts(ctx, properties)
	if err != nil {
		return dtos.PagedResult[dtos.PropertyListItemDTO]{}, err
	}

	items := make([]dtos.PropertyListItemDTO, 0, len(properties))
	for i := range properties {
		items = append(items, *dtos.ToPropertyListItemDTO(&properties[i], counts[properties[i].ID]))
	}
	return dtos.NewPagedResult(items, total, q.Page, limit), nil
}

// ======================= IMAGES & TRACES =======================

// AddPropertyImage attaches an image to a property. When the image is the
// cover (enabled), any previous cover of the property is demoted in the same
// transaction.
func (s *PropertyService) AddPropertyImage(ctx context.Context, propertyID int, file string, enabled bool) (*models.PropertyImageModel, error) {
	var (
		image *models.PropertyImageModel
		err   error
	)
	for attempt := 1; attempt <= coverImageAttempts; attempt++ {
		image, err = s.addPropertyImage(ctx, propertyID, strings.TrimSpace(file), enabled)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		logger.FromContext(ctx).Warn("Cover image collision, retrying",
			zap.Int("property_id", propertyID),
			zap.Int("attempt", attempt),
		)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCoverImageConflict
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Property image added",
		zap.Int("property_id", propertyID),
		zap.Int("image_id", image.ID),
		zap.Bool("enabled", enabled),
	)
	return image, nil
}

func (s *PropertyService) addPropertyImage(ctx context.Context, propertyID int, file string, enabled bool) (*models.PropertyImageModel, error) {
	image := &models.PropertyImageModel{PropertyID: propertyID, File: file, Enabled: enabled}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serialises cover changes per property
		var property models.PropertyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		if enabled {
			if err := tx.Model(&models.PropertyImageModel{}).
				Where("property_id = ? AND enabled = ?", propertyID, true).
				Update("enabled", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(image).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// AddPropertyTrace appends a sale record to a property
func (s *PropertyService) AddPropertyTrace(ctx context.Context, propertyID int, req dtos.AddTraceRequest) (*models.PropertyTraceModel, error) {
	if err := ensurePropertyExists(s.db.WithContext(ctx), propertyID); err != nil {
		return nil, err
	}

	trace := &models.PropertyTraceModel{
		PropertyID: propertyID,
		DateSale:   req.DateSale.UTC(),
		Name:       strings.TrimSpace(req.Name),
		Value:      req.Value,
		Tax:        req.Tax,
	}
	if err := s.db.WithContext(ctx).Create(trace).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("Property trace added",
		zap.Int("property_id", propertyID),
		zap.Int("trace_id", trace.ID),
	)
	return trace, nil
}

// GetPropertyTraces lists a property's sales, newest first
func (s *PropertyService) GetPropertyTraces(ctx context.Context, propertyID int) ([]models.PropertyTraceModel, error) {
	db := s.db.WithContext(ctx)
	if err := ensurePropertyExists(db, propertyID); err != nil {
		return nil, err
	}

	traces := []models.PropertyTraceModel{}
	if err := db.Where("property_id = ?", propertyID).
		Order("date_sale DESC, id DESC").
		Find(&traces).Error; err != nil {
		return nil, err
	}
	return traces, nil
}

// ======================= HELPERS =======================

func (s *PropertyService) imageCounts(ctx context.Context, properties []models.PropertyModel) (map[int]int, error) {
	counts := make(map[int]int, len(properties))
	if len(properties) == 0 {
		return counts, nil
	}

	ids := make([]int, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}

	var rows []struct {
		PropertyID int
		ImageCount int
	}
	if err := s.db.WithContext(ctx).Model(&models.PropertyImageModel{}).
		Select("property_id, COUNT(*) AS image_count").
		Where("property_id IN ?", ids).
		Group("property_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PropertyID] = r.ImageCount
	}
	return counts, nil
}

func applyPropertyFilters(db *gorm.DB, q dtos.ListPropertiesQuery) *gorm.DB {
	if name := strings.TrimSpace(q.Name); name != "" {
		db = db.Where(likeClause("name"), containsPattern(name))
	}
	if address := strings.TrimSpace(q.Address); address != "" {
		db = db.Where(likeClause("address"), containsPattern(address))
	}
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	if q.MinYear != nil {
		db = db.Where("year >= ?", *q.MinYear)
	}
	if q.MaxYear != nil {
		db = db.Where("year <= ?", *q.MaxYear)
	}
	if q.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.OwnerID)
	}
	return db
}

// propertyOrder maps sortBy to an ORDER BY clause. Unknown or empty keys sort
// by id ascending and ignore desc. id breaks ties so paging is stable.
func propertyOrder(sortBy string, desc bool) string {
	var column string
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		column = "price"
	case "year":
		column = "year"
	case "name":
		column = "name"
	default:
		return "id ASC"
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC"
}

// codeTaken reports whether another property already uses code. excludeID
// is the property being updated, or 0.
func codeTaken(tx *gorm.DB, code string, excludeID int) (bool, error) {
	query := tx.Model(&models.PropertyModel{}).Where(codeMatchColumn(tx.Dialector.Name())+" = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// codeMatchColumn compares codes byte for byte. MySQL columns default to a
// case-insensitive collation.
func codeMatchColumn(dialect string) string {
	if dialect == "mysql" {
		return "BINARY code_internal"
	}
	return "code_internal"
}

func ensureOwnerExists(tx *gorm.DB, ownerID int) error {
	var count int64
	if err := tx.Model(&models.OwnerModel{}).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrOwnerNotFound
	}
	return nil
}

func ensurePropertyExists(tx *gorm.DB, propertyID int) error {
	var count int64
	if err := tx.Model(&models.PropertyModel{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// translateWriteError maps constraint violations raised by concurrent writers
// onto the same failures the explicit checks return
func translateWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateCode
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrOwnerNotFound
	default:
		return err
	}
}
