package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormVerificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormVerificationRepository creates a new GORM-based VerificationRepository implementation
func NewGormVerificationRepository(db *gorm.DB, logger logger.Logger) (fips.VerificationRepository, error) {
	return &gormVerificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormVerificationRepository) Create(ctx context.Context, record *fips.VerificationRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.VerificationModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create verification record: %w", err)
	}

	r.logger.Info("Created verification record with id ", record.ID)
	return nil
}

func (r *gormVerificationRepository) List(ctx context.Context, query *fips.VerificationQuery) ([]*fips.VerificationRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.VerificationModel
	dbQuery := r.db.WithContext(ctx).Model(&models.VerificationModel{})

	if query.Algorithm != "" {
		dbQuery = dbQuery.Where("algorithm = ?", query.Algorithm)
	}
	if query.Family != "" {
		dbQuery = dbQuery.Where("family = ?", query.Family)
	}
	if query.Outcome != nil {
		dbQuery = dbQuery.Where("outcome = ?", int32(*query.Outcome))
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch verification records: %w", err)
	}

	domainList := make([]*fips.VerificationRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormVerificationRepository) GetByID(ctx context.Context, id string) (*fips.VerificationRecord, error) {
	var model models.VerificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", fips.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch verification record: %w", err)
	}
	return model.ToDomain(), nil
}
