package settingsrepo

import (
	"context"
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get retrieves the settings for one producer.
func (r *GormSettingsRepository) Get(ctx context.Context, producerID kernel.UserID) (*producer.Settings, error) {
	if err := producerID.Validate(); err != nil {
		return nil, err
	}

	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "producer_id = ?", producerID.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("producerSettings", producerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save inserts or replaces the producer's settings row.
func (r *GormSettingsRepository) Save(ctx context.Context, settings *producer.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(settings)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
