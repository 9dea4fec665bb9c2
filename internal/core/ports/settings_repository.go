package ports

import (
	"context"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/producer"
)

// SettingsRepository defines the persistence contract for producer commission
// settings.
type SettingsRepository interface {
	// Get retrieves the settings for one producer.
	// Returns errs.ErrObjectNotFound when the producer has no settings row.
	Get(ctx context.Context, producerID kernel.UserID) (*producer.Settings, error)

	// Save persists the settings, inserting or replacing the producer's row.
	Save(ctx context.Context, settings *producer.Settings) error
}
