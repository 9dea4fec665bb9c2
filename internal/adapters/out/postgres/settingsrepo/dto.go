// Package settingsrepo implements persistence for producer commission
// settings.
package settingsrepo

import (
	"encoding/json"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/producer"
)

// SettingsDTO is the database row for one producer's commission
// configuration. The addon catalog is stored as a jsonb map of addon name to
// price in cents.
type SettingsDTO struct {
	ProducerID      int64  `gorm:"primaryKey;autoIncrement:false"`
	BasePriceCents  int64
	AddonPrices     []byte `gorm:"type:jsonb"`
	MaxRevisions    int
	AcceptingOrders bool
}

// TableName overrides GORM's default naming to use "producer_settings".
func (SettingsDTO) TableName() string {
	return "producer_settings"
}

func fromDomain(settings *producer.Settings) (SettingsDTO, error) {
	prices := map[string]int64{}
	for _, name := range settings.AddonNames() {
		price, _ := settings.AddonPrice(name)
		prices[name] = price.Cents()
	}

	raw, err := json.Marshal(prices)
	if err != nil {
		return SettingsDTO{}, err
	}

	return SettingsDTO{
		ProducerID:      settings.ProducerID().Int64(),
		BasePriceCents:  settings.BasePrice().Cents(),
		AddonPrices:     raw,
		MaxRevisions:    settings.MaxRevisions(),
		AcceptingOrders: settings.AcceptingOrders(),
	}, nil
}

func toDomain(dto SettingsDTO) (*producer.Settings, error) {
	producerID, err := kernel.NewUserID(dto.ProducerID)
	if err != nil {
		return nil, err
	}
	basePrice, err := kernel.NewMoneyFromCents(dto.BasePriceCents)
	if err != nil {
		return nil, err
	}

	var cents map[string]int64
	if len(dto.AddonPrices) > 0 {
		if err = json.Unmarshal(dto.AddonPrices, &cents); err != nil {
			return nil, err
		}
	}

	prices := make(map[string]kernel.Money, len(cents))
	for name, c := range cents {
		price, priceErr := kernel.NewMoneyFromCents(c)
		if priceErr != nil {
			return nil, priceErr
		}
		prices[name] = price
	}

	return producer.RestoreSettings(producerID, basePrice, prices, dto.MaxRevisions, dto.AcceptingOrders)
}
