package producer

import (
	"errors"
	"sort"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
)

// DefaultMaxRevisions applies when a producer never configured a limit.
const DefaultMaxRevisions = 2

// ErrSettingsAreNotConstructed is returned when a Settings instance was not
// created through NewSettings or RestoreSettings.
var ErrSettingsAreNotConstructed = errors.New("Settings must be created via NewSettings or RestoreSettings")

// ErrNotAcceptingOrders is returned when an order targets a producer who
// switched new commissions off.
var ErrNotAcceptingOrders = errors.New("producer is not accepting new orders")

// Settings holds one producer's commission configuration: the base price, the
// priced addon catalog, the revision allowance, and whether new orders are
// accepted at all. Orders snapshot prices from here at creation time and never
// read the settings again.
type Settings struct {
	producerID      kernel.UserID
	basePrice       kernel.Money
	addonPrices     map[string]kernel.Money
	maxRevisions    int
	acceptingOrders bool

	isConstructed bool
}

// NewSettings creates a producer's commission configuration.
func NewSettings(
	producerID kernel.UserID,
	basePrice kernel.Money,
	addonPrices map[string]kernel.Money,
	maxRevisions int,
	acceptingOrders bool,
) (*Settings, error) {
	if err := producerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("producerId", err)
	}
	if basePrice.IsZero() {
		return nil, errs.NewValueIsRequiredError("basePrice")
	}
	if maxRevisions < 0 {
		return nil, errs.NewValueIsInvalidError("maxRevisions")
	}

	if addonPrices == nil {
		addonPrices = map[string]kernel.Money{}
	}

	return &Settings{
		producerID:      producerID,
		basePrice:       basePrice,
		addonPrices:     addonPrices,
		maxRevisions:    maxRevisions,
		acceptingOrders: acceptingOrders,
		isConstructed:   true,
	}, nil
}

// RestoreSettings reconstructs settings from persistence.
func RestoreSettings(
	producerID kernel.UserID,
	basePrice kernel.Money,
	addonPrices map[string]kernel.Money,
	maxRevisions int,
	acceptingOrders bool,
) (*Settings, error) {
	return NewSettings(producerID, basePrice, addonPrices, maxRevisions, acceptingOrders)
}

// Validate ensures the settings were created through a constructor.
func (s *Settings) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettingsAreNotConstructed
	}
	return nil
}

// ProducerID returns the owning producer.
func (s *Settings) ProducerID() kernel.UserID { return s.producerID }

// BasePrice returns the commission price before addons.
func (s *Settings) BasePrice() kernel.Money { return s.basePrice }

// AddonPrice looks up the current price for a named addon.
func (s *Settings) AddonPrice(name string) (kernel.Money, bool) {
	price, ok := s.addonPrices[name]
	return price, ok
}

// AddonNames returns the catalog's addon names in sorted order.
func (s *Settings) AddonNames() []string {
	names := make([]string, 0, len(s.addonPrices))
	for name := range s.addonPrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxRevisions returns the revision allowance for new orders.
func (s *Settings) MaxRevisions() int { return s.maxRevisions }

// AcceptingOrders reports whether the producer takes new commissions.
func (s *Settings) AcceptingOrders() bool { return s.acceptingOrders }
