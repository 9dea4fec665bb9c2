package services

import (
	"sort"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/pkg/errs"
)

// DepositPercent is the share of the total collected up front; the remaining
// balance is charged after demo approval.
const DepositPercent = 30

// PricingService prices a commission from the producer's current settings.
// The result is snapshotted onto the order; later settings changes never
// affect existing orders.
type PricingService struct{}

// NewPricingService creates the pricing service.
func NewPricingService() *PricingService {
	return &PricingService{}
}

// Quote resolves the selected addon names against the producer's catalog and
// returns the priced addon list plus the total. Duplicate selections collapse
// to one addon; unknown names are rejected. Addons come back sorted by name so
// repeated quoting of the same selection yields an identical list.
func (s *PricingService) Quote(
	settings *producer.Settings,
	selectedAddons []string,
) ([]order.Addon, kernel.Money, error) {
	if err := settings.Validate(); err != nil {
		return nil, kernel.Money{}, err
	}

	seen := make(map[string]bool, len(selectedAddons))
	addons := make([]order.Addon, 0, len(selectedAddons))
	total := settings.BasePrice()

	for _, name := range selectedAddons {
		if name == "" {
			return nil, kernel.Money{}, errs.NewValueIsRequiredError("addon name")
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		price, ok := settings.AddonPrice(name)
		if !ok {
			return nil, kernel.Money{}, errs.NewObjectNotFoundError("addon", name)
		}
		addons = append(addons, order.Addon{Name: name, Price: price})
		total = total.Add(price)
	}

	sort.Slice(addons, func(i, j int) bool { return addons[i].Name < addons[j].Name })
	return addons, total, nil
}

// Deposit returns the up-front share of a quoted total.
func (s *PricingService) Deposit(total kernel.Money) kernel.Money {
	return total.Share(DepositPercent)
}
