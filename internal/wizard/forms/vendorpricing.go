package forms

import (
	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/internal/wizard/rules"
)

// VendorPricingSteps is the three-step flow for defining a pricing tier.
func VendorPricingSteps() []wizard.Step {
	return []wizard.Step{
		{
			Ordinal: 1,
			Title:   "Tier",
			Validate: rules.All(
				rules.NonEmpty("tier_name", "name the pricing tier"),
				rules.Positive("price_cents", "tier price must be greater than zero"),
			),
		},
		{
			Ordinal: 2,
			Title:   "Inclusions",
			Validate: rules.All(
				rules.NonEmptyList("inclusions", "list what the tier includes"),
			),
		},
		{
			Ordinal: 3,
			Title:   "Guests",
			Validate: rules.All(
				rules.Positive("min_guests", "minimum guests must be greater than zero"),
				rules.OrderedPair("min_guests", "max_guests", "maximum guests cannot be below the minimum"),
			),
		},
	}
}

func DefaultVendorPricingRecord() wizard.Record {
	return wizard.Record{
		"tier_name":   "",
		"price_cents": 0,
		"inclusions":  []string{},
		"min_guests":  0,
		"max_guests":  0,
	}
}
