package forms

import (
	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/internal/wizard/rules"
)

// ServiceCardSteps is the four-step flow for publishing a vendor service card.
func ServiceCardSteps() []wizard.Step {
	return []wizard.Step{
		{
			Ordinal: 1,
			Title:   "Basics",
			Validate: rules.All(
				rules.NonEmpty("title", "give your service a title"),
				rules.MinLen("title", 5, "title must be at least 5 characters"),
				rules.NonEmpty("category_id", "pick a service category"),
				rules.MinLen("description", 20, "describe the service in at least 20 characters"),
			),
		},
		{
			Ordinal: 2,
			Title:   "Pricing",
			Validate: rules.All(
				rules.Positive("base_price_cents", "base price must be greater than zero"),
				rules.OrderedPair("min_booking_hours", "max_booking_hours", "maximum hours cannot be below the minimum"),
			),
		},
		{
			Ordinal: 3,
			Title:   "Coverage",
			Validate: rules.All(
				rules.NonEmptyList("service_areas", "select at least one service area"),
				rules.Positive("capacity", "capacity must be greater than zero"),
			),
		},
		{
			Ordinal: 4,
			Title:   "Media",
			Validate: rules.All(
				rules.MinAttachments(3, "upload at least 3 photos of your work"),
			),
		},
	}
}

// DefaultServiceCardRecord seeds the fields the frontend binds to so partial
// drafts always round-trip the same keys.
func DefaultServiceCardRecord() wizard.Record {
	return wizard.Record{
		"title":             "",
		"category_id":       "",
		"description":       "",
		"base_price_cents":  0,
		"min_booking_hours": 1,
		"max_booking_hours": 8,
		"service_areas":     []string{},
		"capacity":          0,
	}
}
