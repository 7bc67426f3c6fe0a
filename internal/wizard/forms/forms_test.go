package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/festivo/festivo-backend/internal/wizard"
)

func TestFactoryKinds(t *testing.T) {
	t.Parallel()

	steps, record, err := Factory(KindServiceCard)
	require.NoError(t, err)
	require.Len(t, steps, 4)
	require.Contains(t, record, "title")

	steps, record, err = Factory(KindVendorPricing)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	require.Contains(t, record, "tier_name")

	_, _, err = Factory("mystery")
	require.Error(t, err)
}

func TestServiceCardFlow(t *testing.T) {
	t.Parallel()

	steps, record, err := Factory(KindServiceCard)
	require.NoError(t, err)
	engine, err := wizard.NewEngine(KindServiceCard, "vendor-1", steps, nil, nil, record)
	require.NoError(t, err)

	// Step 1 rejects the seeded blanks.
	require.False(t, engine.Next())
	errs := engine.Errors()
	require.NotEmpty(t, errs["title"])
	require.NotEmpty(t, errs["category_id"])
	require.NotEmpty(t, errs["description"])

	engine.UpdateField("title", "Rustic Barn Weddings")
	engine.UpdateField("category_id", "cat-venue")
	engine.UpdateField("description", "A restored 1920s barn with seating for up to 180 guests.")
	require.True(t, engine.Next())

	// Step 2: positive price, ordered hours.
	engine.UpdateField("base_price_cents", 250000)
	engine.UpdateField("min_booking_hours", 6)
	engine.UpdateField("max_booking_hours", 4)
	require.False(t, engine.Next())
	require.NotEmpty(t, engine.Errors()["max_booking_hours"])
	engine.UpdateField("max_booking_hours", 12)
	require.True(t, engine.Next())

	// Step 3: coverage.
	engine.UpdateField("service_areas", []string{"Austin", "Hill Country"})
	engine.UpdateField("capacity", 180)
	require.True(t, engine.Next())

	// Step 4: three photos minimum.
	require.False(t, engine.Next())
	require.NotEmpty(t, engine.Errors()["attachments"])
	for _, name := range []string{"barn.jpg", "loft.jpg", "grounds.jpg"} {
		engine.AddAttachment(wizard.Attachment{ID: name, Name: name})
	}
	require.True(t, engine.Next())
	require.Equal(t, 4, engine.CurrentStep())
}

func TestVendorPricingValidation(t *testing.T) {
	t.Parallel()

	steps := VendorPricingSteps()

	errs := steps[0].Validate(wizard.Form{Record: wizard.Record{"tier_name": "", "price_cents": 0}})
	require.NotEmpty(t, errs["tier_name"])
	require.NotEmpty(t, errs["price_cents"])

	errs = steps[1].Validate(wizard.Form{Record: wizard.Record{"inclusions": []string{}}})
	require.NotEmpty(t, errs["inclusions"])

	errs = steps[2].Validate(wizard.Form{Record: wizard.Record{"min_guests": 50, "max_guests": 20}})
	require.NotEmpty(t, errs["max_guests"])

	errs = steps[2].Validate(wizard.Form{Record: wizard.Record{"min_guests": 20, "max_guests": 200}})
	require.Empty(t, errs)
}
