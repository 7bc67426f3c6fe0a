// Package forms defines the concrete wizard flows vendors walk through. Each
// flow is a static step list assembled from the shared rules; the factory is
// the only entry point the wizard service needs.
package forms

import (
	"github.com/festivo/festivo-backend/internal/wizard"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

// Wizard kinds the platform ships with.
const (
	KindServiceCard   = "service_card"
	KindVendorPricing = "vendor_pricing"
)

// Factory resolves a kind into its steps and initial record. Wire it as the
// wizard service's StepsFactory.
func Factory(kind string) ([]wizard.Step, wizard.Record, error) {
	switch kind {
	case KindServiceCard:
		return ServiceCardSteps(), DefaultServiceCardRecord(), nil
	case KindVendorPricing:
		return VendorPricingSteps(), DefaultVendorPricingRecord(), nil
	default:
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown wizard kind")
	}
}
