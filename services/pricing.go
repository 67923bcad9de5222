// services/pricing.go
package services

import (
	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingTotals is the result of a price/duration computation.
type BookingTotals struct {
	Price    decimal.Decimal
	Duration int // minutes
	// AddOns holds the by-value snapshots to persist with the booking.
	// PriceAtTime is the add-on's price at computation time.
	AddOns []models.BookingAddOn
}

// ComputeTotals derives a booking's total price and estimated duration from
// the service's current base values plus the selected add-ons.
//
// Selected ids that do not resolve against the service's current add-on set
// are skipped, not treated as errors. Callers must recompute whenever the
// booking's service or add-on selection changes; totals are never carried
// over from a previous computation.
func ComputeTotals(service *models.Service, addOnIDs []uuid.UUID) BookingTotals {
	totals := BookingTotals{
		Price:    service.BasePrice,
		Duration: service.BaseDuration,
	}

	for _, id := range addOnIDs {
		for i := range service.AddOns {
			addOn := &service.AddOns[i]
			if addOn.ID != id {
				continue
			}
			totals.Price = totals.Price.Add(addOn.Price)
			totals.Duration += addOn.Duration
			totals.AddOns = append(totals.AddOns, models.BookingAddOn{
				AddOnID:     addOn.ID,
				Name:        addOn.Name,
				PriceAtTime: addOn.Price,
				Duration:    addOn.Duration,
			})
			break
		}
	}

	return totals
}
