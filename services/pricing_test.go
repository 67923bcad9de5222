package services

import (
	"testing"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deepCleanService() *models.Service {
	return &models.Service{
		ID:           uuid.New(),
		Name:         "Deep Clean",
		Category:     models.CategoryDeep,
		BasePrice:    decimal.NewFromInt(100),
		BaseDuration: 60,
		AddOns: []models.AddOn{
			{ID: uuid.New(), Name: "Inside Fridge", Price: decimal.NewFromInt(20), Duration: 15},
			{ID: uuid.New(), Name: "Inside Oven", Price: decimal.NewFromInt(10), Duration: 5},
		},
	}
}

func TestComputeTotalsNoAddOns(t *testing.T) {
	service := deepCleanService()

	totals := ComputeTotals(service, nil)

	assert.True(t, totals.Price.Equal(decimal.NewFromInt(100)),
		"expected 100, got %s", totals.Price)
	assert.Equal(t, 60, totals.Duration)
	assert.Empty(t, totals.AddOns)
}

func TestComputeTotalsWithAddOns(t *testing.T) {
	service := deepCleanService()
	addOnIDs := []uuid.UUID{service.AddOns[0].ID, service.AddOns[1].ID}

	totals := ComputeTotals(service, addOnIDs)

	assert.True(t, totals.Price.Equal(decimal.NewFromInt(130)),
		"expected 130, got %s", totals.Price)
	assert.Equal(t, 80, totals.Duration)
	require.Len(t, totals.AddOns, 2)

	// Snapshots capture the add-on price at computation time
	assert.Equal(t, service.AddOns[0].ID, totals.AddOns[0].AddOnID)
	assert.Equal(t, "Inside Fridge", totals.AddOns[0].Name)
	assert.True(t, totals.AddOns[0].PriceAtTime.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 15, totals.AddOns[0].Duration)
}

func TestComputeTotalsSingleAddOn(t *testing.T) {
	service := deepCleanService()

	totals := ComputeTotals(service, []uuid.UUID{service.AddOns[1].ID})

	assert.True(t, totals.Price.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 65, totals.Duration)
	require.Len(t, totals.AddOns, 1)
	assert.Equal(t, "Inside Oven", totals.AddOns[0].Name)
}

func TestComputeTotalsSkipsUnknownAddOnIDs(t *testing.T) {
	service := deepCleanService()
	addOnIDs := []uuid.UUID{uuid.New(), service.AddOns[0].ID, uuid.New()}

	totals := ComputeTotals(service, addOnIDs)

	// Unresolvable ids are skipped, not errors
	assert.True(t, totals.Price.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 75, totals.Duration)
	assert.Len(t, totals.AddOns, 1)
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	service := deepCleanService()
	addOnIDs := []uuid.UUID{service.AddOns[0].ID, service.AddOns[1].ID}

	first := ComputeTotals(service, addOnIDs)
	second := ComputeTotals(service, addOnIDs)

	assert.True(t, first.Price.Equal(second.Price))
	assert.Equal(t, first.Duration, second.Duration)
	assert.Equal(t, len(first.AddOns), len(second.AddOns))

	// The service itself is untouched
	assert.True(t, service.BasePrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 60, service.BaseDuration)
}

func TestComputeTotalsExactDecimalArithmetic(t *testing.T) {
	service := &models.Service{
		ID:           uuid.New(),
		BasePrice:    decimal.RequireFromString("99.10"),
		BaseDuration: 30,
	}
	for i := 0; i < 10; i++ {
		service.AddOns = append(service.AddOns, models.AddOn{
			ID:       uuid.New(),
			Name:     "Extra",
			Price:    decimal.RequireFromString("0.10"),
			Duration: 1,
		})
	}

	var ids []uuid.UUID
	for _, a := range service.AddOns {
		ids = append(ids, a.ID)
	}

	totals := ComputeTotals(service, ids)

	// 99.10 + 10 * 0.10 must be exactly 100.10, no binary float drift
	assert.Equal(t, "100.1", totals.Price.String())
	assert.Equal(t, 40, totals.Duration)
}
