package controllers

import (
	"net/http"
	"testing"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServiceWithAddOns(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	w := performRequest(r, http.MethodPost, "/api/services", gin.H{
		"name":         "Move-Out Clean",
		"category":     "MOVE_OUT",
		"basePrice":    "180.50",
		"baseDuration": 120,
		"addOns": []gin.H{
			{"name": "Garage", "price": "35.00", "duration": 30},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var service models.Service
	decodeData(t, w, &service)
	assert.Equal(t, models.CategoryMoveOut, service.Category)
	assert.True(t, service.BasePrice.Equal(decimal.RequireFromString("180.50")))
	assert.True(t, service.IsActive)
	require.Len(t, service.AddOns, 1)
	assert.Equal(t, tenant, service.BusinessID)
}

func TestCreateServiceValidation(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	tests := []struct {
		name string
		body gin.H
	}{
		{"zero price", gin.H{"name": "X", "basePrice": "0", "baseDuration": 60}},
		{"negative price", gin.H{"name": "X", "basePrice": "-10", "baseDuration": 60}},
		{"zero duration", gin.H{"name": "X", "basePrice": "50", "baseDuration": 0}},
		{"unknown category", gin.H{"name": "X", "category": "WINDOWS", "basePrice": "50", "baseDuration": 60}},
		{"negative add-on price", gin.H{
			"name": "X", "basePrice": "50", "baseDuration": 60,
			"addOns": []gin.H{{"name": "Bad", "price": "-5", "duration": 10}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/services", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestUpdateServiceReplacesAddOnSet(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	service := seedService(t, db, tenant)

	w := performRequest(r, http.MethodPut, "/api/services/"+service.ID.String(), gin.H{
		"addOns": []gin.H{
			{"name": "Windows", "price": "25.00", "duration": 20},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Service
	decodeData(t, w, &updated)
	require.Len(t, updated.AddOns, 1)
	assert.Equal(t, "Windows", updated.AddOns[0].Name)

	var count int64
	db.Model(&models.AddOn{}).Where("service_id = ?", service.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteServiceWithBookingsIsBlocked(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	customer := seedCustomer(t, db, tenant, "jamie@example.com")
	service := seedService(t, db, tenant)
	seedBooking(t, db, tenant, customer, service, models.BookingStatusCompleted)

	w := performRequest(r, http.MethodDelete, "/api/services/"+service.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The service and its add-ons survive the refused delete
	var count int64
	db.Model(&models.Service{}).Where("id = ?", service.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.AddOn{}).Where("service_id = ?", service.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDeleteServiceWithoutBookings(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	service := seedService(t, db, tenant)

	w := performRequest(r, http.MethodDelete, "/api/services/"+service.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Service{}).Where("id = ?", service.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.AddOn{}).Where("service_id = ?", service.ID).Count(&count)
	assert.Zero(t, count)
}

func TestToggleServiceStatus(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	service := seedService(t, db, tenant)

	w := performRequest(r, http.MethodPatch, "/api/services/"+service.ID.String()+"/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Service
	decodeData(t, w, &updated)
	assert.False(t, updated.IsActive)

	w = performRequest(r, http.MethodPatch, "/api/services/"+service.ID.String()+"/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &updated)
	assert.True(t, updated.IsActive)
}

func TestServiceCrossTenantIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	tenantA := uuid.New()
	tenantB := uuid.New()

	service := seedService(t, db, tenantA)
	stranger := newAPIRouter(db, tenantB)

	w := performRequest(stranger, http.MethodGet, "/api/services/"+service.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(stranger, http.MethodDelete, "/api/services/"+service.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(stranger, http.MethodPatch, "/api/services/"+service.ID.String()+"/status", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetServicesFiltersByActive(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	seedService(t, db, tenant)
	inactive := models.Service{
		BusinessID:   tenant,
		Name:         "Retired Offering",
		BasePrice:    decimal.NewFromInt(50),
		BaseDuration: 30,
		IsActive:     false,
	}
	require.NoError(t, db.Create(&inactive).Error)

	w := performRequest(r, http.MethodGet, "/api/services?isActive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Services []models.Service `json:"services"`
		Meta     PageMeta         `json:"meta"`
	}
	decodeData(t, w, &data)
	require.Len(t, data.Services, 1)
	assert.Equal(t, "Deep Clean", data.Services[0].Name)
}
