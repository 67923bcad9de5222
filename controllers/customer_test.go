package controllers

import (
	"net/http"
	"testing"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerPayload(email string) gin.H {
	return gin.H{
		"firstName": "Morgan",
		"lastName":  "Lee",
		"email":     email,
		"phone":     "+15550002222",
		"address": gin.H{
			"street":  "44 Oak Ave",
			"city":    "Denver",
			"state":   "CO",
			"zipCode": "80014",
		},
		"propertyType": "APARTMENT",
	}
}

func TestCreateCustomer(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	w := performRequest(r, http.MethodPost, "/api/customers", customerPayload("morgan@example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var customer models.Customer
	decodeData(t, w, &customer)
	assert.Equal(t, tenant, customer.BusinessID)
	assert.Equal(t, "APARTMENT", customer.PropertyType)

	var stored models.Customer
	require.NoError(t, db.First(&stored, "id = ?", customer.ID).Error)
	assert.Equal(t, models.CustomerStatusPotential, stored.Status)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	w := performRequest(r, http.MethodPost, "/api/customers", customerPayload("morgan@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/customers", customerPayload("morgan@example.com"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomerEmailUniquePerTenantOnly(t *testing.T) {
	db := setupTestDB(t)
	tenantA := uuid.New()
	tenantB := uuid.New()

	w := performRequest(newAPIRouter(db, tenantA), http.MethodPost,
		"/api/customers", customerPayload("shared@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	// A different business can hold the same customer email
	w = performRequest(newAPIRouter(db, tenantB), http.MethodPost,
		"/api/customers", customerPayload("shared@example.com"))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCustomerInvalidPhone(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	payload := customerPayload("morgan@example.com")
	payload["phone"] = "not-a-number"

	w := performRequest(r, http.MethodPost, "/api/customers", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	seedCustomer(t, db, tenant, "taken@example.com")
	customer := seedCustomer(t, db, tenant, "morgan@example.com")

	w := performRequest(r, http.MethodPut, "/api/customers/"+customer.ID.String(), gin.H{
		"email": "taken@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Re-submitting the current email is not a conflict
	w = performRequest(r, http.MethodPut, "/api/customers/"+customer.ID.String(), gin.H{
		"email": "morgan@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGetCustomersSearch(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	seedCustomer(t, db, tenant, "jamie@example.com")
	other := models.Customer{
		BusinessID: tenant,
		FirstName:  "Alex",
		LastName:   "Nguyen",
		Email:      "alex@example.com",
		Phone:      "+15550003333",
	}
	require.NoError(t, db.Create(&other).Error)

	w := performRequest(r, http.MethodGet, "/api/customers?search=nguyen", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Customers []models.Customer `json:"customers"`
		Meta      PageMeta          `json:"meta"`
	}
	decodeData(t, w, &data)
	require.Len(t, data.Customers, 1)
	assert.Equal(t, "Alex", data.Customers[0].FirstName)
}

func TestCustomerListIsTenantScoped(t *testing.T) {
	db := setupTestDB(t)
	tenantA := uuid.New()
	tenantB := uuid.New()

	seedCustomer(t, db, tenantA, "a@example.com")
	seedCustomer(t, db, tenantB, "b1@example.com")
	seedCustomer(t, db, tenantB, "b2@example.com")

	w := performRequest(newAPIRouter(db, tenantA), http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Customers []models.Customer `json:"customers"`
		Meta      PageMeta          `json:"meta"`
	}
	decodeData(t, w, &data)
	assert.Len(t, data.Customers, 1)
	assert.EqualValues(t, 1, data.Meta.Total)
}

func TestDeleteCustomerCrossTenantIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	tenantA := uuid.New()
	tenantB := uuid.New()

	customer := seedCustomer(t, db, tenantA, "jamie@example.com")

	w := performRequest(newAPIRouter(db, tenantB), http.MethodDelete,
		"/api/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Still visible to its owner
	w = performRequest(newAPIRouter(db, tenantA), http.MethodGet,
		"/api/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCustomerSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	customer := seedCustomer(t, db, tenant, "jamie@example.com")

	w := performRequest(r, http.MethodDelete, "/api/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The row survives with a deletion timestamp
	var count int64
	db.Unscoped().Model(&models.Customer{}).Where("id = ?", customer.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
