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

func TestEmployeeLifecycle(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	w := performRequest(r, http.MethodPost, "/api/employees", gin.H{
		"firstName": "Dana",
		"lastName":  "Ortiz",
		"email":     "dana@example.com",
		"role":      "SUPERVISOR",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var employee models.Employee
	decodeData(t, w, &employee)
	assert.Equal(t, "SUPERVISOR", employee.Role)
	assert.True(t, employee.IsActive)

	w = performRequest(r, http.MethodPut, "/api/employees/"+employee.ID.String(), gin.H{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &employee)
	assert.False(t, employee.IsActive)

	w = performRequest(r, http.MethodDelete, "/api/employees/"+employee.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var employees []models.Employee
	decodeData(t, w, &employees)
	assert.Empty(t, employees)
}

func TestEmployeeDefaultRole(t *testing.T) {
	db := setupTestDB(t)
	tenant := uuid.New()
	r := newAPIRouter(db, tenant)

	w := performRequest(r, http.MethodPost, "/api/employees", gin.H{
		"firstName": "Sam",
		"lastName":  "Field",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var employee models.Employee
	require.NoError(t, db.First(&employee, "business_id = ?", tenant).Error)
	assert.Equal(t, "CLEANER", employee.Role)
}

func TestEmployeeCrossTenantUpdateIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	tenantA := uuid.New()
	tenantB := uuid.New()

	employee := models.Employee{
		BusinessID: tenantA,
		FirstName:  "Dana",
		LastName:   "Ortiz",
	}
	require.NoError(t, db.Create(&employee).Error)

	w := performRequest(newAPIRouter(db, tenantB), http.MethodPut,
		"/api/employees/"+employee.ID.String(), gin.H{"firstName": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(newAPIRouter(db, tenantB), http.MethodDelete,
		"/api/employees/"+employee.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
