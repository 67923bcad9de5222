// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	FirstName              string                `json:"firstName" binding:"required"`
	LastName               string                `json:"lastName" binding:"required"`
	Email                  string                `json:"email" binding:"required,email"`
	Phone                  string                `json:"phone" binding:"required,min=10"`
	Address                AddressInput          `json:"address" binding:"required"`
	PropertyType           string                `json:"propertyType" binding:"omitempty,oneof=HOUSE APARTMENT OFFICE COMMERCIAL"`
	PropertySize           *int                  `json:"propertySize"`
	SpecialInstructions    string                `json:"specialInstructions"`
	PreferredContactMethod string                `json:"preferredContactMethod" binding:"omitempty,oneof=EMAIL PHONE SMS"`
	Status                 models.CustomerStatus `json:"status" binding:"omitempty,oneof=POTENTIAL ACTIVE INACTIVE"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FirstName              *string                `json:"firstName"`
	LastName               *string                `json:"lastName"`
	Email                  *string                `json:"email" binding:"omitempty,email"`
	Phone                  *string                `json:"phone"`
	Address                *AddressInput          `json:"address"`
	PropertyType           *string                `json:"propertyType" binding:"omitempty,oneof=HOUSE APARTMENT OFFICE COMMERCIAL"`
	PropertySize           *int                   `json:"propertySize"`
	SpecialInstructions    *string                `json:"specialInstructions"`
	PreferredContactMethod *string                `json:"preferredContactMethod" binding:"omitempty,oneof=EMAIL PHONE SMS"`
	Status                 *models.CustomerStatus `json:"status" binding:"omitempty,oneof=POTENTIAL ACTIVE INACTIVE"`
}

// CustomerQuery is the filter criteria accepted by the customer list endpoint
type CustomerQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=POTENTIAL ACTIVE INACTIVE"`
}

var customerSortColumns = map[string]string{
	"createdAt": "created_at",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"status":    "status",
}

// CreateCustomer creates a new customer for the business
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Customer emails are unique within a business
	var existing models.Customer
	if err := cc.DB.Where("business_id = ? AND email = ?", businessID, input.Email).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer already exists with this email")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		BusinessID:          businessID,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		Street:              input.Address.Street,
		City:                input.Address.City,
		State:               input.Address.State,
		ZipCode:             input.Address.ZipCode,
		PropertySize:        input.PropertySize,
		SpecialInstructions: input.SpecialInstructions,
	}
	if input.PropertyType != "" {
		customer.PropertyType = input.PropertyType
	}
	if input.PreferredContactMethod != "" {
		customer.PreferredContactMethod = input.PreferredContactMethod
	}
	if input.Status != "" {
		customer.Status = input.Status
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, customer, "Customer created successfully")
}

// GetCustomers retrieves customers for the business with filtering and pagination
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var query CustomerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	query.Normalize(customerSortColumns)

	base := cc.DB.Model(&models.Customer{}).Where("business_id = ?", businessID)

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	var customers []models.Customer
	if err := query.Apply(base).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"customers": customers,
		"meta":      newPageMeta(total, query.ListQuery),
	}, "Customers retrieved successfully")
}

// GetCustomer retrieves a specific customer with booking and review history
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	err := cc.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_date DESC")
		}).
		Preload("Bookings.Service").
		Preload("Bookings.Review").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews").
		Where("business_id = ? AND id = ?", businessID, customerID).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// UpdateCustomer updates an existing customer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("business_id = ? AND id = ?", businessID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil && *input.Email != customer.Email {
		var existing models.Customer
		if err := cc.DB.Where("business_id = ? AND email = ?", businessID, *input.Email).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another customer with this email already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Street = input.Address.Street
		customer.City = input.Address.City
		customer.State = input.Address.State
		customer.ZipCode = input.Address.ZipCode
	}
	if input.PropertyType != nil {
		customer.PropertyType = *input.PropertyType
	}
	if input.PropertySize != nil {
		customer.PropertySize = input.PropertySize
	}
	if input.SpecialInstructions != nil {
		customer.SpecialInstructions = *input.SpecialInstructions
	}
	if input.PreferredContactMethod != nil {
		customer.PreferredContactMethod = *input.PreferredContactMethod
	}
	if input.Status != nil {
		customer.Status = *input.Status
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	utils.RespondWithData(c, http.StatusOK, customer, "Customer updated successfully")
}

// DeleteCustomer soft deletes a customer
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result := cc.DB.Where("business_id = ? AND id = ?", businessID, customerID).
		Delete(&models.Customer{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, nil, "Customer deleted successfully")
}
